package servos

// Board is a servo controller with some number of PWM channels. Pulses are
// buffered until Commit is called.
type Board interface {

	// SetPulse sets the pulse width of a channel, in ticks of 4096 per 20ms.
	SetPulse(channel uint8, ticks int)

	// Commit sends all buffered pulses to the hardware.
	Commit() error

	// Release turns every output off, so the servos go limp.
	Release() error
}
