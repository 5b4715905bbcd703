package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hexwalker/hexapod"
	"github.com/hexwalker/hexapod/components/controller"
	"github.com/hexwalker/hexapod/config"
	fakeserial "github.com/hexwalker/hexapod/fake/serial"
	"github.com/hexwalker/hexapod/modes"
	"github.com/hexwalker/hexapod/servos"
	"github.com/hexwalker/hexapod/telemetry"
	"github.com/sirupsen/logrus"
)

var (
	configPath = flag.String("config", "", "path to a JSON config file (optional)")
	ctrlAddr   = flag.String("controller", "127.0.0.1:7700", "address of the controller bridge")
	telemAddr  = flag.String("telemetry", ":8080", "address to serve telemetry on (empty to disable)")
	driver     = flag.String("driver", "pca9685", "servo driver: pca9685, maestro, or fake")
	i2cPath    = flag.String("i2c", "/dev/i2c-1", "the i2c bus of the pca9685 boards")
	portRight  = flag.String("port", "/dev/ttyACM0", "the serial port of the right maestro")
	portLeft   = flag.String("port-left", "/dev/ttyACM2", "the serial port of the left maestro")
	rate       = flag.Int("rate", 60, "ticks per second")
	debug      = flag.Bool("debug", false, "verbose logging")
)

func main() {
	flag.Parse()

	if *debug {
		logrus.SetLevel(logrus.DebugLevel)
	}

	cfg := config.Default()
	if *configPath != "" {
		fmt.Println("Loading config...")
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			fmt.Printf("error loading config: %s\n", err)
			os.Exit(1)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	fmt.Println("Opening servos...")
	drv, closer, err := openDriver()
	if err != nil {
		fmt.Printf("error opening servos: %s\n", err)
		os.Exit(1)
	}
	defer closer.Close()

	// Anything which should stop the robot sends on this. The loop does the
	// actual stopping, so the servos are released in a tick.
	stop := make(chan string, 4)

	fmt.Println("Connecting to controller...")
	client := controller.NewClient(*ctrlAddr)
	go func() {
		err := client.Run(ctx)
		if err != nil && ctx.Err() == nil {
			stop <- fmt.Sprintf("controller failed: %s", err)
		}
	}()

	h := hexapod.New()

	fmt.Println("Creating components...")
	handler := modes.NewHandler(modes.NewWalk(nil), modes.NewPose())
	h.Add(modes.NewPilot(client, handler, cfg))
	h.Add(drv)

	if *telemAddr != "" {
		srv := telemetry.NewServer(telemetry.DefaultRate)
		go func() {
			err := srv.ListenAndServe(ctx, *telemAddr)
			if err != nil {
				stop <- fmt.Sprintf("telemetry failed: %s", err)
			}
		}()
		h.Add(srv)
	}

	fmt.Println("Booting components...")
	err = h.Boot()
	if err != nil {
		fmt.Printf("error while booting: %s\n", err)
		os.Exit(1)
	}

	// Catch both SIGINT (ctrl+c) and SIGTERM (kill/systemd), to allow the hexapod
	// to power down its servos before exiting.
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)
	go func() {
		for range c {
			stop <- "caught signal"
		}
	}()

	fmt.Println("Starting loop...")
	t := time.NewTicker(time.Second / time.Duration(*rate))
	defer t.Stop()

	for {
		select {
		case reason := <-stop:
			fmt.Printf("Shutting down (%s)...\n", reason)
			h.Shutdown = true

		case now := <-t.C:
			// Shutdown might be requested by a component (e.g. the B button),
			// so check before ticking. The tick after that releases the servos.
			shutdown := h.Shutdown

			err := h.Tick(now)
			if err != nil {
				fmt.Printf("error while ticking: %s\n", err)
				if !shutdown {
					h.Shutdown = true
					continue
				}
			}

			if shutdown {
				fmt.Println("Done, exiting.")
				return
			}
		}
	}
}

// openDriver returns the servo driver selected by the flags, and something to
// close when done with it.
func openDriver() (*servos.Driver, io.Closer, error) {
	switch *driver {
	case "pca9685":
		bus, err := servos.OpenI2C(*i2cPath)
		if err != nil {
			return nil, nil, err
		}

		right, err := servos.NewPCA9685(bus, servos.Right.Address)
		if err != nil {
			bus.Close()
			return nil, nil, err
		}

		left, err := servos.NewPCA9685(bus, servos.Left.Address)
		if err != nil {
			bus.Close()
			return nil, nil, err
		}

		return servos.NewDriver(right, left), bus, nil

	case "maestro":
		right, rc, err := servos.OpenMaestro(*portRight)
		if err != nil {
			return nil, nil, err
		}

		left, lc, err := servos.OpenMaestro(*portLeft)
		if err != nil {
			rc.Close()
			return nil, nil, err
		}

		return servos.NewDriver(right, left), multiCloser{rc, lc}, nil

	case "fake":
		right, left := fakeserial.New(), fakeserial.New()
		d := servos.NewDriver(servos.NewMaestro(right), servos.NewMaestro(left))
		return d, multiCloser{right, left}, nil
	}

	return nil, nil, fmt.Errorf("unknown driver: %s", *driver)
}

type multiCloser []io.Closer

func (mc multiCloser) Close() error {
	var first error
	for _, c := range mc {
		if err := c.Close(); err != nil && first == nil {
			first = err
		}
	}

	return first
}
