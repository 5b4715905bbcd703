package main

import (
	"testing"

	"github.com/hexwalker/hexapod/components/legs/gait"
	"github.com/hexwalker/hexapod/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFindGait(t *testing.T) {
	for _, gt := range gait.Types() {
		got, ok := findGait(gt.String())
		assert.True(t, ok)
		assert.Equal(t, gt, got)
	}

	_, ok := findGait("gallop")
	assert.False(t, ok)
}

func TestDraw(t *testing.T) {
	p, err := draw(gait.Tripod.Info(), config.Default())
	require.NoError(t, err)
	assert.NotNil(t, p)
}
