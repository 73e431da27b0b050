package monitor

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRefreshCollectsProbeResults(t *testing.T) {
	m := New(time.Minute, nil)
	m.Register("up", time.Second, func(context.Context) error { return nil })
	m.Register("down", time.Second, func(context.Context) error { return errors.New("unreachable") })

	m.refresh()

	status := m.GetStatus()
	assert.True(t, status.Components["up"])
	assert.False(t, status.Components["down"])
	assert.False(t, status.LastCheck.IsZero())
	assert.False(t, status.Healthy())
}

func TestHealthyWhenAllProbesPass(t *testing.T) {
	m := New(time.Minute, nil)
	m.Register("db", time.Second, func(context.Context) error { return nil })

	m.refresh()

	assert.True(t, m.GetStatus().Healthy())
}

func TestEmptyStatusIsHealthy(t *testing.T) {
	m := New(time.Minute, nil)
	assert.True(t, m.GetStatus().Healthy())
}

func TestProbeContextCarriesDeadline(t *testing.T) {
	m := New(time.Minute, nil)

	var hadDeadline bool
	m.Register("probe", 100*time.Millisecond, func(ctx context.Context) error {
		_, hadDeadline = ctx.Deadline()
		return nil
	})

	m.refresh()
	assert.True(t, hadDeadline)
}
