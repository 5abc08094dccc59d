package propagation

import (
	"context"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orbitwise/fdsaas/internal/model"
)

// Element set with epoch 2008-09-20, day-of-year 264.51782528
var issTLE = model.TLE{
	Name:  "ISS (ZARYA)",
	Line1: "1 25544U 98067A   08264.51782528 -.00002182  00000-0 -11606-4 0  2927",
	Line2: "2 25544  51.6416 247.4627 0006703 130.5360 325.0288 15.72125391563537",
}

func TestSGP4PropagateNearEpoch(t *testing.T) {
	p := NewSGP4()
	at := time.Date(2008, 9, 20, 12, 30, 0, 0, time.UTC)

	sv, err := p.Propagate(context.Background(), issTLE, at)
	require.NoError(t, err)

	assert.Equal(t, at, sv.Time)

	// Low Earth orbit: geocentric distance and speed in known bands
	r := norm(sv.Position)
	v := norm(sv.Velocity)
	assert.InDelta(t, 6730, r, 400, "geocentric distance km")
	assert.InDelta(t, 7.6, v, 0.5, "speed km/s")
}

func TestSGP4PropagateNormalisesToUTC(t *testing.T) {
	p := NewSGP4()
	loc := time.FixedZone("AEST", 10*60*60)
	at := time.Date(2008, 9, 20, 22, 30, 0, 0, loc)

	sv, err := p.Propagate(context.Background(), issTLE, at)
	require.NoError(t, err)

	utc, err := p.Propagate(context.Background(), issTLE, at.UTC())
	require.NoError(t, err)

	assert.Equal(t, utc.Position, sv.Position)
	assert.Equal(t, time.UTC, sv.Time.Location())
}

func TestSGP4PropagateCancelledContext(t *testing.T) {
	p := NewSGP4()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := p.Propagate(ctx, issTLE, time.Date(2008, 9, 20, 12, 30, 0, 0, time.UTC))
	assert.ErrorIs(t, err, context.Canceled)
}

func norm(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
