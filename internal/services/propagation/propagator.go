package propagation

import (
	"context"
	"fmt"
	"math"
	"time"

	satellite "github.com/joshuaferrara/go-satellite"

	"github.com/orbitwise/fdsaas/internal/model"
)

// Propagator computes an orbital state vector from a TLE at a point in time.
// The element set is treated as opaque input here; structural validation is
// the caller's job.
type Propagator interface {
	Propagate(ctx context.Context, tle model.TLE, at time.Time) (model.StateVector, error)
}

// SGP4 propagates element sets with the SGP4/SDP4 analytic model, in the
// TEME frame with kilometre / kilometre-per-second units.
type SGP4 struct{}

// NewSGP4 creates an SGP4 propagator
func NewSGP4() *SGP4 {
	return &SGP4{}
}

// Propagate computes the state vector at the given instant
func (p *SGP4) Propagate(ctx context.Context, tle model.TLE, at time.Time) (sv model.StateVector, err error) {
	if err := ctx.Err(); err != nil {
		return model.StateVector{}, err
	}

	// The underlying model panics on some malformed element sets rather
	// than returning an error
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", model.ErrInvalidTLE, r)
		}
	}()

	sat := satellite.TLEToSat(tle.Line1, tle.Line2, satellite.GravityWGS84)

	at = at.UTC()
	pos, vel := satellite.Propagate(
		sat,
		at.Year(), int(at.Month()), at.Day(),
		at.Hour(), at.Minute(), at.Second(),
	)

	sv = model.StateVector{
		Time:     at,
		Position: [3]float64{pos.X, pos.Y, pos.Z},
		Velocity: [3]float64{vel.X, vel.Y, vel.Z},
	}

	if !finite(sv.Position) || !finite(sv.Velocity) {
		// Decayed orbit or a time too far from epoch for the model
		return model.StateVector{}, model.ErrPropagationOutOfRange
	}

	return sv, nil
}

func finite(v [3]float64) bool {
	for _, x := range v {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return false
		}
	}
	return true
}
