package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/orbitwise/fdsaas/internal/model"
	"github.com/orbitwise/fdsaas/internal/services/propagation"
)

// Config holds configuration for the computation gateway
type Config struct {
	// ComputeTimeout bounds a single propagation request end to end
	ComputeTimeout time.Duration
	// MaxSpan is the widest start-to-stop window a request may ask for
	MaxSpan time.Duration
	// DefaultStep is the ephemeris step used when the request gives none
	DefaultStep time.Duration
}

// DefaultConfig returns default gateway configuration
func DefaultConfig() Config {
	return Config{
		ComputeTimeout: 10 * time.Second,
		MaxSpan:        365 * 24 * time.Hour,
		DefaultStep:    time.Minute,
	}
}

// Window is the time range of a propagation request. A single-instant
// request has Start == Stop.
type Window struct {
	Start time.Time
	Stop  time.Time
	Step  time.Duration
}

// Service fronts the orbit computation engine. It validates every element
// set and window itself before handing anything to the propagator, and
// bounds the compute time so a pathological request cannot hold a worker.
type Service struct {
	propagator propagation.Propagator
	cfg        Config
	logger     *slog.Logger
}

// New creates a new gateway service
func New(propagator propagation.Propagator, cfg Config, logger *slog.Logger) *Service {
	def := DefaultConfig()
	if cfg.ComputeTimeout == 0 {
		cfg.ComputeTimeout = def.ComputeTimeout
	}
	if cfg.MaxSpan == 0 {
		cfg.MaxSpan = def.MaxSpan
	}
	if cfg.DefaultStep == 0 {
		cfg.DefaultStep = def.DefaultStep
	}
	return &Service{
		propagator: propagator,
		cfg:        cfg,
		logger:     logger,
	}
}

// PropagateTLE computes an ephemeris for the element set over the window,
// one state vector per step, endpoints inclusive.
func (s *Service) PropagateTLE(ctx context.Context, tle model.TLE, win Window) ([]model.StateVector, error) {
	if err := tle.Validate(); err != nil {
		return nil, err
	}
	if err := s.checkWindow(win); err != nil {
		return nil, err
	}

	step := win.Step
	if step <= 0 {
		step = s.cfg.DefaultStep
	}

	ctx, cancel := context.WithTimeout(ctx, s.cfg.ComputeTimeout)
	defer cancel()

	var ephemeris []model.StateVector
	for at := win.Start; !at.After(win.Stop); at = at.Add(step) {
		sv, err := s.propagator.Propagate(ctx, tle, at)
		if err != nil {
			if errors.Is(err, context.DeadlineExceeded) {
				s.logger.WarnContext(ctx, "propagation timed out",
					slog.Int("points_computed", len(ephemeris)))
				return nil, model.ErrComputeTimeout
			}
			return nil, fmt.Errorf("propagating at %s: %w", at.Format(time.RFC3339), err)
		}
		ephemeris = append(ephemeris, sv)
	}

	return ephemeris, nil
}

func (s *Service) checkWindow(win Window) error {
	if win.Start.IsZero() || win.Stop.IsZero() {
		return fmt.Errorf("%w: window endpoints are required", model.ErrPropagationOutOfRange)
	}
	if win.Stop.Before(win.Start) {
		return fmt.Errorf("%w: stop precedes start", model.ErrPropagationOutOfRange)
	}
	if win.Stop.Sub(win.Start) > s.cfg.MaxSpan {
		return fmt.Errorf("%w: window exceeds %s", model.ErrPropagationOutOfRange, s.cfg.MaxSpan)
	}
	if win.Step < 0 {
		return fmt.Errorf("%w: negative step", model.ErrPropagationOutOfRange)
	}
	return nil
}
