package request

import (
	"errors"
	"time"

	"github.com/orbitwise/fdsaas/internal/model"
)

// Envelope carries the fields common to every request body. Protected
// routes require all three; unauthenticated routes only the timestamp.
type Envelope struct {
	Timestamp         int64  `json:"timestamp"`
	UserID            string `json:"user_id,omitempty"`
	AuthenticationKey string `json:"authentication_key,omitempty"`
}

// RegisterRequest is the request body for registering a user
type RegisterRequest struct {
	Envelope
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Envelope
	Username string `json:"username"`
	Password string `json:"password"`
}

// PropagationRequest is the request body for TLE orbit propagation.
// Either target_time alone or a start_time/stop_time pair must be given.
type PropagationRequest struct {
	Envelope
	TLE         model.TLE `json:"tle"`
	TargetTime  string    `json:"target_time,omitempty"`
	StartTime   string    `json:"start_time,omitempty"`
	StopTime    string    `json:"stop_time,omitempty"`
	StepSeconds int       `json:"step_seconds,omitempty"`
}

// Window parses the request's time fields into a start/stop/step triple
func (r *PropagationRequest) Window() (start, stop time.Time, step time.Duration, err error) {
	if r.TargetTime != "" {
		if r.StartTime != "" || r.StopTime != "" {
			return start, stop, 0, errors.New("target_time is exclusive with start_time/stop_time")
		}
		at, err := time.Parse(time.RFC3339, r.TargetTime)
		if err != nil {
			return start, stop, 0, errors.New("unable to parse target_time")
		}
		return at, at, 0, nil
	}

	if r.StartTime == "" || r.StopTime == "" {
		return start, stop, 0, errors.New("start_time and stop_time are required")
	}
	start, err = time.Parse(time.RFC3339, r.StartTime)
	if err != nil {
		return start, stop, 0, errors.New("unable to parse start_time")
	}
	stop, err = time.Parse(time.RFC3339, r.StopTime)
	if err != nil {
		return start, stop, 0, errors.New("unable to parse stop_time")
	}
	return start, stop, time.Duration(r.StepSeconds) * time.Second, nil
}
