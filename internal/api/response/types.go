package response

import (
	"time"

	"github.com/orbitwise/fdsaas/internal/model"
	"github.com/orbitwise/fdsaas/internal/services/auth"
)

// RegisterResponse is the response for a successful registration
type RegisterResponse struct {
	UserID string `json:"user_id"`
}

// LoginResponse is the response for a successful login
type LoginResponse struct {
	UserID   string `json:"user_id"`
	JWTToken string `json:"jwt_token"`
}

// LoginResponseFromSession creates a LoginResponse from a session
func LoginResponseFromSession(s *auth.Session) LoginResponse {
	return LoginResponse{
		UserID:   string(s.UserID),
		JWTToken: s.Token,
	}
}

// AckResponse acknowledges a session or account mutation. Clients parse
// every 200 body as JSON, so even bodyless operations answer with one.
type AckResponse struct {
	UserID string `json:"user_id"`
}

// VersionResponse reports the server build version
type VersionResponse struct {
	Version string `json:"version"`
}

// StatusResponse reports server liveness
type StatusResponse struct {
	Status string `json:"status"`
}

// StateVector is one ephemeris point in API responses
type StateVector struct {
	Time     string     `json:"time"`
	Position [3]float64 `json:"position"`
	Velocity [3]float64 `json:"velocity"`
}

// StateVectorFromModel converts a model.StateVector to a response StateVector
func StateVectorFromModel(sv model.StateVector) StateVector {
	return StateVector{
		Time:     sv.Time.UTC().Format(time.RFC3339),
		Position: sv.Position,
		Velocity: sv.Velocity,
	}
}

// PropagationResponse is the response for TLE orbit propagation.
// Positions are km and velocities km/s in the TEME frame.
type PropagationResponse struct {
	Name      string        `json:"name,omitempty"`
	Ephemeris []StateVector `json:"ephemeris"`
}

// PropagationResponseFromEphemeris converts a computed ephemeris
func PropagationResponseFromEphemeris(name string, ephemeris []model.StateVector) PropagationResponse {
	points := make([]StateVector, len(ephemeris))
	for i, sv := range ephemeris {
		points[i] = StateVectorFromModel(sv)
	}
	return PropagationResponse{
		Name:      name,
		Ephemeris: points,
	}
}
