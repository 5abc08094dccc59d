package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/orbitwise/fdsaas/internal/api/apierr"
	"github.com/orbitwise/fdsaas/internal/api/request"
	"github.com/orbitwise/fdsaas/internal/model"
	"github.com/orbitwise/fdsaas/internal/services/auth"
)

type contextKey string

const (
	sessionContextKey  contextKey = "session"
	envelopeContextKey contextKey = "envelope"
)

const maxBodyBytes = 1 << 20

// Auth creates authorization middleware. The credentials travel in the JSON
// body rather than a header, so the body is buffered, the envelope decoded
// and checked, and the untouched bytes handed on to the handler.
func Auth(authService *auth.Service) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes))
			if err != nil {
				apierr.WriteError(w, apierr.NewInvalidRequestError("Unable to read request body"))
				return
			}
			_ = r.Body.Close()

			var envelope request.Envelope
			if err := json.Unmarshal(body, &envelope); err != nil {
				apierr.WriteError(w, apierr.NewInvalidRequestError("Request body must be a JSON object"))
				return
			}
			if envelope.UserID == "" || envelope.AuthenticationKey == "" || envelope.Timestamp == 0 {
				apierr.WriteError(w, apierr.NewInvalidRequestError("user_id, authentication_key and timestamp are required"))
				return
			}

			session, err := authService.Validate(
				model.UserID(envelope.UserID), envelope.AuthenticationKey, envelope.Timestamp)
			if err != nil {
				apierr.WriteError(w, err)
				return
			}

			// Handlers decode the payload from the same bytes
			r.Body = io.NopCloser(bytes.NewReader(body))

			ctx := r.Context()
			ctx = context.WithValue(ctx, sessionContextKey, session)
			ctx = context.WithValue(ctx, envelopeContextKey, &envelope)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the session from the request context
func GetSession(ctx context.Context) *auth.Session {
	session, _ := ctx.Value(sessionContextKey).(*auth.Session)
	return session
}

// GetEnvelope returns the decoded request envelope from the request context
func GetEnvelope(ctx context.Context) *request.Envelope {
	envelope, _ := ctx.Value(envelopeContextKey).(*request.Envelope)
	return envelope
}

// MustGetSession returns the validated session or panics
func MustGetSession(ctx context.Context) *auth.Session {
	session := GetSession(ctx)
	if session == nil {
		panic("no session in context - auth middleware not applied?")
	}
	return session
}
