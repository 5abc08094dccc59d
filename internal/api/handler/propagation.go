package handler

import (
	"encoding/json"
	"net/http"

	"github.com/orbitwise/fdsaas/internal/api/request"
	"github.com/orbitwise/fdsaas/internal/api/response"
	"github.com/orbitwise/fdsaas/internal/services/gateway"
)

// PropagationHandler handles orbit computation endpoints
type PropagationHandler struct {
	gatewayService *gateway.Service
}

// NewPropagationHandler creates a new propagation handler
func NewPropagationHandler(gatewayService *gateway.Service) *PropagationHandler {
	return &PropagationHandler{
		gatewayService: gatewayService,
	}
}

// PropagateTLE handles GET and POST /fdsaas/api/orb_propagation_tle
func (h *PropagationHandler) PropagateTLE(w http.ResponseWriter, r *http.Request) {
	var req request.PropagationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	if req.TLE.Line1 == "" || req.TLE.Line2 == "" {
		WriteError(w, NewInvalidRequestError("tle.line1 and tle.line2 are required"))
		return
	}

	start, stop, step, err := req.Window()
	if err != nil {
		WriteError(w, NewInvalidRequestError(err.Error()))
		return
	}

	ephemeris, err := h.gatewayService.PropagateTLE(r.Context(), req.TLE, gateway.Window{
		Start: start,
		Stop:  stop,
		Step:  step,
	})
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.PropagationResponseFromEphemeris(req.TLE.Name, ephemeris))
}
