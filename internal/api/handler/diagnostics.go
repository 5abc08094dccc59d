package handler

import (
	"crypto/subtle"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/orbitwise/fdsaas/internal/api/response"
)

// DiagnosticsHandler handles version, status and shutdown endpoints
type DiagnosticsHandler struct {
	version  string
	exitKey  string
	shutdown func()
}

// NewDiagnosticsHandler creates a new diagnostics handler. shutdown is
// invoked when the exit endpoint is hit with the right key; it must not
// block.
func NewDiagnosticsHandler(version, exitKey string, shutdown func()) *DiagnosticsHandler {
	return &DiagnosticsHandler{
		version:  version,
		exitKey:  exitKey,
		shutdown: shutdown,
	}
}

// Version handles GET /fdsaas/api/version
func (h *DiagnosticsHandler) Version(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.VersionResponse{Version: h.version})
}

// Status handles GET /fdsaas/api/status
func (h *DiagnosticsHandler) Status(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, response.StatusResponse{Status: "Running"})
}

// Exit handles POST /fdsaas/api/exit/{key}. A wrong key is answered as if
// nothing happened; a matching key gets an empty 204 and shuts down.
func (h *DiagnosticsHandler) Exit(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["key"]

	if h.exitKey == "" || subtle.ConstantTimeCompare([]byte(key), []byte(h.exitKey)) != 1 {
		response.JSON(w, http.StatusOK, response.StatusResponse{Status: "Running"})
		return
	}

	response.NoContent(w)
	if h.shutdown != nil {
		h.shutdown()
	}
}
