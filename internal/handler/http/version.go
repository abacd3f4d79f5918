package http

import (
	"net/http"
)

func (h *Handler) getServerVersion(w http.ResponseWriter, r *http.Request) {
	serverVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(serverVersion))
}

// getHealth answers 503 while the database is unreachable so that load
// balancers take the instance out of rotation.
func (h *Handler) getHealth(w http.ResponseWriter, r *http.Request) {
	health := h.services.AppInfoService.CheckHealth(r.Context())

	status := http.StatusOK
	if health.Status != "ok" {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, r, health, status)
}
