package handlers

import (
	"log/slog"
	"net/http"
)

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	status, err := h.HealthService.Check(r.Context())
	if err != nil {
		slog.Error("Проверка хранилища не пройдена", "error", err)
		WriteError(w, "Storage unavailable", http.StatusServiceUnavailable)
		return
	}

	WriteJSON(w, status, http.StatusOK)
}
