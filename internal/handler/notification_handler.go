package handlers

import (
	"net/http"
	"socialhub/internal/models"
)

func (h *Handlers) ListNotifications(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	notifications, err := h.NotificationService.ListAndMarkRead(r.Context(), current.ID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	if notifications == nil {
		notifications = []models.NotificationView{}
	}

	WriteJSON(w, notifications, http.StatusOK)
}

func (h *Handlers) DeleteNotifications(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.NotificationService.DeleteAll(r.Context(), current.ID); err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Notifications deleted"}, http.StatusOK)
}
