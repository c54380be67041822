package handlers

import (
	"net/http"
	"socialhub/internal/service"

	"github.com/gorilla/mux"
)

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.UserService.GetProfile(r.Context(), mux.Vars(r)["username"])
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}

func (h *Handlers) GetSuggested(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	users, err := h.UserService.GetSuggested(r.Context(), current.ID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, users, http.StatusOK)
}

func (h *Handlers) FollowUnfollow(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	followed, err := h.UserService.FollowUnfollow(r.Context(), current.ID, mux.Vars(r)["id"])
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	message := "User unfollowed successfully"
	if followed {
		message = "User followed successfully"
	}

	WriteJSON(w, MessageResponse{Message: message}, http.StatusOK)
}

func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req service.UpdateProfileRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	user, err := h.UserService.UpdateProfile(r.Context(), current.ID, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, user, http.StatusOK)
}
