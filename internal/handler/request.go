package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"socialhub/internal/models"
)

const defaultBodyLimit = 1 << 20

// bodyLimit leaves room for base64 images up to MaxUploadSize.
func (h *Handlers) bodyLimit() int64 {
	if h.Cfg == nil || h.Cfg.MaxUploadSize <= 0 {
		return defaultBodyLimit
	}
	return h.Cfg.MaxUploadSize*4/3 + defaultBodyLimit
}

// decodeJSON treats an empty body as an empty object.
func (h *Handlers) decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, h.bodyLimit())

	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}

	var maxBytesErr *http.MaxBytesError
	if errors.As(err, &maxBytesErr) {
		WriteError(w, "Request body too large", http.StatusRequestEntityTooLarge)
		return false
	}

	WriteError(w, "Invalid request body", http.StatusBadRequest)
	return false
}

// requireUser reads the user attached by the session guard.
func requireUser(w http.ResponseWriter, r *http.Request) (*models.User, bool) {
	user, ok := CurrentUser(r.Context())
	if !ok {
		WriteError(w, "Unauthorized: No Token Provided", http.StatusUnauthorized)
		return nil, false
	}
	return user, true
}
