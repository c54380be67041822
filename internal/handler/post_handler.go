package handlers

import (
	"net/http"
	"socialhub/internal/models"
	"socialhub/internal/service"

	"github.com/gorilla/mux"
)

type CommentRequest struct {
	Text string `json:"text"`
}

func (h *Handlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req service.CreatePostRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.CreatePost(r.Context(), current.ID, req)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusCreated)
}

func (h *Handlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	if err := h.PostService.DeletePost(r.Context(), mux.Vars(r)["id"], current.ID); err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, MessageResponse{Message: "Post deleted successfully"}, http.StatusOK)
}

func (h *Handlers) LikeUnlike(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	post, err := h.PostService.LikeUnlike(r.Context(), mux.Vars(r)["id"], current.ID)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) CommentOnPost(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	var req CommentRequest
	if !h.decodeJSON(w, r, &req) {
		return
	}

	post, err := h.PostService.CommentOnPost(r.Context(), mux.Vars(r)["id"], current.ID, req.Text)
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	WriteJSON(w, post, http.StatusOK)
}

func (h *Handlers) ListAllPosts(w http.ResponseWriter, r *http.Request) {
	h.writePosts(w, r, func() ([]models.PostView, error) {
		return h.PostService.ListAll(r.Context())
	})
}

func (h *Handlers) ListLikedPosts(w http.ResponseWriter, r *http.Request) {
	h.writePosts(w, r, func() ([]models.PostView, error) {
		return h.PostService.ListLiked(r.Context(), mux.Vars(r)["id"])
	})
}

func (h *Handlers) ListFollowingPosts(w http.ResponseWriter, r *http.Request) {
	current, ok := requireUser(w, r)
	if !ok {
		return
	}

	h.writePosts(w, r, func() ([]models.PostView, error) {
		return h.PostService.ListFollowing(r.Context(), current.ID)
	})
}

func (h *Handlers) ListUserPosts(w http.ResponseWriter, r *http.Request) {
	h.writePosts(w, r, func() ([]models.PostView, error) {
		return h.PostService.ListByUser(r.Context(), mux.Vars(r)["username"])
	})
}

func (h *Handlers) writePosts(w http.ResponseWriter, r *http.Request, list func() ([]models.PostView, error)) {
	posts, err := list()
	if err != nil {
		WriteServiceError(w, r, err)
		return
	}

	if posts == nil {
		posts = []models.PostView{}
	}

	WriteJSON(w, posts, http.StatusOK)
}
