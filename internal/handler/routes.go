package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// NewRouter registers every endpoint on a single router; guard protects all
// but health and the signup, login and logout routes.
func NewRouter(h *Handlers, guard func(http.Handler) http.Handler) *mux.Router {
	router := mux.NewRouter()

	public := func(path string, fn http.HandlerFunc, method string) {
		router.Handle(path, fn).Methods(method)
	}
	private := func(path string, fn http.HandlerFunc, method string) {
		router.Handle(path, guard(fn)).Methods(method)
	}

	public("/health", h.Health, http.MethodGet)

	public("/api/auth/signup", h.Signup, http.MethodPost)
	public("/api/auth/login", h.Login, http.MethodPost)
	public("/api/auth/logout", h.Logout, http.MethodPost)
	private("/api/auth/me", h.Me, http.MethodPost)

	private("/api/users/profile/{username}", h.GetProfile, http.MethodGet)
	private("/api/users/suggested", h.GetSuggested, http.MethodGet)
	private("/api/users/follow/{id}", h.FollowUnfollow, http.MethodPost)
	private("/api/users/update", h.UpdateProfile, http.MethodPost)

	private("/api/posts/create", h.CreatePost, http.MethodPost)
	private("/api/posts/all", h.ListAllPosts, http.MethodGet)
	private("/api/posts/following", h.ListFollowingPosts, http.MethodGet)
	private("/api/posts/likes/{id}", h.ListLikedPosts, http.MethodGet)
	private("/api/posts/user/{username}", h.ListUserPosts, http.MethodGet)
	private("/api/posts/like/{id}", h.LikeUnlike, http.MethodPost)
	private("/api/posts/comment/{id}", h.CommentOnPost, http.MethodPost)
	private("/api/posts/{id}", h.DeletePost, http.MethodDelete)

	private("/api/notifications", h.ListNotifications, http.MethodGet)
	private("/api/notifications", h.DeleteNotifications, http.MethodDelete)

	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Not found", http.StatusNotFound)
	})
	router.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		WriteError(w, "Method not allowed", http.StatusMethodNotAllowed)
	})

	return router
}
