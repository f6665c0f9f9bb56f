package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"warbler/auth"
	"warbler/domain"
)

func (s *Server) registerFollowRoutes(r *mux.Router) {
	r.HandleFunc("/follow/{followed_id}", s.requireAuth(s.handleCreateFollow)).Methods("POST")
	r.HandleFunc("/unfollow/{followed_id}", s.requireAuth(s.handleDeleteFollow)).Methods("DELETE")
}

// handleCreateFollow makes the current user follow the user in the route.
// Following yourself is rejected here; the model layer doesn't care.
func (s *Server) handleCreateFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := routeID(r, "followed_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}
	follower := auth.GetUser(r.Context())
	if follower.ID == followedID {
		respondError(w, http.StatusBadRequest, "You cannot follow yourself.")
		return
	}
	follow := domain.Follow{
		FollowerID: follower.ID,
		FollowedID: followedID,
	}
	if err := s.fs.Create(&follow); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, &follow)
}

func (s *Server) handleDeleteFollow(w http.ResponseWriter, r *http.Request) {
	followedID, err := routeID(r, "followed_id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}
	follower := auth.GetUser(r.Context())
	follow := domain.Follow{
		FollowerID: follower.ID,
		FollowedID: followedID,
	}
	if err := s.fs.Delete(&follow); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &follow)
}
