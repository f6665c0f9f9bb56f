package http

import (
	"net/http"

	"github.com/gorilla/mux"

	"warbler/auth"
	"warbler/domain"
)

func (s *Server) registerLikeRoutes(r *mux.Router) {
	r.HandleFunc("/messages/{id}/like", s.requireAuth(s.handleCreateLike)).Methods("POST")
	r.HandleFunc("/messages/{id}/unlike", s.requireAuth(s.handleDeleteLike)).Methods("POST")
}

// handleCreateLike makes the current user like the message in the route.
// Liking your own message is rejected here, like the original app hiding
// the like button on your own warbles.
func (s *Server) handleCreateLike(w http.ResponseWriter, r *http.Request) {
	messageID, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message id.")
		return
	}
	user := auth.GetUser(r.Context())
	message, err := s.ms.ByID(messageID)
	if err != nil {
		serviceError(w, err)
		return
	}
	if message.UserID == user.ID {
		respondError(w, http.StatusBadRequest, "You cannot like your own message.")
		return
	}
	like := domain.Like{
		UserID:    user.ID,
		MessageID: messageID,
	}
	if err := s.ls.Create(&like); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, &like)
}

func (s *Server) handleDeleteLike(w http.ResponseWriter, r *http.Request) {
	messageID, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message id.")
		return
	}
	user := auth.GetUser(r.Context())
	like := domain.Like{
		UserID:    user.ID,
		MessageID: messageID,
	}
	if err := s.ls.Delete(&like); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, &like)
}
