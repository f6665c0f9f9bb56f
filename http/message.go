package http

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"warbler/auth"
	"warbler/domain"
)

func (s *Server) registerMessageRoutes(r *mux.Router) {
	r.HandleFunc("/", s.handleHome).Methods("GET")
	r.HandleFunc("/messages", s.requireAuth(s.handleCreateMessage)).Methods("POST")
	r.HandleFunc("/messages/{id}", s.handleShowMessage).Methods("GET")
	r.HandleFunc("/messages/{id}", s.requireAuth(s.handleDeleteMessage)).Methods("DELETE")
}

// handleHome serves the home timeline. Signed in users get their own and
// their followed users' messages, newest first; anonymous visitors get an
// empty feed and a hint to sign up, like the original landing page.
func (s *Server) handleHome(w http.ResponseWriter, r *http.Request) {
	user := auth.GetUser(r.Context())
	if user == nil {
		respondJSON(w, http.StatusOK, map[string]interface{}{
			"messages": []domain.Message{},
			"message":  "Sign up now to get your own personalized timeline!",
		})
		return
	}
	feed, err := s.ms.Feed(r.Context(), user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": feed})
}

// messageRequest is the JSON body of POST /messages.
type messageRequest struct {
	Text string `json:"text"`
}

// handleCreateMessage posts a new message attributed to the current user.
func (s *Server) handleCreateMessage(w http.ResponseWriter, r *http.Request) {
	var req messageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	user := auth.GetUser(r.Context())
	message := domain.Message{
		Text:   req.Text,
		UserID: user.ID,
	}
	if err := s.ms.Create(&message); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, &message)
}

func (s *Server) handleShowMessage(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message id.")
		return
	}
	message, err := s.ms.ByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	likes, err := s.ls.CountForMessage(message.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": message,
		"likes":   likes,
	})
}

// handleDeleteMessage deletes a message. Only its owner may do that.
func (s *Server) handleDeleteMessage(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid message id.")
		return
	}
	message, err := s.ms.ByID(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	user := auth.GetUser(r.Context())
	if message.UserID != user.ID {
		respondError(w, http.StatusForbidden, "You can only delete your own messages.")
		return
	}
	if err := s.ms.Delete(message); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, message)
}
