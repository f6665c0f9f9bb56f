package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"warbler/domain"
)

func (s *Server) registerUserRoutes(r *mux.Router) {
	r.HandleFunc("/users", s.handleUsersIndex).Methods("GET")
	r.HandleFunc("/users/{id}", s.handleUserShow).Methods("GET")
	r.HandleFunc("/users/{id}/following", s.handleUserFollowing).Methods("GET")
	r.HandleFunc("/users/{id}/followers", s.handleUserFollowers).Methods("GET")
	r.HandleFunc("/users/{id}/likes", s.handleUserLikes).Methods("GET")
}

// handleUsersIndex lists all users, optionally filtered by the q query
// parameter matching against usernames.
func (s *Server) handleUsersIndex(w http.ResponseWriter, r *http.Request) {
	users, err := s.us.Search(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users})
}

// userShowResponse is a user's detail page payload: the profile itself,
// their messages newest first, and the social graph counts.
type userShowResponse struct {
	User      *domain.User     `json:"user"`
	Messages  []domain.Message `json:"messages"`
	Followers int              `json:"followers"`
	Following int              `json:"following"`
	Likes     int              `json:"likes"`
}

func (s *Server) handleUserShow(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}
	user, err := s.us.ByID(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	messages, err := s.ms.ByUserID(user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	followers, err := s.fs.Followers(r.Context(), user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	following, err := s.fs.Following(r.Context(), user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	likes, err := s.ls.ByUserID(user.ID)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, userShowResponse{
		User:      user,
		Messages:  messages,
		Followers: len(followers),
		Following: len(following),
		Likes:     len(likes),
	})
}

func (s *Server) handleUserFollowing(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}
	users, err := s.fs.Following(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"following": users})
}

func (s *Server) handleUserFollowers(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}
	users, err := s.fs.Followers(r.Context(), id)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"followers": users})
}

// handleUserLikes lists the messages a user has liked, most recent first.
func (s *Server) handleUserLikes(w http.ResponseWriter, r *http.Request) {
	id, err := routeID(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user id.")
		return
	}
	messages, err := s.ls.MessagesLikedBy(id)
	if err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"likes": messages})
}

// routeID parses an integer route parameter.
func routeID(r *http.Request, name string) (int, error) {
	return strconv.Atoi(mux.Vars(r)[name])
}
