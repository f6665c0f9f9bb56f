package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"warbler/auth"
	"warbler/domain"
)

func (s *Server) registerAuthRoutes(r *mux.Router) {
	r.HandleFunc("/signup", s.handleSignup).Methods("POST")
	r.HandleFunc("/login", s.handleLogin).Methods("POST")
	r.HandleFunc("/logout", s.requireAuth(s.handleLogout)).Methods("POST")
	r.HandleFunc("/profile", s.requireAuth(s.handleProfile)).Methods("GET")
}

// signupRequest is the JSON body of POST /signup.
type signupRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	ImageURL string `json:"image_url"`
}

// handleSignup creates a new user account and signs it in. Validation
// failures (empty password) come back as 400 before anything is written;
// a taken username or email is a constraint violation at the insert.
func (s *Server) handleSignup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	user, err := s.us.Signup(req.Username, req.Email, req.Password, req.ImageURL)
	if err != nil {
		serviceError(w, err)
		return
	}
	if err := s.us.Create(r.Context(), user); err != nil {
		serviceError(w, err)
		return
	}
	if err := s.signIn(w, r.Context(), user); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, user)
}

// loginRequest is the JSON body of POST /login.
type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// handleLogin authenticates a user by username and password. Unknown
// username and wrong password get the same generic response, so the
// endpoint can't be used to enumerate accounts.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid JSON body.")
		return
	}
	user, err := s.us.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		serviceError(w, err)
		return
	}
	if user == nil {
		respondError(w, http.StatusUnauthorized, "Invalid credentials.")
		return
	}
	if err := s.signIn(w, r.Context(), user); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// handleLogout clears the session cookie and rotates the user's remember
// token so the old cookie value can't be replayed.
func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    "",
		Expires:  time.Now(),
		HttpOnly: true,
	})
	user := auth.GetUser(r.Context())
	token, err := auth.MakeRememberToken()
	if err != nil {
		serviceError(w, err)
		return
	}
	user.Remember = token
	if err := s.us.Update(r.Context(), user); err != nil {
		serviceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "successfully logged out"})
}

// handleProfile returns the currently authenticated user.
func (s *Server) handleProfile(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, auth.GetUser(r.Context()))
}

// signIn is used to sign the given user in via cookies. A fresh remember
// token is generated and persisted if the user doesn't carry one yet.
func (s *Server) signIn(w http.ResponseWriter, ctx context.Context, user *domain.User) error {
	if user.Remember == "" {
		token, err := auth.MakeRememberToken()
		if err != nil {
			return err
		}
		user.Remember = token
		if err := s.us.Update(ctx, user); err != nil {
			return err
		}
	}
	http.SetCookie(w, &http.Cookie{
		Name:     "remember_token",
		Value:    user.Remember,
		HttpOnly: true,
	})
	return nil
}
