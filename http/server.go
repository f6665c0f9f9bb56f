package http

import (
	"net/http"
	"strconv"

	"github.com/gorilla/csrf"
	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"warbler/auth"
	"warbler/crud"
	"warbler/domain"
)

// Config carries the http-level settings the server needs.
type Config struct {
	// CSRFAuthKey keys the CSRF token generation. 32 bytes.
	CSRFAuthKey string
	// Secure marks the CSRF cookie as https-only. Off in dev.
	Secure bool
	// DisableCSRF turns the CSRF middleware off entirely. Only the
	// tests do this, the same way the original app's test suite ran
	// with form CSRF checks disabled.
	DisableCSRF bool
}

// Server provides the http functionality of the app: routing, request
// handling, and middleware. It performs authentication and authorization
// before handing things over to one of the crud services.
type Server struct {
	router  *mux.Router
	handler http.Handler
	us      domain.UserService
	ms      domain.MessageService
	fs      domain.FollowService
	ls      domain.LikeService
}

// NewServer returns a new instance of the server, registers all necessary
// routes and gives their handlers access to the crud services passed in.
func NewServer(cfg Config, services *crud.Services) *Server {
	s := &Server{
		router: mux.NewRouter(),
		us:     services.User,
		ms:     services.Message,
		fs:     services.Follow,
		ls:     services.Like,
	}

	// Register routes of the auth system.
	s.registerAuthRoutes(s.router)

	// Register routes of the crud system.
	s.registerUserRoutes(s.router)
	s.registerFollowRoutes(s.router)
	s.registerMessageRoutes(s.router)
	s.registerLikeRoutes(s.router)

	// Middleware that needs to run on every request.
	s.router.Use(setContentTypeJSON, s.checkUser)

	s.handler = s.router
	if !cfg.DisableCSRF {
		csrfMw := csrf.Protect([]byte(cfg.CSRFAuthKey), csrf.Secure(cfg.Secure), csrf.Path("/"))
		s.handler = csrfMw(s.router)
	}
	return s
}

// ServeHTTP makes the server usable directly with httptest.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// Run starts to listen and serve on the specified port.
func (s *Server) Run(port int) error {
	addr := ":" + strconv.Itoa(port)
	log.WithField("addr", addr).Info("listening")
	return http.ListenAndServe(addr, s.handler)
}

// The setContentTypeJSON middleware sets the content type to "application/json".
func setContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// The checkUser middleware tries to identify the current user on every
// request by resolving the remember_token cookie. It never rejects; handlers
// that need a user wrap themselves in requireAuth.
func (s *Server) checkUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie("remember_token")
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		user, err := s.us.ByRemember(cookie.Value)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		r = r.WithContext(auth.SetUser(r.Context(), user))
		next.ServeHTTP(w, r)
	})
}

// requireAuth guards handlers that need an authenticated user.
// It assumes checkUser has already run.
func (s *Server) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if auth.GetUser(r.Context()) == nil {
			respondError(w, http.StatusUnauthorized, "Access unauthorized, please log in first.")
			return
		}
		next.ServeHTTP(w, r)
	}
}
