package http

import (
	"encoding/json"
	"net/http"

	log "github.com/sirupsen/logrus"

	"warbler/errs"
)

// respondJSON writes v as the JSON response body with the given status code.
func respondJSON(w http.ResponseWriter, code int, v interface{}) {
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Error("encoding response")
	}
}

// respondError writes a JSON error body with the given status code.
func respondError(w http.ResponseWriter, code int, message string) {
	respondJSON(w, code, map[string]string{"error": message})
}

// serviceError maps an error coming out of a crud service onto an http
// response, following the taxonomy the services use: validation errors carry
// a public message, integrity violations mean the submitted data collides
// with an existing row, and anything else is a server fault.
func serviceError(w http.ResponseWriter, err error) {
	if err == errs.NotFound {
		respondError(w, http.StatusNotFound, errs.NotFound.Public())
		return
	}
	if pub, ok := err.(errs.PublicError); ok {
		respondError(w, http.StatusBadRequest, pub.Public())
		return
	}
	if errs.IsIntegrityViolation(err) {
		respondError(w, http.StatusBadRequest, "That conflicts with something that already exists.")
		return
	}
	log.WithError(err).Error("internal error")
	respondError(w, http.StatusInternalServerError, "Something went wrong.")
}
