package api

import (
	"fmt"
	"log"
	"net/http"

	"github.com/status-im/market-dashboard/cache"
)

// ErrorResponse is the body of every failed request
type ErrorResponse struct {
	Error     string `json:"error"`
	Kind      string `json:"kind"`
	Retryable bool   `json:"retryable"`
}

const kindBadRequest = "bad_request"

// sendError maps a classified fetch error to its HTTP status
func (s *Server) sendError(w http.ResponseWriter, err error) {
	fetchErr := cache.Classify(err)

	code := http.StatusInternalServerError
	switch fetchErr.Kind {
	case cache.RateLimited:
		code = http.StatusTooManyRequests
	case cache.TransportError:
		code = http.StatusBadGateway
	}
	if code == http.StatusInternalServerError {
		log.Printf("API: unexpected error: %v", err)
	}

	s.sendJSONResponseWithStatus(w, code, ErrorResponse{
		Error:     fetchErr.Message,
		Kind:      fetchErr.Kind.String(),
		Retryable: fetchErr.Retryable(),
	})
}

func (s *Server) sendBadRequest(w http.ResponseWriter, format string, args ...interface{}) {
	s.sendJSONResponseWithStatus(w, http.StatusBadRequest, ErrorResponse{
		Error: fmt.Sprintf(format, args...),
		Kind:  kindBadRequest,
	})
}

// errorMessage returns the user facing message of err, empty for nil
func errorMessage(err error) string {
	if err == nil {
		return ""
	}
	return cache.Classify(err).Message
}
