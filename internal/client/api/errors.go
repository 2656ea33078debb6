package api

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrUnavailable wraps transport-level failures: the request never
	// produced an HTTP response.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized marks 401 responses so callers can drop the session.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRateLimited marks 429 responses; the feed path retries on it.
	ErrRateLimited = errors.New("rate limited")
)

// Structured rejection codes the backend attaches to report submissions.
const (
	CodeNotWaste       = "NOT_WASTE"
	CodeLowConfidence  = "LOW_CONFIDENCE"
	CodeSessionExpired = "SESSION_EXPIRED"
)

// APIError is a non-2xx response with a parseable JSON body. Message is the
// server's text verbatim; Code is the structured code when the backend
// provides one.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error %d", e.Status)
}

// Kind is the client-side interpretation of a server rejection. The mapping
// from backend phrasing lives in Classify and nowhere else.
type Kind int

const (
	KindGeneric Kind = iota
	KindNoAccount
	KindUnverified
	KindBadPassword
	KindCooldown
	KindNotWaste
	KindLowConfidence
)

// Classify buckets a server error for contextual prompts. It prefers the
// structured Code field and falls back to substring matching on the server's
// message text. The substring checks are a deliberate coupling to the
// backend's phrasing; keep them here so there is one point of maintenance.
func Classify(err error) Kind {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return KindGeneric
	}

	switch apiErr.Code {
	case CodeNotWaste:
		return KindNotWaste
	case CodeLowConfidence:
		return KindLowConfidence
	}

	msg := apiErr.Message
	switch {
	case strings.Contains(msg, "No account found"):
		return KindNoAccount
	case strings.Contains(msg, "verify your account"):
		return KindUnverified
	case strings.Contains(msg, "Incorrect password"):
		return KindBadPassword
	case strings.Contains(msg, "maximum"):
		return KindCooldown
	}
	return KindGeneric
}
