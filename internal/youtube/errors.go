package youtube

import (
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
)

// Sentinel errors. Every error returned by Client matches exactly one of them
// through errors.Is.
var (
	// ErrResolution indicates a handle, custom URL or username matched no channel.
	ErrResolution = errors.New("could not resolve channel")
	// ErrNotFound indicates the channel ID does not exist.
	ErrNotFound = errors.New("channel not found")
	// ErrQuotaOrAccess indicates the API refused the request for quota or permission reasons.
	ErrQuotaOrAccess = errors.New("API quota exceeded or access forbidden")
	// ErrRemote indicates any other failed request.
	ErrRemote = errors.New("youtube API request failed")
	// ErrMalformedResponse indicates a response lacked a required field.
	ErrMalformedResponse = errors.New("malformed API response")
)

// quotaReasons are googleapi error reasons that mean "denied", whatever the status.
var quotaReasons = map[string]bool{
	"quotaExceeded":       true,
	"rateLimitExceeded":   true,
	"dailyLimitExceeded":  true,
	"forbidden":           true,
	"accessNotConfigured": true,
}

// APIError wraps a failed API operation with its classification.
type APIError struct {
	Op     string // e.g. "playlistItems.list"
	Status int    // HTTP status when known, else 0
	Kind   error  // one of the sentinels above
	Err    error
}

func (e *APIError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %v (status %d): %v", e.Op, e.Kind, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v: %v", e.Op, e.Kind, e.Err)
}

// Unwrap exposes both the classification sentinel and the underlying cause.
func (e *APIError) Unwrap() []error {
	return []error{e.Kind, e.Err}
}

// classify turns a transport or API error into an *APIError.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		kind := ErrRemote
		if gerr.Code == http.StatusForbidden || gerr.Code == http.StatusTooManyRequests {
			kind = ErrQuotaOrAccess
		}
		for _, item := range gerr.Errors {
			if quotaReasons[item.Reason] {
				kind = ErrQuotaOrAccess
			}
		}
		return &APIError{Op: op, Status: gerr.Code, Kind: kind, Err: err}
	}
	return &APIError{Op: op, Kind: ErrRemote, Err: err}
}

func malformed(op, format string, args ...any) error {
	return &APIError{Op: op, Kind: ErrMalformedResponse, Err: fmt.Errorf(format, args...)}
}
