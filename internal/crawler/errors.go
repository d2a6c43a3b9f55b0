package crawler

import (
	"fmt"
	"strconv"
)

// FetchErrorKind classifies why a fetch failed.
type FetchErrorKind int

// Fetch failure classifications. The orchestrator treats all of them
// identically (log and drop the task); the kind exists so logs and
// callers can distinguish a slow server from a broken one.
const (
	// KindNetwork covers connection failures, DNS errors, and any
	// transport problem that is not a timeout.
	KindNetwork FetchErrorKind = iota

	// KindTimeout means the request exceeded the configured timeout.
	KindTimeout

	// KindStatus means the server responded with a non-2xx status.
	// No content extraction is attempted for such responses.
	KindStatus
)

// String returns a short name for the kind, used in logs.
func (k FetchErrorKind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindStatus:
		return "status"
	case KindNetwork:
		return "network"
	default:
		return "unknown(" + strconv.Itoa(int(k)) + ")"
	}
}

// FetchError is a classified, page-local fetch failure.
// It never aborts the run: the orchestrator logs it and continues with
// the remaining frontier entries.
type FetchError struct {
	// URL is the URL whose fetch failed.
	URL string

	// Kind classifies the failure.
	Kind FetchErrorKind

	// StatusCode is the HTTP status code for KindStatus errors, zero otherwise.
	StatusCode int

	// Err is the underlying error, nil for KindStatus.
	Err error
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	if e.Kind == KindStatus {
		return fmt.Sprintf("fetch %s: unexpected status %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetch %s: %s: %v", e.URL, e.Kind, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As chains.
func (e *FetchError) Unwrap() error {
	return e.Err
}
