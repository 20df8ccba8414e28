package services

import (
	"errors"
)

// Error kinds carried by every service failure. Routes map these onto HTTP
// statuses; front-desk clients use them to decide retry vs. show-conflict.
const (
	KindInvalidRequest   = "invalid_request"
	KindNotFound         = "not_found"
	KindConflict         = "conflict"
	KindPermissionDenied = "permission_denied"
	KindUnavailable      = "unavailable"
	KindInternal         = "internal"
)

type Error struct {
	Kind    string `json:"error"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func invalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

func notFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

func conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

func internalError(message string) *Error {
	return &Error{Kind: KindInternal, Message: message}
}

// KindOf extracts the machine-readable kind from any error returned by this
// package. Unknown errors are treated as internal store failures.
func KindOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
