package apperror

import (
	"errors"
	"net/http"
)

type Kind string

const (
	InvalidInput              Kind = "InvalidInput"
	MalformedUpstreamResponse Kind = "MalformedUpstreamResponse"
	UpstreamUnavailable       Kind = "UpstreamUnavailable"
	DuplicateName             Kind = "DuplicateName"
	DuplicateResource         Kind = "DuplicateResource"
	CollectionNotFound        Kind = "CollectionNotFound"
	ConfirmationRequired      Kind = "ConfirmationRequired"
	IdentityRequired          Kind = "IdentityRequired"
	SendInProgress            Kind = "SendInProgress"
	SessionNotFound           Kind = "SessionNotFound"
	Unauthorized              Kind = "Unauthorized"
	RateLimited               Kind = "RateLimited"
	Internal                  Kind = "Internal"
)

var statusByKind = map[Kind]int{
	InvalidInput:              http.StatusBadRequest,
	MalformedUpstreamResponse: http.StatusInternalServerError,
	UpstreamUnavailable:       http.StatusInternalServerError,
	DuplicateName:             http.StatusConflict,
	DuplicateResource:         http.StatusConflict,
	CollectionNotFound:        http.StatusNotFound,
	ConfirmationRequired:      http.StatusConflict,
	IdentityRequired:          http.StatusUnauthorized,
	SendInProgress:            http.StatusConflict,
	SessionNotFound:           http.StatusNotFound,
	Unauthorized:              http.StatusUnauthorized,
	RateLimited:               http.StatusTooManyRequests,
	Internal:                  http.StatusInternalServerError,
}

// Error is the failure shape every handler renders as {error, details, rawResponse}.
type Error struct {
	Kind    Kind
	Message string // user-facing, goes to "error"
	Details string // diagnostic, goes to "details"
	Raw     string // upstream text, goes to "rawResponse"
	Err     error
}

func (e *Error) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func (e *Error) Status() int {
	if s, ok := statusByKind[e.Kind]; ok {
		return s
	}
	return http.StatusInternalServerError
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	e := &Error{Kind: kind, Message: message, Err: err}
	if err != nil {
		e.Details = err.Error()
	}
	return e
}

func (e *Error) WithRaw(raw string) *Error {
	e.Raw = raw
	return e
}

func (e *Error) WithDetails(details string) *Error {
	e.Details = details
	return e
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func KindOf(err error) Kind {
	if e, ok := As(err); ok {
		return e.Kind
	}
	return Internal
}
