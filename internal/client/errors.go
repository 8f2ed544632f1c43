package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/tidwall/gjson"
)

// Error represents a client sentinel error.
type Error string

const (
	ErrNoConnection   = Error("no connection to portal API")
	ErrInvalidProfile = Error("invalid API profile")
	ErrNotFound       = Error("resource not found")
	ErrUnauthorized   = Error("not authorized")
	ErrNoBaseURL      = Error("no API URL configured")
)

func (e Error) Error() string {
	return string(e)
}

// ErrorKind classifies a client error for display.
type ErrorKind string

const (
	KindNetwork  ErrorKind = "network"
	KindServer   ErrorKind = "server"
	KindDecode   ErrorKind = "decode"
	KindCanceled ErrorKind = "canceled"
	KindUnknown  ErrorKind = "unknown"
)

// StatusError represents a non 2xx API response.
type StatusError struct {
	Method string
	URL    string
	Code   int
	Body   string
}

func (e *StatusError) Error() string {
	msg := serverMessage(e.Body)
	if msg == "" {
		return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, http.StatusText(e.Code))
	}
	return fmt.Sprintf("%s %s: %d %s", e.Method, e.URL, e.Code, msg)
}

// Is maps well known status codes to sentinels.
func (e *StatusError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized || e.Code == http.StatusForbidden
	default:
		return false
	}
}

// DecodeError represents a malformed API response.
type DecodeError struct {
	URL    string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %s: %s", e.URL, e.Reason)
}

// Kind returns the kind of a client error.
func Kind(err error) ErrorKind {
	var (
		se *StatusError
		de *DecodeError
	)
	switch {
	case err == nil:
		return ""
	case errors.Is(err, context.Canceled):
		return KindCanceled
	case errors.Is(err, ErrNoConnection), errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	case errors.As(err, &se):
		return KindServer
	case errors.As(err, &de):
		return KindDecode
	default:
		return KindUnknown
	}
}

// Describe returns a short user facing message for err.
func Describe(err error) string {
	switch Kind(err) {
	case KindNetwork:
		return "Portal API unreachable: " + err.Error()
	case KindServer:
		return "Portal API error: " + err.Error()
	case KindDecode:
		return "Unexpected API response: " + err.Error()
	case KindCanceled:
		return "Request canceled"
	default:
		if err == nil {
			return ""
		}
		return err.Error()
	}
}

func serverMessage(body string) string {
	if body == "" || !gjson.Valid(body) {
		return ""
	}
	for _, p := range []string{"message", "error", "detail"} {
		if r := gjson.Get(body, p); r.Type == gjson.String && r.Str != "" {
			return r.Str
		}
	}

	return ""
}
