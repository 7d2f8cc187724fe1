package paymentrails

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies a failed API call.
type ErrorKind string

// Error kinds.
const (
	ErrorKindNotFound          ErrorKind = "NotFound"
	ErrorKindUnauthorized      ErrorKind = "Unauthorized"
	ErrorKindValidation        ErrorKind = "Validation"
	ErrorKindServerError       ErrorKind = "ServerError"
	ErrorKindNetworkTimeout    ErrorKind = "NetworkTimeout"
	ErrorKindMalformedResponse ErrorKind = "MalformedResponse"
	ErrorKindUnexpected        ErrorKind = "Unexpected"
)

// Sentinel errors, one per kind. A *ResponseError matches the sentinel of its kind with errors.Is.
var (
	ErrNotFound          = errors.New("resource not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrValidation        = errors.New("validation failed")
	ErrServerError       = errors.New("server error")
	ErrNetworkTimeout    = errors.New("network timeout")
	ErrMalformedResponse = errors.New("malformed response")
	ErrUnexpectedStatus  = errors.New("unexpected response status")
)

// Static errors for err113 compliance.
var (
	ErrConfigRequired = errors.New("config is required")
	ErrIDRequired     = errors.New("resource id is required")
	ErrRequestNil     = errors.New("request is required")
	ErrNoMoreItems    = errors.New("no more items")
)

var kindSentinels = map[ErrorKind]error{
	ErrorKindNotFound:          ErrNotFound,
	ErrorKindUnauthorized:      ErrUnauthorized,
	ErrorKindValidation:        ErrValidation,
	ErrorKindServerError:       ErrServerError,
	ErrorKindNetworkTimeout:    ErrNetworkTimeout,
	ErrorKindMalformedResponse: ErrMalformedResponse,
	ErrorKindUnexpected:        ErrUnexpectedStatus,
}

// KindForStatus maps a non-2xx HTTP status code to an ErrorKind.
func KindForStatus(status int) ErrorKind {
	switch {
	case status == http.StatusNotFound:
		return ErrorKindNotFound
	case status == http.StatusUnauthorized, status == http.StatusForbidden:
		return ErrorKindUnauthorized
	case status == http.StatusBadRequest, status == http.StatusUnprocessableEntity:
		return ErrorKindValidation
	case status >= http.StatusInternalServerError:
		return ErrorKindServerError
	default:
		return ErrorKindUnexpected
	}
}

// APIError is a single entry of the "errors" array in an error response.
type APIError struct {
	Code    string `json:"code"            yaml:"code"`
	Field   string `json:"field,omitempty" yaml:"field,omitempty"`
	Message string `json:"message"         yaml:"message"`
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s (code: %s)", e.Field, e.Message, e.Code)
	}

	return fmt.Sprintf("%s (code: %s)", e.Message, e.Code)
}

// ResponseError is returned for every non-2xx response.
type ResponseError struct {
	StatusCode int        `json:"-"`
	Kind       ErrorKind  `json:"-"`
	Errors     []APIError `json:"errors"`

	// Body holds the raw response when it could not be parsed as an error document.
	Body string `json:"-"`
}

// NewResponseError builds a ResponseError from a status code and raw body.
func NewResponseError(status int, body []byte) *ResponseError {
	respErr := &ResponseError{
		StatusCode: status,
		Kind:       KindForStatus(status),
	}

	err := json.Unmarshal(body, respErr)
	if err != nil || len(respErr.Errors) == 0 {
		respErr.Errors = nil
		respErr.Body = strings.TrimSpace(string(body))
	}

	return respErr
}

// Error implements the error interface for ResponseError.
func (e *ResponseError) Error() string {
	prefix := fmt.Sprintf("%s (status %d)", e.Kind, e.StatusCode)

	switch len(e.Errors) {
	case 0:
		if e.Body != "" {
			return prefix + ": " + e.Body
		}

		return prefix
	case 1:
		return prefix + ": " + e.Errors[0].Error()
	}

	parts := make([]string, 0, len(e.Errors))
	for i := range e.Errors {
		parts = append(parts, e.Errors[i].Error())
	}

	return prefix + ": " + strings.Join(parts, "; ")
}

// Is reports whether target is the sentinel error for this response's kind.
func (e *ResponseError) Is(target error) bool {
	sentinel, ok := kindSentinels[e.Kind]

	return ok && target == sentinel
}

// FirstError returns the first error or nil.
func (e *ResponseError) FirstError() *APIError {
	if len(e.Errors) > 0 {
		return &e.Errors[0]
	}

	return nil
}

// FieldErrors groups error messages by the field they were reported against.
// Errors without a field are keyed by the empty string.
func (e *ResponseError) FieldErrors() map[string][]string {
	fields := make(map[string][]string, len(e.Errors))
	for _, apiErr := range e.Errors {
		fields[apiErr.Field] = append(fields[apiErr.Field], apiErr.Message)
	}

	return fields
}

// KindOf returns the ErrorKind carried by err, or the empty kind when err is not an API error.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}

	respErr := &ResponseError{}
	if errors.As(err, &respErr) {
		return respErr.Kind
	}

	for kind, sentinel := range kindSentinels {
		if errors.Is(err, sentinel) {
			return kind
		}
	}

	return ""
}

// IsNotFound checks if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsUnauthorized checks if the error is an unauthorized error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsServerError checks if the error is a 5xx error.
func IsServerError(err error) bool {
	return errors.Is(err, ErrServerError)
}

// IsNetworkTimeout checks if the request timed out before a response arrived.
func IsNetworkTimeout(err error) bool {
	return errors.Is(err, ErrNetworkTimeout)
}

// IsMalformedResponse checks if a 2xx response could not be turned into a resource.
func IsMalformedResponse(err error) bool {
	return errors.Is(err, ErrMalformedResponse)
}

// MalformedResponseError wraps a decoding failure so it matches ErrMalformedResponse.
func MalformedResponseError(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedResponse, fmt.Sprintf(format, args...))
}
