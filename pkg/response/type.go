package response

import (
	"encoding/json"
	"time"
)

const (
	MessageSuccess      = "success"
	DefaultErrorMessage = "internal server error"

	InternalServerErrorCode = 500

	DateFormat     = "2006-01-02"
	DateTimeFormat = "2006-01-02 15:04:05"
)

// Resp is the standard JSON response body.
type Resp struct {
	ErrorCode int    `json:"error_code"`
	Message   string `json:"message"`
	Data      any    `json:"data,omitempty"`
	Errors    any    `json:"errors,omitempty"`
}

// HTTPError carries an HTTP status together with a client-safe message.
type HTTPError struct {
	Status  int
	Code    int
	Message string
}

// NewHTTPError creates an HTTPError whose error code equals its status.
func NewHTTPError(status int, message string) *HTTPError {
	return &HTTPError{Status: status, Code: status, Message: message}
}

func (e *HTTPError) Error() string {
	return e.Message
}

// Date is a date that marshals as DateFormat.
type Date time.Time

// MarshalJSON implements json.Marshaler for Date.
func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateFormat))
}

// DateTime is a datetime that marshals as DateTimeFormat.
type DateTime time.Time

// MarshalJSON implements json.Marshaler for DateTime.
func (d DateTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Time(d).Local().Format(DateTimeFormat))
}
