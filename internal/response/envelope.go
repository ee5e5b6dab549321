package response

import (
	"reflect"
	"strings"

	apperrors "smartchakula/internal/errors"
)

// Status is the outcome reported in every envelope.
type Status string

const (
	StatusSuccess Status = "Success"
	StatusError   Status = "Error"
	StatusWarning Status = "Warning"
	StatusFailure Status = "Failure"
)

// Envelope is the uniform {status, message, data} body of every operation.
type Envelope struct {
	Status  Status      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// Success wraps data in a Success envelope.
func Success(message string, data interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: data}
}

// List wraps a slice in a Success envelope. A nil slice is sent as [].
func List(message string, items interface{}) Envelope {
	return Envelope{Status: StatusSuccess, Message: message, Data: nonNilSlice(items)}
}

// WithWarnings reports a successful operation that adjusted its input.
// Without warnings it is a plain Success.
func WithWarnings(message string, data interface{}, warnings []string) Envelope {
	if len(warnings) == 0 {
		return Success(message, data)
	}
	return Envelope{
		Status:  StatusWarning,
		Message: message + ". " + strings.Join(warnings, " "),
		Data:    data,
	}
}

// FromError converts a service error into an Error envelope. Domain errors
// keep their message; anything else is reported as "<failure>: <raw error>".
func FromError(failure string, err error) Envelope {
	if apperrors.IsDomain(err) {
		return Envelope{Status: StatusError, Message: err.Error()}
	}
	return Envelope{Status: StatusError, Message: failure + ": " + err.Error()}
}

// ListError is FromError for list operations; data is always an empty list.
func ListError(failure string, err error) Envelope {
	env := FromError(failure, err)
	env.Data = []interface{}{}
	return env
}

// Failure reports a request the transport could not process.
func Failure(message string) Envelope {
	return Envelope{Status: StatusFailure, Message: message}
}

func nonNilSlice(items interface{}) interface{} {
	if items == nil {
		return []interface{}{}
	}
	v := reflect.ValueOf(items)
	if v.Kind() == reflect.Slice && v.IsNil() {
		return reflect.MakeSlice(v.Type(), 0, 0).Interface()
	}
	return items
}
