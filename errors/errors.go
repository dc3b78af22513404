package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

// Details holds additional error details that can be viewed and logged.
type Details map[string]interface{}

// Error is the general error type for errors appearing while setting up or
// writing logs.
type Error struct {
	// Code is the error code.
	Code Code
	// Kind is an optional, more specific classification than Code.
	Kind Kind
	// Err is the original error that occurred.
	Err error
	// Message is the manually created message that can be used in order to trace the error.
	Message string
	// Details holds any error details.
	Details Details
}

func (e Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the original error so that errors.Is and errors.As keep
// working through an Error.
func (e Error) Unwrap() error {
	return e.Err
}

// Cast casts the given error to Error. If the given one is not of type Error, an unknown one with error code
// ErrUnexpected is created and false returned
func Cast(err error) (Error, bool) {
	var e Error
	if stderrors.As(err, &e) {
		return e, true
	}
	var ep *Error
	if stderrors.As(err, &ep) && ep != nil {
		return *ep, true
	}
	e = Error{
		Code:    ErrUnexpected,
		Err:     err,
		Message: "unknown operation",
		Details: make(map[string]interface{}),
	}
	return e, false
}

// Wrap wraps the given error with the given message.
func Wrap(err error, message string, details Details) error {
	e, ok := Cast(err)
	// Check whether to append to message or replace.
	var errMsg string
	if ok {
		errMsg = fmt.Sprintf("%s: %s", message, e.Message)
	} else {
		errMsg = message
	}
	// Add details.
	if details != nil && e.Details == nil {
		e.Details = make(Details)
	}
	for k, v := range details {
		// Check if detail with same key already set.
		if originalV, ok := e.Details[k]; ok {
			// Add prefix to original key. Original value will be overwritten after this
			// block.
			e.Details[fmt.Sprintf("_%s", k)] = originalV
		}
		e.Details[k] = v
	}
	return Error{
		Code:    e.Code,
		Kind:    e.Kind,
		Err:     e.Err,
		Message: errMsg,
		Details: e.Details,
	}
}

// FromErr creates an Error with the given details.
func FromErr(message string, code Code, err error, details Details) error {
	return Error{
		Code:    code,
		Err:     err,
		Message: message,
		Details: details,
	}
}

// detailsAsJSON encodes the Details of the given Error as JSON string.
func detailsAsJSON(err error) []byte {
	e, _ := Cast(err)
	if e.Details == nil {
		return nil
	}
	b, err := json.Marshal(e.Details)
	if err != nil {
		return []byte(fmt.Sprintf("%q", fmt.Sprintf("%+v", e.Details)))
	}
	return b
}

// Logger is what Log needs for emitting error events. It is satisfied by
// logging.EventLogger.
type Logger interface {
	Warn(event string, data any) error
	Error(event string, data any) error
	Fatal(event string, data any) error
}

// Log logs the given error with its details as the given event. Configuration
// errors are logged as warnings, ErrFatal as fatal and everything else as
// error.
func Log(logger Logger, event string, err error) error {
	e, _ := Cast(err)
	fields := map[string]any{
		"err_code":    string(e.Code),
		"err_message": e.Message,
	}
	if e.Kind != "" {
		fields["err_kind"] = string(e.Kind)
	}
	if e.Err != nil {
		fields["err_orig"] = e.Err.Error()
	}
	// Details are kept nested so that the logger flattens them into
	// err_details.<key> fields.
	if len(e.Details) > 0 {
		details := make(map[string]any, len(e.Details))
		for k, v := range e.Details {
			details[k] = fmt.Sprintf("%+v", v)
		}
		fields["err_details"] = details
	}
	switch e.Code {
	case ErrInvalidConfig, ErrInvalidLevel:
		return logger.Warn(event, fields)
	case ErrFatal:
		return logger.Fatal(event, fields)
	default:
		return logger.Error(event, fields)
	}
}

// Prettify returns a detailed error string with error details.
func Prettify(err error) string {
	e, _ := Cast(err)
	return fmt.Sprintf("Code: %s\nOriginal Error: %+v\nMessage: %s\nDetails: %s\n",
		e.Code, e.Err, e.Message, detailsAsJSON(e))
}

// BlameUser checks if the given error is ErrInvalidConfig or ErrInvalidLevel,
// meaning that the caller supplied something unusable.
func BlameUser(err error) bool {
	e, ok := Cast(err)
	if !ok {
		// Unexpected.
		return false
	}
	switch e.Code {
	case ErrInvalidConfig,
		ErrInvalidLevel:
		return true
	}
	// Otherwise.
	return false
}
