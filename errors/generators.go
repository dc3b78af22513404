package errors

import "fmt"

// NewInvalidConfigError returns a new ErrInvalidConfig error with the given
// kind and message.
func NewInvalidConfigError(kind Kind, message string, details Details) error {
	return Error{
		Code:    ErrInvalidConfig,
		Kind:    kind,
		Message: message,
		Details: details,
	}
}

// NewUnknownLevelError creates a new ErrInvalidLevel error with kind
// KindUnknownLevel for the given raw level value.
func NewUnknownLevelError(level interface{}) error {
	return Error{
		Code:    ErrInvalidLevel,
		Kind:    KindUnknownLevel,
		Message: fmt.Sprintf("unknown level: %v", level),
		Details: Details{
			"level": level,
		},
	}
}
