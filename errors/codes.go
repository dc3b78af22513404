package errors

type Code string

const (
	// ErrEncode is used when an event could not be rendered by a formatter.
	ErrEncode Code = "encode"
	ErrFatal  Code = "fatal"
	ErrIO     Code = "io"
	// ErrInvalidConfig is used for configuration values that cannot be used for
	// setting up logging.
	ErrInvalidConfig Code = "invalid-config"
	// ErrInvalidLevel is used when an event is logged with an unknown severity.
	ErrInvalidLevel Code = "invalid-level"
	ErrInternal     Code = "internal"
	ErrUnexpected   Code = "unexpected"
)

type Kind string

const (
	// KindEncodeJSON is used when JSON encoding of an event failed.
	KindEncodeJSON Kind = "encode-json"
	// KindMissingName is used when the application or environment name is empty.
	KindMissingName Kind = "missing-name"
	// KindNegativeLimit is used for negative size or age limits of file outputs.
	KindNegativeLimit Kind = "negative-limit"
	// KindOpenOutput is used when a log output could not be opened.
	KindOpenOutput Kind = "open-output"
	// KindSinkWrite is used when writing a rendered line to a sink failed.
	KindSinkWrite  Kind = "sink-write"
	KindUnexpected Kind = "unexpected"
	// KindUnknownLevel is used when a severity is not one of the known ones.
	KindUnknownLevel Kind = "unknown-level"
)
