package logging

// Keys with a fixed meaning in events.
const (
	// EventKey holds the event name.
	EventKey = "event"
	// MessageKey holds scalar data passed instead of a mapping.
	MessageKey = "message"
	// DurationKey holds the duration of a timed unit of work in milliseconds.
	DurationKey = "duration"
	// ExceptionKey holds kind name and message of a failed unit of work.
	ExceptionKey = "exception"
	// SQLKey holds an SQL statement which is printed on its own line by the
	// ColoredFormatter.
	SQLKey = "sql"
)

// Field is a single key-value pair of Fields.
type Field struct {
	Key   string
	Value any
}

// F creates a Field.
func F(key string, value any) Field {
	return Field{Key: key, Value: value}
}

// Fields is a mapping that keeps insertion order. Values may be nested
// mappings unless the Fields were produced by Flatten.
type Fields []Field

// Get returns the value for the given key.
func (f Fields) Get(key string) (any, bool) {
	for _, field := range f {
		if field.Key == key {
			return field.Value, true
		}
	}
	return nil, false
}

// Has checks whether the given key is set.
func (f Fields) Has(key string) bool {
	_, ok := f.Get(key)
	return ok
}

// Set sets the value for the given key. An existing entry is replaced in place
// so that it keeps its position, otherwise the entry is appended.
func (f *Fields) Set(key string, value any) {
	for i := range *f {
		if (*f)[i].Key == key {
			(*f)[i].Value = value
			return
		}
	}
	*f = append(*f, Field{Key: key, Value: value})
}

// Without returns a copy of the Fields without entries for the given keys.
func (f Fields) Without(keys ...string) Fields {
	out := make(Fields, 0, len(f))
fields:
	for _, field := range f {
		for _, key := range keys {
			if field.Key == key {
				continue fields
			}
		}
		out = append(out, field)
	}
	return out
}
