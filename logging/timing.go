package logging

import (
	"fmt"
	"reflect"
	"time"
)

// Work is a unit of work to be timed by EventLogger.LogTimed. It receives the
// not yet flattened fields of the event which it may extend.
type Work func(extra *Fields) error

// Outcome is the result of running a unit of work.
type Outcome struct {
	// Duration is the elapsed time in milliseconds, measured until the work
	// returned or panicked.
	Duration float64
	// Err is the error returned by the work.
	Err error
	// Panic is the recovered value if the work panicked.
	Panic any
	// panicked is set if the work panicked, even with a nil value.
	panicked bool
}

// Failed checks whether the work returned an error or panicked.
func (o Outcome) Failed() bool {
	return o.Err != nil || o.panicked
}

// measure runs the given function and measures its duration with the given
// clock. A panic is recovered and stored in the Outcome instead of being
// propagated.
func measure(now func() time.Time, fn func() error) (outcome Outcome) {
	start := now()
	outcome.panicked = true
	defer func() {
		outcome.Duration = elapsedMillis(start, now())
		if outcome.panicked {
			outcome.Panic = recover()
		}
	}()
	outcome.Err = fn()
	outcome.panicked = false
	return outcome
}

func elapsedMillis(start, end time.Time) float64 {
	return float64(end.Sub(start)) / float64(time.Millisecond)
}

// exception returns kind name and message for the failure of the given
// Outcome.
func (o Outcome) exception() []string {
	if o.Err != nil {
		return []string{kindName(o.Err), o.Err.Error()}
	}
	if err, ok := o.Panic.(error); ok {
		return []string{kindName(err), err.Error()}
	}
	return []string{"panic", fmt.Sprint(o.Panic)}
}

// kindName returns the name of the dynamic type of the given error without
// package path and pointer indirection.
func kindName(err error) string {
	t := reflect.TypeOf(err)
	for t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Name() == "" {
		return t.String()
	}
	return t.Name()
}
