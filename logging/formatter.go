package logging

import (
	"os"
	"sync"
	"time"
)

// Formatter renders an event with flattened fields into a single log line
// including the trailing line break.
type Formatter interface {
	Format(level Level, timestamp time.Time, fields Fields) (string, error)
}

// Defaults for Identity.
const (
	DefaultApp         = "application"
	DefaultEnvironment = "development"
)

// Identity names the application and environment that emit events.
type Identity struct {
	App         string
	Environment string
}

// DefaultIdentity returns the Identity with DefaultApp and DefaultEnvironment.
func DefaultIdentity() Identity {
	return Identity{
		App:         DefaultApp,
		Environment: DefaultEnvironment,
	}
}

var (
	hostnameOnce sync.Once
	hostname     string
)

// Hostname returns the name of the local host. It is looked up once and then
// cached for the lifetime of the process.
func Hostname() string {
	hostnameOnce.Do(func() {
		name, err := os.Hostname()
		if err != nil || name == "" {
			name = "localhost"
		}
		hostname = name
	})
	return hostname
}
