package app

import (
	"github.com/caarlos0/env/v10"
	"github.com/gobuffalo/nulls"
	"github.com/joho/godotenv"
	"github.com/lefinal/mu/errors"
	"github.com/lefinal/mu/logging"
	"os"
	"strings"
	"time"
)

// LogFormatColored selects the logging.ColoredFormatter. Any other format
// selects the logging.JSONFormatter.
const LogFormatColored = "colored"

// environmentVar is the environment variable holding the environment name.
const environmentVar = "APP_ENV"

// Console outputs for Config.LogOutput. Any other value is a file path.
const (
	outputStdout = "stdout"
	outputStderr = "stderr"
)

// Config is the configuration needed in order to set up logging. It is read
// from environment variables.
type Config struct {
	// AppName is the name of the application that is added to each JSON line.
	AppName string `env:"APP_NAME" envDefault:"application"`
	// Environment is the name of the environment like production or development.
	Environment string `env:"APP_ENV" envDefault:"development"`
	// LogFormat is the format of log lines. See LogFormatColored.
	LogFormat string `env:"LOG_FORMAT"`
	// LogLevel is the minimum level. Unknown levels fall back to
	// logging.DefaultLevel.
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogOutput is stdout, stderr or the path of a log file.
	LogOutput string `env:"LOG_OUTPUT" envDefault:"stdout"`
	// LogMaxSizeMB is the maximum size of a log file before it gets rotated.
	LogMaxSizeMB int `env:"LOG_MAX_SIZE_MB" envDefault:"100"`
	// LogKeepDays is the number of days to keep rotated log files. Zero keeps
	// them forever.
	LogKeepDays int `env:"LOG_KEEP_DAYS" envDefault:"0"`
	// SystemStatsInterval is the interval for logging system stats with
	// logging.DebugLevel. Zero disables them.
	SystemStatsInterval time.Duration `env:"LOG_SYSTEM_STATS_INTERVAL" envDefault:"0"`
	// MetricsAddr is the address to serve Prometheus metrics on. If empty, no
	// metrics are served.
	MetricsAddr string `env:"METRICS_ADDR"`
}

// LoadConfig loads env files for the current environment and parses the Config
// from the environment.
func LoadConfig() (Config, error) {
	environment := os.Getenv(environmentVar)
	if environment == "" {
		environment = logging.DefaultEnvironment
	}
	err := LoadEnvFiles(environment)
	if err != nil {
		return Config{}, errors.Wrap(err, "load env files", nil)
	}
	var config Config
	err = env.Parse(&config)
	if err != nil {
		return Config{}, errors.FromErr("parse config from environment", errors.ErrInvalidConfig, err, nil)
	}
	return config, nil
}

// LoadEnvFiles loads <environment>.env and .env from the working directory.
// Variables that are already set are not overwritten and files loaded first
// take precedence. Missing files are skipped.
func LoadEnvFiles(environment string) error {
	for _, filename := range []string{environment + ".env", ".env"} {
		if _, err := os.Stat(filename); err != nil {
			continue
		}
		err := godotenv.Load(filename)
		if err != nil {
			return errors.Error{
				Code:    errors.ErrInvalidConfig,
				Err:     err,
				Message: "load env file",
				Details: errors.Details{"filename": filename},
			}
		}
	}
	return nil
}

// ValidateConfig assures that the given Config can be used for SetupLogging.
func ValidateConfig(config Config) error {
	if config.AppName == "" {
		return errors.NewInvalidConfigError(errors.KindMissingName, "missing app name", nil)
	}
	if config.Environment == "" {
		return errors.NewInvalidConfigError(errors.KindMissingName, "missing environment name", nil)
	}
	if config.LogMaxSizeMB < 0 || config.LogKeepDays < 0 {
		return errors.NewInvalidConfigError(errors.KindNegativeLimit, "log file limits must not be negative",
			errors.Details{"max_size_mb": config.LogMaxSizeMB, "keep_days": config.LogKeepDays})
	}
	if config.SystemStatsInterval < 0 {
		return errors.NewInvalidConfigError(errors.KindNegativeLimit, "system stats interval must not be negative",
			errors.Details{"interval": config.SystemStatsInterval.String()})
	}
	return nil
}

// Identity returns the logging.Identity for the Config.
func (config Config) Identity() logging.Identity {
	return logging.Identity{
		App:         config.AppName,
		Environment: config.Environment,
	}
}

// Level returns the parsed LogLevel or logging.DefaultLevel if unknown.
func (config Config) Level() logging.Level {
	level, _ := logging.ParseLevel(config.LogLevel)
	return level
}

// SinkConfig returns the logging.SinkConfig for the Config.
func (config Config) SinkConfig() logging.SinkConfig {
	sinkConfig := logging.SinkConfig{
		MinLevel: config.Level(),
		MaxSize:  config.LogMaxSizeMB,
		KeepDays: config.LogKeepDays,
	}
	switch output := strings.TrimSpace(config.LogOutput); strings.ToLower(output) {
	case "", outputStdout:
	case outputStderr:
		sinkConfig.Stderr = true
	default:
		sinkConfig.File = nulls.NewString(output)
	}
	return sinkConfig
}
