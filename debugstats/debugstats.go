package debugstats

import (
	"context"
	"github.com/lefinal/mu/logging"
	"github.com/lefinal/mu/services"
	"runtime"
	"time"
)

// EventSystemStats is the event name used for logging system stats.
const EventSystemStats = "system_stats"

type Config struct {
	// IsEnabled describes whether periodic debug stats logging is desired.
	IsEnabled bool
	// Interval in which to log debug stats.
	Interval time.Duration
}

type debugStatsService struct {
	logger *logging.EventView
	config Config
}

// NewService creates a service that logs EventSystemStats with
// logging.DebugLevel in the configured interval.
func NewService(logger *logging.EventLogger, config Config) services.Service {
	return &debugStatsService{
		logger: logger.ForEvent(EventSystemStats),
		config: config,
	}
}

func (s *debugStatsService) Run(ctx context.Context) error {
	if !s.config.IsEnabled || s.config.Interval <= 0 {
		return nil
	}
	_ = s.logger.Debug(logging.Fields{logging.F("interval", s.config.Interval.String())})
	logSystemDebugStats(ctx, s.config.Interval, s.logger)
	return nil
}

// logSystemDebugStats logs the current system state like memory stats and
// number of goroutines to the given logging.EventView in the given interval.
// The duration of the event is the time needed for collecting the stats.
func logSystemDebugStats(ctx context.Context, interval time.Duration, logger *logging.EventView) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_ = logger.DebugTimed(nil, collectStats)
		}
	}
}

func collectStats(extra *logging.Fields) error {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)
	extra.Set("num_cpu", runtime.NumCPU())
	extra.Set("num_goroutine", runtime.NumGoroutine())
	extra.Set("memory", logging.Fields{
		logging.F("sys_mb", memStats.Sys/1000/1000),
		logging.F("heap_alloc_mb", memStats.HeapAlloc/1000/1000),
	})
	extra.Set("gc", logging.Fields{
		logging.F("num", memStats.NumGC),
		logging.F("pause_total_ms", float64(memStats.PauseTotalNs)/float64(time.Millisecond)),
	})
	return nil
}
