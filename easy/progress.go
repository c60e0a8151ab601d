package easy

import (
	"fmt"
	"log/slog"
	"time"
)

// progressMeter is the default progress callback, logging download
// progress at most once per interval.
type progressMeter struct {
	logger    *slog.Logger
	interval  time.Duration
	startTime time.Time
	lastLog   time.Time
	completed bool
}

func newProgressMeter(logger *slog.Logger, interval time.Duration) *progressMeter {
	return &progressMeter{
		logger:    logger,
		interval:  interval,
		startTime: time.Now(),
	}
}

func (pm *progressMeter) progress(dltotal, dlnow, _, _ int64, _ any) int {
	if time.Since(pm.lastLog) >= pm.interval {
		pm.lastLog = time.Now()
		pm.log("downloading", dltotal, dlnow)
	}

	if !pm.completed && dltotal > 0 && dlnow == dltotal {
		pm.completed = true
		pm.log("download complete", dltotal, dlnow)
	}

	return 0
}

func (pm *progressMeter) log(msg string, total, transferred int64) {
	elapsed := time.Since(pm.startTime)
	attrs := []any{
		"elapsed", elapsed.Round(time.Millisecond),
		"transferred", transferred,
		"total", total,
	}
	if total > 0 {
		attrs = append(attrs, "progress", fmt.Sprintf("%.1f%%", float64(transferred)/float64(total)*100))
	}
	if secs := elapsed.Seconds(); secs > 0 {
		attrs = append(attrs, "mbps", fmt.Sprintf("%.2f", float64(transferred)/secs/(1024*1024)))
	}
	pm.logger.Info(msg, attrs...)
}
