package monitor

import (
	"context"
	"fmt"
	"sync"

	rcron "github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// DefaultReportSchedule logs a summary every five minutes.
const DefaultReportSchedule = "@every 5m"

// StartReporting logs a performance summary on the cron schedule until ctx
// is done or the returned stop function is called.
func (m *Monitor) StartReporting(ctx context.Context, schedule string) (stop func(), err error) {
	if schedule == "" {
		schedule = DefaultReportSchedule
	}
	c := rcron.New()
	if _, err := c.AddFunc(schedule, m.logSummary); err != nil {
		return nil, fmt.Errorf("invalid report schedule %q: %w", schedule, err)
	}
	c.Start()

	var once sync.Once
	done := make(chan struct{})
	stop = func() {
		once.Do(func() {
			close(done)
			<-c.Stop().Done()
		})
	}
	go func() {
		select {
		case <-ctx.Done():
			stop()
		case <-done:
		}
	}()

	m.logger.Info("performance reporting started", zap.String("schedule", schedule))
	return stop, nil
}

func (m *Monitor) logSummary() {
	r := m.Report()
	m.logger.Info("performance summary",
		zap.Int("keys", len(r.Keys)),
		zap.Int("samples", r.TotalSamples),
		zap.Duration("avg_generation_time", r.AvgGenerationTime),
		zap.Float64("avg_polygons", r.AvgPolygons),
		zap.Float64("avg_memory_bytes", r.AvgMemory))
	for _, key := range sortedKeys(r.Keys) {
		s := r.Keys[key]
		if s.Status == StatusWarning || s.Status == StatusCritical {
			m.logger.Warn("key under pressure",
				zap.String("key", key),
				zap.String("status", string(s.Status)),
				zap.Duration("avg_generation_time", s.AvgGenerationTime))
		}
	}
}
