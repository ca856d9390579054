package monitor

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

const exportVersion = 1

// wireSample is the exported form of a Sample; generation time in milliseconds.
type wireSample struct {
	Timestamp      time.Time `json:"timestamp"`
	GenerationTime float64   `json:"generationTime"`
	PolygonCount   int       `json:"polygonCount"`
	MemoryUsage    int64     `json:"memoryUsage"`
}

type wireThresholds struct {
	MaxGenerationTime float64 `json:"maxGenerationTime"`
	MaxPolygons       int     `json:"maxPolygons"`
	MaxMemoryBytes    int64   `json:"maxMemoryBytes"`
}

type exportDocument struct {
	Version    int                     `json:"version"`
	ExportedAt time.Time               `json:"exportedAt"`
	Thresholds wireThresholds          `json:"thresholds"`
	History    map[string][]wireSample `json:"history"`
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func fromMillis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// Export serialises thresholds and history as JSON.
func (m *Monitor) Export() ([]byte, error) {
	m.mu.Lock()
	doc := exportDocument{
		Version:    exportVersion,
		ExportedAt: m.now().UTC(),
		Thresholds: wireThresholds{
			MaxGenerationTime: toMillis(m.thresholds.MaxGenerationTime),
			MaxPolygons:       m.thresholds.MaxPolygons,
			MaxMemoryBytes:    m.thresholds.MaxMemoryBytes,
		},
		History: make(map[string][]wireSample, len(m.history)),
	}
	for key, h := range m.history {
		samples := make([]wireSample, len(h))
		for i, s := range h {
			samples[i] = wireSample{
				Timestamp:      s.Timestamp,
				GenerationTime: toMillis(s.GenerationTime),
				PolygonCount:   s.PolygonCount,
				MemoryUsage:    s.MemoryUsage,
			}
		}
		doc.History[key] = samples
	}
	m.mu.Unlock()

	return json.Marshal(doc)
}

// Import merges exported history into the monitor and returns the number of
// samples accepted. Malformed input is logged and ignored; invalid samples
// are skipped. Imported thresholds are not applied.
func (m *Monitor) Import(data []byte) int {
	var doc exportDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		m.logger.Warn("ignoring malformed performance export", zap.Error(err))
		return 0
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	imported := 0
	for key, samples := range doc.History {
		if key == "" {
			continue
		}
		h := m.history[key]
		for _, s := range samples {
			if s.GenerationTime < 0 || s.PolygonCount < 0 || s.MemoryUsage < 0 {
				continue
			}
			h = append(h, Sample{
				Timestamp: s.Timestamp,
				Metrics: Metrics{
					GenerationTime: fromMillis(s.GenerationTime),
					PolygonCount:   s.PolygonCount,
					MemoryUsage:    s.MemoryUsage,
				},
			})
			imported++
		}
		h = trimHistory(h, m.historySize)
		if len(h) > 0 {
			m.history[key] = h
		}
	}
	return imported
}

// SaveSnapshot exports the monitor into the store under key.
func (m *Monitor) SaveSnapshot(ctx context.Context, store SnapshotStore, key string) error {
	data, err := m.Export()
	if err != nil {
		return types.NewError(types.ErrSnapshotFailed, "export failed").WithCause(err)
	}
	if err := store.Save(ctx, key, data); err != nil {
		return types.Errorf(types.ErrSnapshotFailed, "save %s", key).WithCause(err).WithRetryable(true)
	}
	m.logger.Debug("performance snapshot saved", zap.String("key", key), zap.Int("bytes", len(data)))
	return nil
}

// RestoreSnapshot imports a snapshot from the store and returns the number
// of samples restored.
func (m *Monitor) RestoreSnapshot(ctx context.Context, store SnapshotStore, key string) (int, error) {
	data, err := store.Load(ctx, key)
	if err != nil {
		return 0, types.Errorf(types.ErrSnapshotFailed, "load %s", key).WithCause(err)
	}
	n := m.Import(data)
	m.logger.Info("performance snapshot restored", zap.String("key", key), zap.Int("samples", n))
	return n, nil
}
