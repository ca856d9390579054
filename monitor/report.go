package monitor

import (
	"math"
	"sort"
	"time"
)

// TrendWindow is the number of recent samples DetailedReport analyses.
const TrendWindow = 10

// KeyStats summarises the history of one key.
type KeyStats struct {
	Count             int           `json:"count"`
	AvgGenerationTime time.Duration `json:"avgGenerationTime"`
	AvgPolygons       float64       `json:"avgPolygons"`
	AvgMemory         float64       `json:"avgMemory"`
	Status            Status        `json:"status"`
}

// Report is the summary over every key.
type Report struct {
	Keys              map[string]KeyStats `json:"keys"`
	TotalSamples      int                 `json:"totalSamples"`
	AvgGenerationTime time.Duration       `json:"avgGenerationTime"`
	AvgPolygons       float64             `json:"avgPolygons"`
	AvgMemory         float64             `json:"avgMemory"`
	Thresholds        Thresholds          `json:"thresholds"`
}

// Trend holds the least-squares slope of each metric per sample.
type Trend struct {
	GenerationTime float64 `json:"generationTime"`
	PolygonCount   float64 `json:"polygonCount"`
	MemoryUsage    float64 `json:"memoryUsage"`
}

// KeyDetail analyses the most recent samples of one key.
type KeyDetail struct {
	Samples     int     `json:"samples"`
	Trend       Trend   `json:"trend"`
	Worst       Sample  `json:"worst"`
	Best        Sample  `json:"best"`
	Consistency float64 `json:"consistency"`
}

// Report summarises all history.
func (m *Monitor) Report() Report {
	m.mu.Lock()
	defer m.mu.Unlock()

	r := Report{Keys: make(map[string]KeyStats, len(m.history)), Thresholds: m.thresholds}
	var totalTime time.Duration
	var totalPolys, totalMem float64
	for key, h := range m.history {
		if len(h) == 0 {
			continue
		}
		var keyTime time.Duration
		var keyPolys, keyMem float64
		for _, s := range h {
			keyTime += s.GenerationTime
			keyPolys += float64(s.PolygonCount)
			keyMem += float64(s.MemoryUsage)
		}
		n := len(h)
		avg := Metrics{
			GenerationTime: keyTime / time.Duration(n),
			PolygonCount:   int(math.Round(keyPolys / float64(n))),
			MemoryUsage:    int64(math.Round(keyMem / float64(n))),
		}
		r.Keys[key] = KeyStats{
			Count:             n,
			AvgGenerationTime: avg.GenerationTime,
			AvgPolygons:       keyPolys / float64(n),
			AvgMemory:         keyMem / float64(n),
			Status:            classify(avg, m.thresholds),
		}
		r.TotalSamples += n
		totalTime += keyTime
		totalPolys += keyPolys
		totalMem += keyMem
	}
	if r.TotalSamples > 0 {
		r.AvgGenerationTime = totalTime / time.Duration(r.TotalSamples)
		r.AvgPolygons = totalPolys / float64(r.TotalSamples)
		r.AvgMemory = totalMem / float64(r.TotalSamples)
	}
	return r
}

// DetailedReport analyses the last TrendWindow samples of every key.
func (m *Monitor) DetailedReport() map[string]KeyDetail {
	m.mu.Lock()
	windows := make(map[string][]Sample, len(m.history))
	for key, h := range m.history {
		if len(h) == 0 {
			continue
		}
		start := max(0, len(h)-TrendWindow)
		windows[key] = append([]Sample(nil), h[start:]...)
	}
	m.mu.Unlock()

	out := make(map[string]KeyDetail, len(windows))
	for key, w := range windows {
		out[key] = analyse(w)
	}
	return out
}

func analyse(w []Sample) KeyDetail {
	times := make([]float64, len(w))
	polys := make([]float64, len(w))
	mems := make([]float64, len(w))
	for i, s := range w {
		times[i] = float64(s.GenerationTime) / float64(time.Millisecond)
		polys[i] = float64(s.PolygonCount)
		mems[i] = float64(s.MemoryUsage)
	}

	worst, best := 0, 0
	for i := range w {
		if load(w[i]) > load(w[worst]) {
			worst = i
		}
		if load(w[i]) < load(w[best]) {
			best = i
		}
	}

	meanCV := (coefficientOfVariation(times) + coefficientOfVariation(polys) + coefficientOfVariation(mems)) / 3
	return KeyDetail{
		Samples: len(w),
		Trend: Trend{
			GenerationTime: slope(times),
			PolygonCount:   slope(polys),
			MemoryUsage:    slope(mems),
		},
		Worst:       w[worst],
		Best:        w[best],
		Consistency: math.Max(0, 1-meanCV),
	}
}

// load ranks samples by the sum of their raw metrics.
func load(s Sample) float64 {
	return float64(s.GenerationTime)/float64(time.Millisecond) + float64(s.PolygonCount) + float64(s.MemoryUsage)
}

// slope is the ordinary least squares slope of ys against 0..n-1.
func slope(ys []float64) float64 {
	n := float64(len(ys))
	if len(ys) < 2 {
		return 0
	}
	meanX := (n - 1) / 2
	meanY := mean(ys)
	var num, den float64
	for i, y := range ys {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	return num / den
}

// coefficientOfVariation uses the population standard deviation; a zero
// mean yields 0.
func coefficientOfVariation(xs []float64) float64 {
	mu := mean(xs)
	if mu == 0 {
		return 0
	}
	var sq float64
	for _, x := range xs {
		sq += (x - mu) * (x - mu)
	}
	return math.Sqrt(sq/float64(len(xs))) / math.Abs(mu)
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// sortedKeys returns report keys in a stable order for logging.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
