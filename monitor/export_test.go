package monitor

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/saleemjadallah/visualz-backend-sub003/internal/cache"
	"github.com/saleemjadallah/visualz-backend-sub003/parametric"
	"github.com/saleemjadallah/visualz-backend-sub003/testutil"
	"github.com/saleemjadallah/visualz-backend-sub003/types"
)

func TestExportImport_RoundTrip(t *testing.T) {
	src := newTestMonitor(t)
	src.RecordGeneration(parametric.TypeChair, parametric.CultureJapanese,
		Metrics{GenerationTime: 12500 * time.Microsecond, PolygonCount: 800, MemoryUsage: 64_000})
	src.RecordGeneration(parametric.TypeSofa, parametric.CultureItalian,
		Metrics{GenerationTime: 40 * time.Millisecond, PolygonCount: 2400, MemoryUsage: 190_000})

	data, err := src.Export()
	require.NoError(t, err)

	doc := testutil.MustParseJSON(t, string(data))
	assert.EqualValues(t, 1, doc["version"])
	thresholds := doc["thresholds"].(map[string]any)
	assert.EqualValues(t, 1000, thresholds["maxGenerationTime"], "exported in milliseconds")

	dst := newTestMonitor(t)
	assert.Equal(t, 2, dst.Import(data))

	got := dst.History("chair-japanese")
	require.Len(t, got, 1)
	assert.Equal(t, 12500*time.Microsecond, got[0].GenerationTime)
	assert.Equal(t, 800, got[0].PolygonCount)
	assert.Equal(t, int64(64_000), got[0].MemoryUsage)
	assert.True(t, src.History("chair-japanese")[0].Timestamp.Equal(got[0].Timestamp))
	assert.Len(t, dst.History("sofa-italian"), 1)
}

func TestImport_MalformedInputIsIgnored(t *testing.T) {
	m := newTestMonitor(t)
	m.RecordGeneration(parametric.TypeChair, parametric.CultureModern, fast())

	for _, in := range []string{"", "not json", `{"history": 5}`, `[1,2,3]`} {
		assert.Zero(t, m.Import([]byte(in)), "input %q", in)
	}
	assert.Len(t, m.History("chair-modern"), 1, "existing history untouched")
}

func TestImport_SkipsInvalidSamples(t *testing.T) {
	m := newTestMonitor(t)

	data := testutil.MustJSON(t, map[string]any{
		"version": 1,
		"history": map[string]any{
			"": []map[string]any{{"generationTime": 5}},
			"bench-french": []map[string]any{
				{"generationTime": 5, "polygonCount": 10, "memoryUsage": 100},
				{"generationTime": -1, "polygonCount": 10, "memoryUsage": 100},
				{"generationTime": 5, "polygonCount": -3, "memoryUsage": 100},
			},
		},
	})

	assert.Equal(t, 1, m.Import([]byte(data)))
	assert.Len(t, m.History("bench-french"), 1)
	assert.Empty(t, m.History(""))
}

func TestImport_AppliesHistoryBound(t *testing.T) {
	m := newTestMonitor(t, WithHistorySize(5))
	m.RecordGeneration(parametric.TypeChair, parametric.CultureModern, Metrics{PolygonCount: -1})

	samples := make([]map[string]any, 8)
	for i := range samples {
		samples[i] = map[string]any{"generationTime": 1, "polygonCount": i, "memoryUsage": 1}
	}
	data := testutil.MustJSON(t, map[string]any{"history": map[string]any{"chair-modern": samples}})

	assert.Equal(t, 8, m.Import([]byte(data)))
	h := m.History("chair-modern")
	require.Len(t, h, 5)
	assert.Equal(t, 3, h[0].PolygonCount)
	assert.Equal(t, 7, h[4].PolygonCount)
}

func TestImport_DoesNotApplyThresholds(t *testing.T) {
	src := newTestMonitor(t)
	src.SetThresholds(Thresholds{MaxPolygons: 10})
	data, err := src.Export()
	require.NoError(t, err)

	var doc exportDocument
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, 10, doc.Thresholds.MaxPolygons)

	dst := newTestMonitor(t)
	dst.Import(data)
	assert.Equal(t, DefaultThresholds(), dst.Thresholds())
}

func setupSnapshotStore(t *testing.T) *cache.RedisStore {
	t.Helper()
	mr := miniredis.RunT(t)

	cfg := cache.DefaultConfig()
	cfg.Addr = mr.Addr()
	cfg.HealthCheckInterval = 0
	store, err := cache.NewRedisStore(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSnapshot_RoundTripThroughRedis(t *testing.T) {
	store := setupSnapshotStore(t)
	ctx := testutil.TestContext(t)

	src := newTestMonitor(t)
	for i := 0; i < 3; i++ {
		src.RecordGeneration(parametric.TypeCoffeeTable, parametric.CultureScandinavian, fast())
	}
	require.NoError(t, src.SaveSnapshot(ctx, store, "monitor"))

	dst := newTestMonitor(t)
	n, err := dst.RestoreSnapshot(ctx, store, "monitor")
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Len(t, dst.History("coffee-table-scandinavian"), 3)
}

func TestRestoreSnapshot_Missing(t *testing.T) {
	store := setupSnapshotStore(t)

	n, err := newTestMonitor(t).RestoreSnapshot(testutil.TestContext(t), store, "absent")
	require.Error(t, err)
	assert.Zero(t, n)
	assert.True(t, types.IsErrorCode(err, types.ErrSnapshotFailed))
	assert.True(t, cache.IsCacheMiss(err))
}

type failingStore struct{ err error }

func (f failingStore) Save(context.Context, string, []byte) error { return f.err }
func (f failingStore) Load(context.Context, string) ([]byte, error) {
	return nil, f.err
}

func TestSaveSnapshot_StoreFailure(t *testing.T) {
	boom := errors.New("connection reset")
	err := newTestMonitor(t).SaveSnapshot(context.Background(), failingStore{err: boom}, "monitor")

	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.True(t, types.IsErrorCode(err, types.ErrSnapshotFailed))
	assert.True(t, types.IsRetryable(err))
}
