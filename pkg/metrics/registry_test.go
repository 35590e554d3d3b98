package metrics

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptr[T any](v T) *T {
	return &v
}

// TestSetIfPresent tests that nil values never overwrite a series
func TestSetIfPresent(t *testing.T) {
	r := NewRegistry()
	g := r.Gauge("test_gauge", "test")

	SetIfPresent(g, ptr(int64(7)))
	assert.Equal(t, 7.0, testutil.ToFloat64(g))

	SetIfPresent[int64](g, nil)
	assert.Equal(t, 7.0, testutil.ToFloat64(g))

	SetIfPresent(g, ptr(0.25))
	assert.Equal(t, 0.25, testutil.ToFloat64(g))

	SetIfPresent(g, ptr(int64(0)))
	assert.Equal(t, 0.0, testutil.ToFloat64(g))
}

// TestSetBoolIfPresent tests boolean conversion
func TestSetBoolIfPresent(t *testing.T) {
	r := NewRegistry()
	g := r.Gauge("test_bool", "test")

	SetBoolIfPresent(g, ptr(true))
	assert.Equal(t, 1.0, testutil.ToFloat64(g))

	SetBoolIfPresent(g, nil)
	assert.Equal(t, 1.0, testutil.ToFloat64(g))

	SetBoolIfPresent(g, ptr(false))
	assert.Equal(t, 0.0, testutil.ToFloat64(g))
}

// TestFamilyKeepsStaleSeries tests that a key seen once keeps its value
// while it is absent from later ticks
func TestFamilyKeepsStaleSeries(t *testing.T) {
	r := NewRegistry()
	f := r.Family("test_family", "test", "key")

	// tick 1
	SetIfPresent(f.With("K"), ptr(int64(5)))
	SetIfPresent(f.With("L"), ptr(int64(1)))

	// tick 2: K absent, L updated
	SetIfPresent[int64](f.With("K"), nil)
	SetIfPresent(f.With("L"), ptr(int64(2)))

	assert.Equal(t, 5.0, testutil.ToFloat64(f.vec.WithLabelValues("K")))
	assert.Equal(t, 2.0, testutil.ToFloat64(f.vec.WithLabelValues("L")))
	assert.Equal(t, 2, testutil.CollectAndCount(f.vec))
}

// TestFamilyIsLazy tests that binding a key creates nothing until a write
func TestFamilyIsLazy(t *testing.T) {
	r := NewRegistry()
	f := r.Family("test_lazy", "test", "key")

	s := f.With("K")
	assert.Equal(t, 0, testutil.CollectAndCount(f.vec))

	SetIfPresent[float64](s, nil)
	assert.Equal(t, 0, testutil.CollectAndCount(f.vec))

	s.Set(3)
	assert.Equal(t, 1, testutil.CollectAndCount(f.vec))
}

// TestGaugeIsLazy tests that an unlabelled gauge has no series until its
// first write, and that a written 0 is exported
func TestGaugeIsLazy(t *testing.T) {
	r := NewRegistry()
	g := r.Gauge("test_scalar", "scalar")

	n, err := testutil.GatherAndCount(r.Gatherer(), "test_scalar")
	require.NoError(t, err)
	assert.Zero(t, n)

	SetIfPresent[int64](g, nil)
	assert.Zero(t, testutil.CollectAndCount(g))

	SetBoolIfPresent(g, ptr(false))
	expected := `
# HELP test_scalar scalar
# TYPE test_scalar gauge
test_scalar 0
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected), "test_scalar"))
}

// TestHistogramVec tests per-label histograms
func TestHistogramVec(t *testing.T) {
	r := NewRegistry()
	vec := r.HistogramVec("test_fetch_seconds", "fetch", nil, "source")

	NewTimer().ObserveDurationVec(vec, "fdbcli")
	NewTimer().ObserveDurationVec(vec, "file")

	assert.Equal(t, 2, testutil.CollectAndCount(vec))
}

// TestFamilyArity tests that a wrong number of label values panics
func TestFamilyArity(t *testing.T) {
	r := NewRegistry()
	f := r.Family("test_arity", "test", "a", "b")

	assert.Panics(t, func() { f.With("only-one") })
	assert.NotPanics(t, func() { f.With("x", "y") })
}

// TestGroup tests grouped fields sharing one label tuple
func TestGroup(t *testing.T) {
	r := NewRegistry()
	g := r.Group("test_memory", []string{"process_id"},
		Field{"used_bytes", "used"},
		Field{"limit_bytes", "limit"},
	)

	s := g.With("p1")
	SetIfPresent(s.Field("used_bytes"), ptr(int64(100)))
	SetIfPresent[int64](s.Field("limit_bytes"), nil)

	assert.Equal(t, 100.0, testutil.ToFloat64(g.vecs["used_bytes"].WithLabelValues("p1")))
	assert.Equal(t, 1, testutil.CollectAndCount(g.vecs["used_bytes"]))
	assert.Equal(t, 0, testutil.CollectAndCount(g.vecs["limit_bytes"]))

	expected := `
# HELP test_memory_used_bytes used
# TYPE test_memory_used_bytes gauge
test_memory_used_bytes{process_id="p1"} 100
`
	require.NoError(t, testutil.GatherAndCompare(r.Gatherer(), strings.NewReader(expected),
		"test_memory_used_bytes", "test_memory_limit_bytes"))
}

// TestGroupMisuse tests the programming errors a group rejects
func TestGroupMisuse(t *testing.T) {
	r := NewRegistry()
	g := r.Group("test_misuse", []string{"a"}, Field{"x", "x"})

	assert.Panics(t, func() { g.With() })
	assert.Panics(t, func() { g.With("1").Field("undeclared") })
	assert.Panics(t, func() {
		r.Group("test_dup", []string{"a"}, Field{"x", "x"}, Field{"x", "again"})
	})
	assert.Panics(t, func() {
		r.Group("test_misuse", []string{"a"}, Field{"x", "registered twice"})
	})
}

// TestRegistryHandler tests that the handler serves registered metrics
func TestRegistryHandler(t *testing.T) {
	r := NewRegistry()
	r.Gauge("test_served", "served").Set(42)

	n, err := testutil.GatherAndCount(r.Gatherer(), "test_served")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.NotNil(t, r.Handler())
}
