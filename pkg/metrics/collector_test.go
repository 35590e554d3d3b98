package metrics

import (
	"context"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/cuemby/fdbexporter/pkg/fetcher"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted returns one canned response per call and repeats the last one
type scripted struct {
	calls     atomic.Int32
	responses []response
}

type response struct {
	body string
	err  error
}

func (s *scripted) Fetch(ctx context.Context) ([]byte, error) {
	i := int(s.calls.Add(1)) - 1
	if i >= len(s.responses) {
		i = len(s.responses) - 1
	}
	r := s.responses[i]
	if r.err != nil {
		return nil, r.err
	}
	return []byte(r.body), nil
}

const minimalDoc = `{"cluster":{"data":{"total_kv_size_bytes": 42}}}`

// TestCollectFailureThenSuccess tests that a failed tick is counted once and
// does not change what a later success publishes
func TestCollectFailureThenSuccess(t *testing.T) {
	ctx := context.Background()

	// success only
	refE := NewExporter(NewRegistry())
	ref := NewCollector(&scripted{responses: []response{{body: minimalDoc}}}, refE, time.Second)
	require.NoError(t, ref.Collect(ctx))

	// failure, then success
	e := NewExporter(NewRegistry())
	c := NewCollector(&scripted{responses: []response{
		{err: fmt.Errorf("%w: exit status 1", fetcher.ErrSourceUnavailable)},
		{body: minimalDoc},
	}}, e, time.Second)

	err := c.Collect(ctx)
	assert.ErrorIs(t, err, fetcher.ErrSourceUnavailable)
	assert.False(t, c.Ready())
	assert.True(t, c.LastSuccess().IsZero())
	assert.Equal(t, 1.0, testutil.ToFloat64(e.lastScrapeError))

	require.NoError(t, c.Collect(ctx))
	assert.True(t, c.Ready())
	assert.False(t, c.LastSuccess().IsZero())
	assert.Equal(t, 0.0, testutil.ToFloat64(e.lastScrapeError))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.fdbErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.parsingErrors))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.statusNotFound))
	assert.Equal(t, 0.0, testutil.ToFloat64(e.bindingErrors))
	assert.Equal(t, 2.0, testutil.ToFloat64(e.scrapes))

	pairs := []struct{ got, want *Scalar }{
		{e.data.totalKVSize, refE.data.totalKVSize},
		{e.data.partitionCount, refE.data.partitionCount},
		{e.data.state, refE.data.state},
		{e.data.movingInFlight, refE.data.movingInFlight},
		{e.cluster.generation, refE.cluster.generation},
	}
	for _, p := range pairs {
		require.Equal(t, testutil.CollectAndCount(p.want), testutil.CollectAndCount(p.got))
		if testutil.CollectAndCount(p.want) > 0 {
			assert.Equal(t, testutil.ToFloat64(p.want), testutil.ToFloat64(p.got))
		}
	}
	assert.Zero(t, testutil.CollectAndCount(e.data.partitionCount))
}

// TestCollectDecodeError tests that a malformed document counts as a parsing
// error and keeps earlier values
func TestCollectDecodeError(t *testing.T) {
	e := NewExporter(NewRegistry())
	c := NewCollector(&scripted{responses: []response{
		{body: minimalDoc},
		{body: `{"cluster":{"data":{"total_kv_size_bytes":"many"}}}`},
	}}, e, time.Second)

	require.NoError(t, c.Collect(context.Background()))
	require.Error(t, c.Collect(context.Background()))

	assert.Equal(t, 1.0, testutil.ToFloat64(e.parsingErrors))
	assert.Equal(t, 42.0, testutil.ToFloat64(e.data.totalKVSize))
	assert.True(t, c.Ready())
}

// TestRunStopsOnBindingFailure tests that a binding failure ends the loop
func TestRunStopsOnBindingFailure(t *testing.T) {
	e := NewExporter(NewRegistry())
	f := &scripted{responses: []response{
		{body: minimalDoc},
		{err: fmt.Errorf("%w: cluster file missing", fetcher.ErrBindingFailure)},
	}}
	c := NewCollector(f, e, 10*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := c.Run(ctx)
	assert.ErrorIs(t, err, fetcher.ErrBindingFailure)
	assert.Equal(t, int32(2), f.calls.Load())
	assert.Equal(t, 1.0, testutil.ToFloat64(e.bindingErrors))
	assert.Equal(t, 42.0, testutil.ToFloat64(e.data.totalKVSize))
}

// TestRunKeepsGoingOnTransientErrors tests that ordinary failures do not
// stop the loop and that cancellation does
func TestRunKeepsGoingOnTransientErrors(t *testing.T) {
	e := NewExporter(NewRegistry())
	f := &scripted{responses: []response{
		{err: fetcher.ErrStatusNotFound},
		{err: fetcher.ErrSourceUnavailable},
		{body: minimalDoc},
	}}
	c := NewCollector(f, e, 5*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, c.Ready, 5*time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}

	assert.Equal(t, 1.0, testutil.ToFloat64(e.statusNotFound))
	assert.Equal(t, 1.0, testutil.ToFloat64(e.fdbErrors))
	assert.GreaterOrEqual(t, f.calls.Load(), int32(3))
}

// TestRunWaitsOnePeriod tests the pause between ticks
func TestRunWaitsOnePeriod(t *testing.T) {
	f := &scripted{responses: []response{{body: minimalDoc}}}
	c := NewCollector(f, NewExporter(NewRegistry()), time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Run(ctx) }()

	require.Eventually(t, c.Ready, 5*time.Second, 5*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int32(1), f.calls.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

// TestCollectFetchDuration tests that every fetch attempt is timed under
// its source
func TestCollectFetchDuration(t *testing.T) {
	e := NewExporter(NewRegistry())
	c := NewCollector(&scripted{responses: []response{
		{body: minimalDoc},
		{err: fetcher.ErrStatusNotFound},
	}}, e, time.Second)

	require.NoError(t, c.Collect(context.Background()))
	require.Error(t, c.Collect(context.Background()))

	assert.Equal(t, "custom", c.source)
	assert.Equal(t, 1, testutil.CollectAndCount(e.fetchDuration))

	var m dto.Metric
	require.NoError(t, e.fetchDuration.WithLabelValues("custom").(prometheus.Histogram).Write(&m))
	assert.Equal(t, uint64(2), m.GetHistogram().GetSampleCount())
}

func TestNewCollectorDefaultPeriod(t *testing.T) {
	c := NewCollector(&scripted{}, NewExporter(NewRegistry()), 0)
	assert.Equal(t, DefaultPeriod, c.period)
}
