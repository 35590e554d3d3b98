package metrics

import (
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Number is any numeric field type found in the status document
type Number interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64 | ~float32 | ~float64
}

// Setter writes the current value of one series
type Setter interface {
	Set(float64)
}

// SetIfPresent writes *v to s. A nil v leaves s untouched, so the series
// keeps whatever it held before.
func SetIfPresent[T Number](s Setter, v *T) {
	if v == nil {
		return
	}
	s.Set(float64(*v))
}

// SetBoolIfPresent writes 1 for true and 0 for false. A nil v is a no-op.
func SetBoolIfPresent(s Setter, v *bool) {
	if v == nil {
		return
	}
	if *v {
		s.Set(1)
	} else {
		s.Set(0)
	}
}

// Registry owns every metric published by the exporter. It is built once at
// startup and shared by the collector, which writes, and the HTTP handler,
// which reads.
type Registry struct {
	reg *prometheus.Registry
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{reg: prometheus.NewRegistry()}
}

// RegisterRuntimeCollectors adds the Go runtime and process collectors
func (r *Registry) RegisterRuntimeCollectors() {
	r.reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
}

// Gauge registers an unlabelled gauge. It is not exported until the first
// Set, so a field never seen in any document has no series at all.
func (r *Registry) Gauge(name, help string) *Scalar {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, nil)
	r.reg.MustRegister(vec)
	return &Scalar{vec: vec}
}

// Counter registers an unlabelled counter
func (r *Registry) Counter(name, help string) prometheus.Counter {
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: name, Help: help})
	r.reg.MustRegister(c)
	return c
}

// Histogram registers an unlabelled histogram. nil buckets means
// prometheus.DefBuckets.
func (r *Registry) Histogram(name, help string, buckets []float64) prometheus.Histogram {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: buckets,
	})
	r.reg.MustRegister(h)
	return h
}

// Family registers a gauge keyed by the given labels. Series appear on first
// write and are never removed.
func (r *Registry) Family(name, help string, labels ...string) *Family {
	vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{Name: name, Help: help}, labels)
	r.reg.MustRegister(vec)
	return &Family{name: name, vec: vec, labels: len(labels)}
}

// HistogramVec registers a histogram keyed by the given labels. nil buckets
// means prometheus.DefBuckets.
func (r *Registry) HistogramVec(name, help string, buckets []float64, labels ...string) *prometheus.HistogramVec {
	if buckets == nil {
		buckets = prometheus.DefBuckets
	}
	vec := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    name,
		Help:    help,
		Buckets: buckets,
	}, labels)
	r.reg.MustRegister(vec)
	return vec
}

// Gatherer exposes the underlying registry for reading
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// Handler returns the Prometheus HTTP handler serving this registry
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{
		Registry:      r.reg,
		ErrorHandling: promhttp.ContinueOnError,
	})
}

// Family is a gauge vector whose series are keyed by runtime identities such
// as process ids or coordinator addresses.
type Family struct {
	name   string
	vec    *prometheus.GaugeVec
	labels int
}

// With returns a Setter for one label tuple. The series is only created
// when a value is written through it.
func (f *Family) With(values ...string) Setter {
	if len(values) != f.labels {
		panic(fmt.Sprintf("metric %s: got %d label values, want %d", f.name, len(values), f.labels))
	}
	return lazySetter{vec: f.vec, values: values}
}

// lazySetter resolves its series at write time
type lazySetter struct {
	vec    *prometheus.GaugeVec
	values []string
}

func (l lazySetter) Set(v float64) {
	l.vec.WithLabelValues(l.values...).Set(v)
}

// Scalar is a gauge without labels whose single series is created on the
// first Set. It is also a prometheus.Collector, so it can be read back with
// testutil.ToFloat64 once written.
type Scalar struct {
	vec *prometheus.GaugeVec
}

// Set creates the series if needed and writes v
func (s *Scalar) Set(v float64) {
	s.vec.WithLabelValues().Set(v)
}

// Describe implements prometheus.Collector
func (s *Scalar) Describe(ch chan<- *prometheus.Desc) {
	s.vec.Describe(ch)
}

// Collect implements prometheus.Collector
func (s *Scalar) Collect(ch chan<- prometheus.Metric) {
	s.vec.Collect(ch)
}
