package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Field declares one member of a Group
type Field struct {
	Name string
	Help string
}

// Group is a set of gauges that describe the same keyed object, for example
// the memory of a process. Every member is published as prefix_name and all
// members share the same label names.
type Group struct {
	prefix string
	labels []string
	vecs   map[string]*prometheus.GaugeVec
}

// Group registers one gauge vector per field
func (r *Registry) Group(prefix string, labels []string, fields ...Field) *Group {
	g := &Group{
		prefix: prefix,
		labels: labels,
		vecs:   make(map[string]*prometheus.GaugeVec, len(fields)),
	}
	for _, f := range fields {
		if _, dup := g.vecs[f.Name]; dup {
			panic(fmt.Sprintf("metric group %s: duplicate field %s", prefix, f.Name))
		}
		vec := prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: prefix + "_" + f.Name,
			Help: f.Help,
		}, labels)
		r.reg.MustRegister(vec)
		g.vecs[f.Name] = vec
	}
	return g
}

// With binds the group to one label tuple
func (g *Group) With(values ...string) Series {
	if len(values) != len(g.labels) {
		panic(fmt.Sprintf("metric group %s: got %d label values, want %d", g.prefix, len(values), len(g.labels)))
	}
	return Series{group: g, values: values}
}

// Series is a Group bound to one label tuple
type Series struct {
	group  *Group
	values []string
}

// Field returns the Setter of one member. Nothing is created until a value
// is written.
func (s Series) Field(name string) Setter {
	vec, ok := s.group.vecs[name]
	if !ok {
		panic(fmt.Sprintf("metric group %s: undeclared field %s", s.group.prefix, name))
	}
	return lazySetter{vec: vec, values: s.values}
}
