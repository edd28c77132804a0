package main

import (
	"github.com/pdbogen/mkelem/dom"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"golang.org/x/net/html/atom"
)

type Metrics struct {
	Created  *prometheus.CounterVec
	Errors   *prometheus.CounterVec
	Duration prometheus.Histogram
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Created: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mkelem",
			Name:      "elements_created_total",
			Help:      "Elements built, by tag.",
		}, []string{"tag"}),
		Errors: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mkelem",
			Name:      "errors_total",
			Help:      "Failures building or rendering elements, by stage.",
		}, []string{"stage"}),
		Duration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "mkelem",
			Name:      "render_duration_seconds",
			Help:      "Time to build and serialize one element.",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
	}
}

// tagLabel keeps the tag label bounded: known HTML names are themselves, anything else is "other".
func tagLabel(name string) string {
	a := atom.Lookup([]byte(dom.LocalNameOf(name)))
	if a == 0 {
		return "other"
	}
	return a.String()
}
