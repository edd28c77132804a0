package main

import (
	"time"

	"github.com/pdbogen/mkelem/dom"
	"github.com/pdbogen/mkelem/elem"
	"github.com/pdbogen/mkelem/types"
)

// render builds spec and returns its outer HTML. Errors are the element host's, unchanged.
func render(m *Metrics, spec types.Spec) (string, error) {
	start := time.Now()
	el, err := elem.Build(dom.NewDocument(), spec)
	if err != nil {
		m.Errors.WithLabelValues("create").Inc()
		return "", err
	}
	markup, err := elem.Render(el)
	if err != nil {
		m.Errors.WithLabelValues("render").Inc()
		return "", err
	}
	m.Duration.Observe(time.Since(start).Seconds())
	m.Created.WithLabelValues(tagLabel(spec.Name)).Inc()
	return markup, nil
}
