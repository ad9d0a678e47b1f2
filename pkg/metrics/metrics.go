// Package metrics exports validation outcomes as Prometheus counters. A
// Collector satisfies form.Observer, so it can be attached to any form state
// with form.WithObserver.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

const namespace = "formfield"

// Result label values.
const (
	ResultValid   = "valid"
	ResultInvalid = "invalid"
)

// Collector counts validations per form, field type and outcome.
type Collector struct {
	validations *prometheus.CounterVec
	issues      *prometheus.CounterVec
}

// NewCollector builds the counters and registers them with reg. A nil
// registerer leaves the counters unregistered, which suits tests.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	c := &Collector{
		validations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validations_total",
			Help:      "Field validations by form, field type and result.",
		}, []string{"form", "field_type", "result"}),
		issues: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "validation_issues_total",
			Help:      "Rejected field values by form, field type and issue kind.",
		}, []string{"form", "field_type", "kind"}),
	}
	if reg == nil {
		return c, nil
	}
	for _, collector := range []prometheus.Collector{c.validations, c.issues} {
		if err := reg.Register(collector); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Observe records one validation outcome.
func (c *Collector) Observe(formID string, field model.Field, issue *validation.Issue) {
	fieldType := field.Type.String()
	if issue == nil {
		c.validations.WithLabelValues(formID, fieldType, ResultValid).Inc()
		return
	}
	c.validations.WithLabelValues(formID, fieldType, ResultInvalid).Inc()
	c.issues.WithLabelValues(formID, fieldType, string(issue.Kind)).Inc()
}

// Validations exposes the validations counter for tests and custom exporters.
func (c *Collector) Validations() *prometheus.CounterVec {
	return c.validations
}

// Issues exposes the issues counter.
func (c *Collector) Issues() *prometheus.CounterVec {
	return c.issues
}
