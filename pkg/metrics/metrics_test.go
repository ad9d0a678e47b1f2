package metrics_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/goliatone/go-formfield/pkg/form"
	"github.com/goliatone/go-formfield/pkg/metrics"
	"github.com/goliatone/go-formfield/pkg/model"
	"github.com/goliatone/go-formfield/pkg/validation"
)

func TestCollectorObservesFormState(t *testing.T) {
	reg := prometheus.NewRegistry()
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		t.Fatalf("new collector: %v", err)
	}

	f := model.MustForm("checkout",
		model.Field{Key: "card", Label: "Card", Type: model.FieldTypeCreditCard, Required: true},
		model.Field{Key: "email", Label: "Email", Type: model.FieldTypeEmail},
	)
	state := form.New(f, form.WithObserver(collector))
	_, _ = state.Set("card", "4111111111111112")
	_, _ = state.Set("email", "a@b.co")

	if got := testutil.ToFloat64(collector.Validations().WithLabelValues("checkout", "creditCard", metrics.ResultInvalid)); got != 1 {
		t.Fatalf("invalid card validations = %v", got)
	}
	if got := testutil.ToFloat64(collector.Issues().WithLabelValues("checkout", "creditCard", string(validation.KindChecksum))); got != 1 {
		t.Fatalf("checksum issues = %v", got)
	}
	if got := testutil.ToFloat64(collector.Validations().WithLabelValues("checkout", "email", metrics.ResultValid)); got != 1 {
		t.Fatalf("valid email validations = %v", got)
	}

	if _, err := metrics.NewCollector(reg); err == nil {
		t.Fatalf("expected duplicate registration to fail")
	}
}
