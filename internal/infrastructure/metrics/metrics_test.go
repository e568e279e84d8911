package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveValidation("NIT", "valid")
	m.ObserveValidation("NIT", "valid")
	m.ObserveValidation("NIT", "TOO_SHORT")
	m.ObserveRegistration("created", time.Now())
	m.ObserveRegistration("conflict", time.Now())
	m.IncrementStorageError("insert")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Validations.WithLabelValues("NIT", "valid")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Validations.WithLabelValues("NIT", "TOO_SHORT")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Registrations.WithLabelValues("created")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.StorageErrors.WithLabelValues("insert")))
}

func TestNew_IndependentRegistries(t *testing.T) {
	assert.NotPanics(t, func() {
		New(prometheus.NewRegistry())
		New(prometheus.NewRegistry())
	})
}
