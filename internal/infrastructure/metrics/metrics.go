package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var defaultBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1}

// Metrics métricas Prometheus del registro de identificaciones.
type Metrics struct {
	Validations          *prometheus.CounterVec
	Registrations        *prometheus.CounterVec
	RegistrationDuration prometheus.Histogram
	StorageErrors        *prometheus.CounterVec
	HTTPRequestDuration  *prometheus.HistogramVec
}

// New registra las métricas en reg. Se recibe el Registerer para que los tests
// usen un registro propio y no choquen con el global.
func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Validations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_validations_total",
			Help: "Validaciones de identificación por tipo y resultado",
		}, []string{"type", "result"}),
		Registrations: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_registrations_total",
			Help: "Intentos de registro por resultado (created, conflict, invalid, error)",
		}, []string{"result"}),
		RegistrationDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "registro_registration_duration_seconds",
			Help:    "Duración de la fase de registro completa",
			Buckets: defaultBuckets,
		}),
		StorageErrors: f.NewCounterVec(prometheus.CounterOpts{
			Name: "registro_storage_errors_total",
			Help: "Fallos del almacenamiento por operación",
		}, []string{"op"}),
		HTTPRequestDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "registro_http_request_duration_seconds",
			Help:    "Duración de las peticiones HTTP",
			Buckets: defaultBuckets,
		}, []string{"method", "route", "status"}),
	}
}

// ObserveValidation cuenta una validación; result es el código de error o "valid".
func (m *Metrics) ObserveValidation(idType, result string) {
	m.Validations.WithLabelValues(idType, result).Inc()
}

// ObserveRegistration cuenta un intento de registro y su duración desde start.
func (m *Metrics) ObserveRegistration(result string, start time.Time) {
	m.Registrations.WithLabelValues(result).Inc()
	m.RegistrationDuration.Observe(time.Since(start).Seconds())
}

// IncrementStorageError cuenta un fallo del almacenamiento.
func (m *Metrics) IncrementStorageError(op string) {
	m.StorageErrors.WithLabelValues(op).Inc()
}

// ObserveHTTPRequest registra la duración de una petición.
func (m *Metrics) ObserveHTTPRequest(method, route string, status int, start time.Time) {
	m.HTTPRequestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(time.Since(start).Seconds())
}
