package metrics

import (
	"net/http"

	domainRepo "go-doctor-directory/internal/domain/repository"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// NewRegistry returns a registry with the Go runtime and process collectors.
func NewRegistry() *prometheus.Registry {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return reg
}

// RegisterStoreMetrics exposes the doctor store size and lifecycle state.
func RegisterStoreMetrics(reg prometheus.Registerer, repo domainRepo.DoctorRepository) {
	reg.MustRegister(
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "directory",
			Name:      "doctors_loaded",
			Help:      "Doctors held by the record store.",
		}, func() float64 {
			return float64(repo.Count())
		}),
		prometheus.NewGaugeFunc(prometheus.GaugeOpts{
			Namespace: "directory",
			Name:      "store_state",
			Help:      "Record store state: 0 loading, 1 ready, 2 failed.",
		}, func() float64 {
			return float64(repo.State())
		}),
	)
}

func Handler(reg *prometheus.Registry) http.Handler {
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})
}
