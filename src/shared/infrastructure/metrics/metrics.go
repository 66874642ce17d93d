package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Colectores del servicio POS, registrados en el registry por defecto
// que expone /metrics cuando PROMETHEUS_ENABLED=true
var (
	SalesCommitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pos_sales_committed_total",
		Help: "Ventas confirmadas con éxito",
	})

	CommitHardFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_commit_hard_failures_total",
		Help: "Commits abortados por fallo de un paso hard",
	}, []string{"step"})

	CommitSoftFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_commit_soft_failures_total",
		Help: "Efectos laterales fallidos que no abortan el commit",
	}, []string{"step"})

	ViewInvalidations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pos_view_invalidations_total",
		Help: "Señales de invalidación de vistas emitidas tras un commit",
	}, []string{"view"})
)
