package notify

import (
	"log"
	"strings"

	"pos/src/checkout/domain/port"
	"pos/src/shared/infrastructure/metrics"
)

// LogViewNotifier implementa ViewNotifier registrando la señal y exponiéndola
// como métrica. El contrato es solo "estas vistas pueden estar obsoletas":
// los lectores downstream deciden cuándo y cómo refrescar.
type LogViewNotifier struct{}

// NewLogViewNotifier crea una nueva instancia del notificador
func NewLogViewNotifier() *LogViewNotifier {
	return &LogViewNotifier{}
}

// Invalidate señala que las vistas nombradas deben tratarse como refrescables
func (n *LogViewNotifier) Invalidate(views ...port.View) {
	names := make([]string, 0, len(views))
	for _, v := range views {
		names = append(names, string(v))
		metrics.ViewInvalidations.WithLabelValues(string(v)).Inc()
	}
	log.Printf("🔄 Vistas invalidadas: %s", strings.Join(names, ", "))
}
