package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics expose les compteurs d'exploitation du service transit.
type Metrics struct {
	// Dossiers ouverts depuis le démarrage
	ShipmentsCreated prometheus.Counter

	// Paiements de liquidation par résultat : "validated", "refused", "no_pending"
	Payments *prometheus.CounterVec

	// Changements de statut par état d'arrivée
	StatusTransitions *prometheus.CounterVec
}

// New crée et enregistre les métriques sur le registre par défaut.
func New() *Metrics {
	return &Metrics{
		ShipmentsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "transit_shipments_created_total",
			Help: "Nombre total de dossiers ouverts",
		}),
		Payments: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_liquidation_payments_total",
			Help: "Paiements de liquidation par résultat",
		}, []string{"result"}),
		StatusTransitions: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "transit_status_transitions_total",
			Help: "Transitions de statut par état cible",
		}, []string{"to"}),
	}
}

// IncPayment comptabilise un paiement de liquidation.
func (m *Metrics) IncPayment(result string) {
	if m != nil {
		m.Payments.WithLabelValues(result).Inc()
	}
}

// IncShipmentCreated comptabilise une ouverture de dossier.
func (m *Metrics) IncShipmentCreated() {
	if m != nil {
		m.ShipmentsCreated.Inc()
	}
}

// IncTransition comptabilise un changement de statut.
func (m *Metrics) IncTransition(to string) {
	if m != nil {
		m.StatusTransitions.WithLabelValues(to).Inc()
	}
}
