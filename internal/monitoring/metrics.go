package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reservations_total",
			Help: "Reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	ScansTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "ticket_scans_total",
			Help: "QR scan verifications by classification",
		},
		[]string{"result"},
	)

	HoldsReclaimed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "reservation_holds_reclaimed_total",
			Help: "Seats released by the expired-hold sweep",
		},
	)
)
