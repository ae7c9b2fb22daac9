package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	ClassificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smsflt_classifications_total",
			Help: "Classification results by resolved status label",
		},
		[]string{"status"}, // spam|not-spam|unknown
	)

	StoreOpsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "smsflt_store_ops_total",
			Help: "Record store operations by kind",
		},
		[]string{"op"}, // insert|list|update|delete
	)
)

func MustRegister(r prometheus.Registerer) {
	r.MustRegister(
		ClassificationsTotal,
		StoreOpsTotal,
	)
}
