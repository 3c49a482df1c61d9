package metrics

import (
	"github.com/goodnatureofminers/ckb-cell-indexer/internal/cell/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	tipHeight = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "tip",
		Name:      "height",
		Help:      "Latest tip height announced by the node.",
	}, []string{"network"})

	tipReconnectsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: "tip",
		Name:      "reconnects_total",
		Help:      "Count of tip subscription reconnects.",
	}, []string{"network"})
)

// Tip tracks the tip header subscription.
type Tip struct {
	network model.Network
}

// NewTip constructs a Tip metrics collector.
func NewTip(network model.Network) *Tip {
	if network == "" {
		network = "unknown"
	}
	return &Tip{network: network}
}

// ObserveTip records an announced tip height.
func (m Tip) ObserveTip(height uint64) {
	tipHeight.WithLabelValues(string(m.network)).Set(float64(height))
}

// ObserveReconnect counts a dropped subscription.
func (m Tip) ObserveReconnect() {
	tipReconnectsTotal.WithLabelValues(string(m.network)).Inc()
}
