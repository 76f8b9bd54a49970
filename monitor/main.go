package monitor

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	"gitlab.com/tierpass-exchange/ledger_api/data"
)

var (
	IssuancesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "issuances_total",
		Help:      "Completed membership issuances",
	}, []string{"tier"})

	UnitsIssuedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "units_issued_total",
		Help:      "Membership units issued",
	}, []string{"tier"})

	ReferralPayoutsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "referral_payouts_total",
		Help:      "Paid referral legs",
	})

	BurnsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "ledger",
		Name:      "burns_total",
		Help:      "Executed automatic burns",
	})

	TotalBurned = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "ledger",
		Name:      "total_burned_units",
		Help:      "Lifetime automatic burn counter",
	})
)

func init() {
	prometheus.MustRegister(
		IssuancesTotal,
		UnitsIssuedTotal,
		ReferralPayoutsTotal,
		BurnsTotal,
		TotalBurned,
	)
}

// Recorder mirrors ledger signals into prometheus metrics
type Recorder struct{}

// Publish implements data.Publisher
func (Recorder) Publish(ev data.Event) {
	switch e := ev.(type) {
	case *data.IssuanceCompleted:
		tier := fmt.Sprintf("%d", e.Tier)
		IssuancesTotal.WithLabelValues(tier).Inc()
		UnitsIssuedTotal.WithLabelValues(tier).Add(float64(e.Quantity))
	case *data.ReferralPaid:
		ReferralPayoutsTotal.Inc()
	case *data.BurnExecuted:
		BurnsTotal.Inc()
		if value, err := strconv.ParseFloat(e.TotalBurnt, 64); err == nil {
			TotalBurned.Set(value)
		}
	}
}
