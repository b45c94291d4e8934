package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	votesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gyansetu_votes_total",
			Help: "Vote submissions by target and transition",
		},
		[]string{"target", "transition"},
	)

	karmaDeltaTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gyansetu_karma_delta_total",
			Help: "Absolute karma points moved, by ledger reason",
		},
		[]string{"reason"},
	)

	reportsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gyansetu_reports_total",
			Help: "Moderation report actions",
		},
		[]string{"action"},
	)
)

func recordKarma(reason string, delta int) {
	if delta < 0 {
		delta = -delta
	}
	karmaDeltaTotal.WithLabelValues(reason).Add(float64(delta))
}
