package server

import "github.com/prometheus/client_golang/prometheus"

var (
	gamesStartedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arena_games_started_total",
		Help: "Games created or reset.",
	})
	phasesAdvancedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_phases_advanced_total",
		Help: "Phase transitions applied, by source and destination phase.",
	}, []string{"from", "to"})
	decisionsSubmittedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "arena_decisions_submitted_total",
		Help: "Decisions accepted into a window.",
	})
	decisionsRejectedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "arena_decisions_rejected_total",
		Help: "Decisions rejected, by reason.",
	}, []string{"reason"})
)

func init() {
	prometheus.MustRegister(
		gamesStartedTotal,
		phasesAdvancedTotal,
		decisionsSubmittedTotal,
		decisionsRejectedTotal,
	)
}
