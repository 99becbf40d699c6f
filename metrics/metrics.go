package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var VotesSubmittedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "podium_votes_submitted_total",
	Help: "Number of vote submissions accepted",
})

var VotesRejectedCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "podium_votes_rejected_total",
	Help: "Number of vote submissions rejected",
}, []string{"reason"})

var FinalizationsCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "podium_finalizations_total",
	Help: "Number of race finalization runs",
})

var ScoresRecomputedCounter = promauto.NewCounter(prometheus.CounterOpts{
	Name: "podium_scores_recomputed_total",
	Help: "Number of score rows written during finalization",
})

var SyncRunsCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "podium_calendar_sync_runs_total",
	Help: "Number of calendar sync runs by outcome",
}, []string{"outcome"})

var OpenF1RequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Name: "podium_openf1_request_duration_seconds",
	Help: "Duration of requests to the OpenF1 API",
}, []string{"endpoint"})
