package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	intentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "espalier_intents_total",
		Help: "Edit intents received over HTTP, by intent name and outcome.",
	}, []string{"intent", "status"})

	documentsSaved = promauto.NewCounter(prometheus.CounterOpts{
		Name: "espalier_documents_saved_total",
		Help: "Condition documents persisted after a successful edit.",
	})
)
