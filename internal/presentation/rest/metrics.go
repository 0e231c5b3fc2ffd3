package rest

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	decisionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "loan_decisions_total",
		Help: "Loan decisions by final status and risk category.",
	}, []string{"status", "risk_category"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "loan_api_request_duration_seconds",
		Help:    "Duration of loan API requests.",
		Buckets: prometheus.DefBuckets,
	}, []string{"handler"})
)
