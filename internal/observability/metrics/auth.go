package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	SigninsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signins_total",
			Help: "Total number of signin attempts by result",
		},
		[]string{"result"},
	)

	SignupsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signups_total",
			Help: "Total number of signup attempts by result",
		},
		[]string{"result"},
	)

	BulkSignupUsersCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "bulk_signup_users_created_total",
			Help: "Total number of users created through bulk signup",
		},
	)

	BulkSignupBatchSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "bulk_signup_batch_size",
			Help:    "Size of submitted bulk signup batches",
			Buckets: []float64{1, 5, 10, 25, 50, 100, 250},
		},
	)

	TokensIssued = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tokens_issued_total",
			Help: "Total number of access tokens issued",
		},
	)

	JWTValidationsFailed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "jwt_validations_failed_total",
			Help: "Total number of failed JWT validations",
		},
	)
)
