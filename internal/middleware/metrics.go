package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RedisErrors counts Redis errors by operation type.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibematch_redis_errors_total",
		Help: "Total number of Redis errors by operation type",
	}, []string{"operation"})

	// ProfileWrites counts profile aggregate writes by operation.
	ProfileWrites = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibematch_profile_writes_total",
		Help: "Total number of profile aggregate writes by operation",
	}, []string{"operation"})

	// PhotoUploads counts uploaded photos by outcome.
	PhotoUploads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vibematch_photo_uploads_total",
		Help: "Total number of photo upload batches by outcome",
	}, []string{"outcome"})
)

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics middleware handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
