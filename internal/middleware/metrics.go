package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command failures by command name. The cache
// package increments it from a client hook.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinelog_redis_errors_total",
	Help: "Total number of Redis errors by command",
}, []string{"command"})

// ToggleFlips counts membership toggle operations by kind and direction.
var ToggleFlips = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "cinelog_toggle_flips_total",
	Help: "Total number of membership toggles by kind and resulting state",
}, []string{"kind", "state"})

// InitMetrics creates the Prometheus middleware for the given service name.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the HTTP metrics collection handler.
func MetricsMiddleware(prom *fiberprometheus.FiberPrometheus) fiber.Handler {
	return prom.Middleware
}
