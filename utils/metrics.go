package utils

import (
	"strconv"

	"github.com/kataras/iris/v12"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var httpRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "locallytrip_http_requests_total",
		Help: "HTTP requests by method and status code.",
	},
	[]string{"method", "status"},
)

// MetricsMiddleware counts every request after the handler chain finishes.
func MetricsMiddleware(ctx iris.Context) {
	ctx.Next()
	httpRequestsTotal.WithLabelValues(ctx.Method(), strconv.Itoa(ctx.GetStatusCode())).Inc()
}
