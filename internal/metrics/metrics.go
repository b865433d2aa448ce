package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "registroos_http_requests_total",
			Help: "Total de requisições HTTP por rota, método e status",
		},
		[]string{"method", "route", "status"},
	)

	HTTPDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registroos_http_request_duration_seconds",
			Help:    "Latência das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	RelatorioDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "registroos_relatorio_duration_seconds",
			Help:    "Tempo de montagem do relatório completo de uma OS",
			Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"result"},
	)
)

// ObserveRelatorio registra a duração de uma montagem de relatório; result é "ok" ou o tipo do erro.
func ObserveRelatorio(d time.Duration, result string) {
	RelatorioDuration.WithLabelValues(result).Observe(d.Seconds())
}

// Middleware usa o padrão de rota do chi como label para não explodir a cardinalidade com números de OS.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		next.ServeHTTP(ww, r)

		route := "unmatched"
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				route = pattern
			}
		}

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		HTTPRequests.WithLabelValues(r.Method, route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(r.Method, route).Observe(time.Since(start).Seconds())
	})
}
