package metrics

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var (
	globalMetrics *Metrics
	metricsOnce   sync.Once
)

// Metrics holds Prometheus metrics for the bot.
//
// Metrics:
//   - caretrack_events_total{handler} - inbound events by handler
//   - caretrack_store_errors_total{op} - failed store operations
//   - caretrack_medicine_changes_total{result} - add/remove outcomes
//   - caretrack_confirmations_total{result} - confirm-today outcomes
//   - caretrack_reminders_total{result} - reminder deliveries
//   - caretrack_pending_sessions - users with a pending prompt
type Metrics struct {
	EventsTotal          *prometheus.CounterVec
	StoreErrorsTotal     *prometheus.CounterVec
	MedicineChangesTotal *prometheus.CounterVec
	ConfirmationsTotal   *prometheus.CounterVec
	RemindersTotal       *prometheus.CounterVec
	PendingSessions      prometheus.Gauge
}

// New creates and registers the bot metrics once per process
func New() *Metrics {
	metricsOnce.Do(func() {
		globalMetrics = &Metrics{
			EventsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "caretrack_events_total",
					Help: "Total number of inbound events by handler",
				},
				[]string{"handler"},
			),
			StoreErrorsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "caretrack_store_errors_total",
					Help: "Total number of failed user store operations",
				},
				[]string{"op"},
			),
			MedicineChangesTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "caretrack_medicine_changes_total",
					Help: "Total number of medicine list add/remove outcomes",
				},
				[]string{"result"},
			),
			ConfirmationsTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "caretrack_confirmations_total",
					Help: "Total number of intake confirmation outcomes",
				},
				[]string{"result"},
			),
			RemindersTotal: promauto.NewCounterVec(
				prometheus.CounterOpts{
					Name: "caretrack_reminders_total",
					Help: "Total number of reminder deliveries",
				},
				[]string{"result"}, // "sent" or "failed"
			),
			PendingSessions: promauto.NewGauge(
				prometheus.GaugeOpts{
					Name: "caretrack_pending_sessions",
					Help: "Number of users with a pending add/remove prompt",
				},
			),
		}
	})
	return globalMetrics
}

// Server exposes /metrics over HTTP
type Server struct {
	srv    *http.Server
	logger *zap.Logger
}

// NewServer creates a metrics server listening on addr
func NewServer(addr string, logger *zap.Logger) *Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: logger,
	}
}

// Start serves in the background
func (s *Server) Start() {
	go func() {
		s.logger.Info("Metrics server listening", zap.String("addr", s.srv.Addr))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("Metrics server failed", zap.Error(err))
		}
	}()
}

// Shutdown stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}
