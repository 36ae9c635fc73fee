package services

import (
	"fmt"
	"os"
	"strconv"
	"time"

	appContext "github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

const (
	MONITORING_SVC          = "monitoring_svc"
	SERVICE_NAME            = "signa_backend"
	DEFAULT_PROMETHEUS_PORT = 2112
)

// HTTP Metrics
var (
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"endpoint", "method", "status"},
	)

	httpRequestDurationSeconds = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"endpoint", "method", "status"},
	)
)

// Progression metrics
var (
	courseCompletionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "course_completions_total",
			Help: "Total course completions processed",
		},
		[]string{"passed"},
	)

	questRewardsCollectedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "quest_rewards_collected_total",
			Help: "Total quest rewards collected",
		},
	)

	badgesAwardedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "badges_awarded_total",
			Help: "Total badges awarded",
		},
	)

	aggregateConflictsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "user_aggregate_conflicts_total",
			Help: "Optimistic concurrency conflicts on the user aggregate",
		},
	)
)

func ObserveHTTPRequest(endpoint, method, status string, duration time.Duration) {
	httpRequestsTotal.WithLabelValues(endpoint, method, status).Inc()
	httpRequestDurationSeconds.WithLabelValues(endpoint, method, status).Observe(duration.Seconds())
}

func ObserveCourseCompletion(passed bool) {
	courseCompletionsTotal.WithLabelValues(strconv.FormatBool(passed)).Inc()
}

func ObserveQuestRewardCollected() {
	questRewardsCollectedTotal.Inc()
}

func ObserveBadgesAwarded(count int) {
	badgesAwardedTotal.Add(float64(count))
}

func ObserveAggregateConflict() {
	aggregateConflictsTotal.Inc()
}

type MonitoringService struct {
	appContext.DefaultService

	port     int
	register *prometheus.Registry

	server *fiber.App
}

func (svc *MonitoringService) Id() string {
	return MONITORING_SVC
}

func (svc *MonitoringService) Configure(ctx *appContext.Context) error {
	port, err := strconv.Atoi(os.Getenv("PROMETHEUS_PORT"))
	if err != nil {
		port = DEFAULT_PROMETHEUS_PORT
	}
	svc.port = port

	return svc.DefaultService.Configure(ctx)
}

func (svc *MonitoringService) Start() error {
	reg := prometheus.NewRegistry()

	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	reg.MustRegister(
		httpRequestsTotal,
		httpRequestDurationSeconds,
		courseCompletionsTotal,
		questRewardsCollectedTotal,
		badgesAwardedTotal,
		aggregateConflictsTotal,
	)

	svc.register = reg

	svc.server = fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
		},
	})
	svc.server.Use(recover.New())

	svc.server.Get("/metrics", svc.metricsHandler)
	svc.server.Get("/health", svc.healthHandler)

	log.Info().Int("port", svc.port).Msg("Prometheus metrics server started")
	return svc.server.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *MonitoringService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

func (svc *MonitoringService) metricsHandler(c *fiber.Ctx) error {
	handler := promhttp.HandlerFor(svc.register, promhttp.HandlerOpts{})
	return adaptor.HTTPHandler(handler)(c)
}

func (svc *MonitoringService) healthHandler(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status":    "healthy",
		"service":   SERVICE_NAME,
		"timestamp": time.Now().Unix(),
	})
}
