package telemetry

import (
	"fmt"
	"net/http"
	"time"

	"github.com/armon/go-metrics"
	prometheusMetrics "github.com/armon/go-metrics/prometheus"
	"github.com/hashicorp/go-hclog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Config struct {
	Enabled     bool   `json:"enabled"`
	ServiceName string `json:"service_name"`
}

// Setup installs the global metrics sink: an in-memory sink for SIGUSR1 dumps
// fanned out with a Prometheus sink. Without Setup all counters are discarded.
func Setup(config Config, logger hclog.Logger) error {
	if !config.Enabled {
		logger.Debug("metrics disabled")

		return nil
	}

	name := config.ServiceName
	if name == "" {
		name = "pricesync"
	}

	inm := metrics.NewInmemSink(10*time.Second, time.Minute)
	metrics.DefaultInmemSignal(inm)

	promSink, err := prometheusMetrics.NewPrometheusSinkFrom(prometheusMetrics.PrometheusOpts{
		Name:       name + "_prometheus_sink",
		Expiration: 0,
	})
	if err != nil {
		return fmt.Errorf("creating prometheus sink: %w", err)
	}

	metricsConf := metrics.DefaultConfig(name)
	metricsConf.EnableHostname = false

	if _, err := metrics.NewGlobal(metricsConf, metrics.FanoutSink{inm, promSink}); err != nil {
		return fmt.Errorf("installing metrics sink: %w", err)
	}

	logger.Info("metrics enabled", "service", name)

	return nil
}

// Handler serves the Prometheus exposition format.
func Handler() http.Handler {
	return promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer, promhttp.HandlerFor(
			prometheus.DefaultGatherer,
			promhttp.HandlerOpts{},
		),
	)
}
