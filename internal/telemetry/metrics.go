package telemetry

import (
	"github.com/armon/go-metrics"
)

const (
	upstreamMetricsPrefix  = "upstream"
	orderbookMetricsPrefix = "orderbook"
)

func UpstreamCall(provider string, outcome string) {
	metrics.IncrCounterWithLabels([]string{upstreamMetricsPrefix, "calls"}, 1, []metrics.Label{
		{Name: "provider", Value: provider},
		{Name: "outcome", Value: outcome},
	})
}

func OrderbookWrite(operation string, outcome string) {
	metrics.IncrCounterWithLabels([]string{orderbookMetricsPrefix, "writes"}, 1, []metrics.Label{
		{Name: "operation", Value: operation},
		{Name: "outcome", Value: outcome},
	})
}

func OrderbookPrice(symbol string, price float64) {
	metrics.SetGaugeWithLabels([]string{orderbookMetricsPrefix, "price"}, float32(price), []metrics.Label{
		{Name: "symbol", Value: symbol},
	})
}
