package callbridge

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/interview-lobby/internal/otel"
)

var (
	joinsRequested metric.Int64Counter
	callsActive    metric.Int64UpDownCounter
	runtimeErrors  metric.Int64Counter
	packetLoss     metric.Float64Histogram
	droppedEvents  metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("rooms.callbridge", intotel.PrefixCall)

	f.Int64Counter(&joinsRequested, "joins.requested",
		metric.WithDescription("Join requests passed to the call runtime"))

	f.Int64UpDownCounter(&callsActive, "active",
		metric.WithDescription("Calls currently joined"))

	f.Int64Counter(&runtimeErrors, "runtime.errors",
		metric.WithDescription("Errors reported by the call runtime"))

	f.Float64Histogram(&packetLoss, "packet_loss",
		metric.WithDescription("Sampled receive packet loss"),
		metric.WithUnit("%"))

	f.Int64Counter(&droppedEvents, "events.dropped",
		metric.WithDescription("Bridge events dropped because the consumer lagged"))
}
