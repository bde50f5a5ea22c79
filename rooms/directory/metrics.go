package directory

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/interview-lobby/internal/otel"
)

var (
	requestsTotal   metric.Int64Counter
	requestDuration metric.Float64Histogram
)

func init() {
	f := intotel.NewFactory("rooms.directory", intotel.PrefixDirectory)

	f.Int64Counter(&requestsTotal, "requests",
		metric.WithDescription("Provider API requests by operation and outcome"))

	f.Float64Histogram(&requestDuration, "request.duration",
		metric.WithDescription("Provider API request latency"),
		metric.WithUnit("s"))
}
