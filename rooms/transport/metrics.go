package transport

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/interview-lobby/internal/otel"
)

var (
	rateLimited metric.Int64Counter
	callConns   metric.Int64UpDownCounter
)

func init() {
	f := intotel.NewFactory("rooms.transport", intotel.PrefixHTTP)

	f.Int64Counter(&rateLimited, "rate_limited",
		metric.WithDescription("Requests rejected by the password rate limit"))

	f.Int64UpDownCounter(&callConns, "call.connections",
		metric.WithDescription("Open call bridge websocket connections"))
}
