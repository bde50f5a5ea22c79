package service

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/interview-lobby/internal/otel"
)

var (
	flowsOpened       metric.Int64Counter
	flowsActive       metric.Int64UpDownCounter
	passwordRejected  metric.Int64Counter
	actionOutcomes    metric.Int64Counter
	roomFetchFailures metric.Int64Counter
	staleResults      metric.Int64Counter
)

func init() {
	f := intotel.NewFactory("rooms.service", intotel.PrefixFlows)

	f.Int64Counter(&flowsOpened, "opened",
		metric.WithDescription("Lifecycle flows opened, by kind"))

	f.Int64UpDownCounter(&flowsActive, "active",
		metric.WithDescription("Lifecycle flows currently held in the registry"))

	f.Int64Counter(&passwordRejected, "password.rejected",
		metric.WithDescription("Password submissions rejected, by reason"))

	f.Int64Counter(&actionOutcomes, "action.outcomes",
		metric.WithDescription("Detail submissions, by action and outcome"))

	f.Int64Counter(&roomFetchFailures, "rooms.fetch.failed",
		metric.WithDescription("Room list fetches that failed"))

	f.Int64Counter(&staleResults, "results.discarded",
		metric.WithDescription("Remote results discarded because the flow was closed"))
}
