package notepad

import (
	"go.opentelemetry.io/otel/metric"

	intotel "github.com/imtaco/interview-lobby/internal/otel"
)

var (
	notesSaved   metric.Int64Counter
	saveFailures metric.Int64Counter
	notesCleared metric.Int64Counter
	draftsOpen   metric.Int64UpDownCounter
)

func init() {
	f := intotel.NewFactory("rooms.notepad", intotel.PrefixNotepad)

	f.Int64Counter(&notesSaved, "saved",
		metric.WithDescription("Notes persisted, by trigger"))

	f.Int64Counter(&saveFailures, "save.failed",
		metric.WithDescription("Note saves that failed, by trigger"))

	f.Int64Counter(&notesCleared, "cleared",
		metric.WithDescription("Notes cleared"))

	f.Int64UpDownCounter(&draftsOpen, "drafts",
		metric.WithDescription("Drafts held in memory"))
}
