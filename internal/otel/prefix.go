package otel

// Metric name prefixes, one per component.
const (
	PrefixFlows     = "lobby_flows"
	PrefixDirectory = "lobby_directory"
	PrefixCall      = "lobby_call"
	PrefixNotepad   = "lobby_notepad"
	PrefixHTTP      = "lobby_http"
)
