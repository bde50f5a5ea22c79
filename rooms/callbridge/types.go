package callbridge

import "context"

// Provider runtime event names.
const (
	RuntimeJoined    = "joined-meeting"
	RuntimeLeft      = "left-meeting"
	RuntimeError     = "error"
	RuntimeJoinError = "join-error"
)

type RuntimeEvent struct {
	Type    string `json:"event"`
	Message string `json:"message,omitempty"`
}

// TrackStats are receive counters for one media kind over the provider's
// latest stats window.
type TrackStats struct {
	PacketsLost     int64 `json:"packetsLost"`
	PacketsReceived int64 `json:"packetsReceived"`
}

type NetworkStats struct {
	VideoRecv    *TrackStats `json:"videoRecv,omitempty"`
	AudioRecv    *TrackStats `json:"audioRecv,omitempty"`
	UploadKbps   *float64    `json:"uploadKbps,omitempty"`
	DownloadKbps *float64    `json:"downloadKbps,omitempty"`
}

// Runtime is the provider's embedded call client.
type Runtime interface {
	Join(ctx context.Context, url string) error
	Leave(ctx context.Context) error
	NetworkStats(ctx context.Context) (*NetworkStats, error)
	Events() <-chan RuntimeEvent
}

type State string

const (
	StateDisconnected State = "disconnected"
	StateJoining      State = "joining"
	StateJoined       State = "joined"
)

type Status string

const (
	StatusGood Status = "good"
	StatusBad  Status = "bad"
)

type Quality struct {
	Status       Status   `json:"status"`
	PacketLoss   float64  `json:"packetLoss"`
	UploadKbps   *float64 `json:"uploadKbps,omitempty"`
	DownloadKbps *float64 `json:"downloadKbps,omitempty"`
}

type EventKind string

const (
	EventJoined  EventKind = "joined"
	EventLeft    EventKind = "left"
	EventError   EventKind = "error"
	EventQuality EventKind = "quality"
)

// Event is what the bridge reports to the host application.
type Event struct {
	Kind    EventKind `json:"kind"`
	Message string    `json:"message,omitempty"`
	Quality *Quality  `json:"quality,omitempty"`
}
