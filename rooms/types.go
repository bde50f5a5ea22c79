//go:generate mockgen -source=types.go -destination=mocks/mock_rooms.go -package=mocks

package rooms

import (
	"context"
	"time"
)

// RoomRecord is a room as reported by the provider.
type RoomRecord struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	IsPublic  bool      `json:"isPublic"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
	// NotBefore is the epoch second before which the room is not joinable.
	NotBefore *int64 `json:"notBefore,omitempty"`
	// Start is NotBefore as the IST date and time that prefill a schedule form.
	Start        *StartPair     `json:"start,omitempty"`
	Capabilities map[string]any `json:"capabilities,omitempty"`
}

type StartPair struct {
	Date string `json:"date"`
	Time string `json:"time"`
}

// ScheduledAfter reports whether the room carries a start time later than now.
func (r *RoomRecord) ScheduledAfter(now time.Time) bool {
	return r.NotBefore != nil && *r.NotBefore*1000 > now.UnixMilli()
}

// Capabilities is the property set sent with a create request.
type Capabilities struct {
	MaxParticipants   int    `json:"max_participants"`
	Chat              bool   `json:"enable_chat"`
	Knocking          bool   `json:"enable_knocking"`
	Screenshare       bool   `json:"enable_screenshare"`
	Recording         string `json:"enable_recording"`
	AdvancedChat      bool   `json:"enable_advanced_chat"`
	VideoProcessingUI bool   `json:"enable_video_processing_ui"`
	LiveCaptionsUI    bool   `json:"enable_live_captions_ui"`
	NetworkUI         bool   `json:"enable_network_ui"`
}

func DefaultCapabilities() Capabilities {
	return Capabilities{
		MaxParticipants:   4,
		Chat:              true,
		Knocking:          false,
		Screenshare:       true,
		Recording:         "cloud",
		AdvancedChat:      false,
		VideoProcessingUI: false,
		LiveCaptionsUI:    false,
		NetworkUI:         true,
	}
}

type CreateOptions struct {
	Public       bool
	Capabilities Capabilities
	NotBefore    *int64
}

// Directory is the provider's room registry.
type Directory interface {
	// Exists returns false together with an ErrNotFound error when the room is absent.
	Exists(ctx context.Context, name string) (bool, *RoomRecord, error)
	Create(ctx context.Context, name string, opts *CreateOptions) (*RoomRecord, error)
	List(ctx context.Context) ([]*RoomRecord, error)
	Reschedule(ctx context.Context, name string, notBefore int64) (*RoomRecord, error)
	Delete(ctx context.Context, name string) error
}

type FlowKind string

const (
	FlowManage     FlowKind = "manage"
	FlowCreate     FlowKind = "create"
	FlowReschedule FlowKind = "reschedule"
	FlowJoin       FlowKind = "join"
)

type Step string

const (
	StepPassword  Step = "password"
	StepAction    Step = "action"
	StepDetails   Step = "details"
	StepCompleted Step = "completed"
	StepClosed    Step = "closed"
)

type Action string

const (
	ActionCreate     Action = "create"
	ActionReschedule Action = "reschedule"
	ActionDelete     Action = "delete"
	ActionJoin       Action = "join"
)

// Notice is a titled message shown on a flow, e.g. a failed room fetch.
type Notice struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// FlowState is a snapshot of a lifecycle flow.
type FlowState struct {
	ID            string        `json:"id"`
	Kind          FlowKind      `json:"kind"`
	Step          Step          `json:"step"`
	Action        Action        `json:"action,omitempty"`
	Actions       []Action      `json:"actions"`
	Busy          bool          `json:"busy"`
	FetchingRooms bool          `json:"fetchingRooms"`
	Rooms         []*RoomRecord `json:"rooms,omitempty"`
	Notice        *Notice       `json:"notice,omitempty"`
}

// DetailInput carries the detail-step fields; which ones apply depends on the action.
type DetailInput struct {
	RoomName    string `json:"roomName"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Room        string `json:"room"`
	ConfirmName string `json:"confirmName"`
}

type FlowResult struct {
	State   *FlowState  `json:"state"`
	Title   string      `json:"title"`
	Message string      `json:"message"`
	Room    *RoomRecord `json:"room,omitempty"`
	RoomURL string      `json:"roomUrl,omitempty"`
}

type JoinTarget struct {
	Name string      `json:"name"`
	URL  string      `json:"url"`
	Room *RoomRecord `json:"room"`
}

// FlowService drives password-gated room lifecycle flows.
type FlowService interface {
	OpenFlow(ctx context.Context, kind FlowKind) (*FlowState, error)
	GetFlow(ctx context.Context, id string) (*FlowState, error)
	SubmitPassword(ctx context.Context, id, password string) (*FlowState, error)
	ChooseAction(ctx context.Context, id string, action Action) (*FlowState, error)
	SubmitDetails(ctx context.Context, id string, input *DetailInput) (*FlowResult, error)
	// AwaitRooms blocks until the flow's room fetch settles.
	AwaitRooms(ctx context.Context, id string) (*FlowState, error)
	CloseFlow(ctx context.Context, id string) error
	// VerifyRoom normalizes raw and checks the room exists.
	VerifyRoom(ctx context.Context, raw string) (*JoinTarget, error)
	// CheckPassword validates an admin password outside any flow.
	CheckPassword(password string) error
}

type NoteMode string

const (
	ModeCode  NoteMode = "code"
	ModeNotes NoteMode = "notes"
)

func (m NoteMode) Valid() bool {
	return m == ModeCode || m == ModeNotes
}

type Note struct {
	Owner   string     `json:"owner"`
	Content string     `json:"content"`
	Mode    NoteMode   `json:"mode"`
	Saved   bool       `json:"saved"`
	SavedAt *time.Time `json:"savedAt,omitempty"`
}

// NoteStore persists notes. Load returns nil without error for an unknown owner.
type NoteStore interface {
	Load(ctx context.Context, owner string) (*Note, error)
	Save(ctx context.Context, note *Note) error
	Clear(ctx context.Context, owner string) error
}

type NoteFile struct {
	Filename string
	Content  string
}

// NotepadService keeps per-owner drafts and persists them.
type NotepadService interface {
	Get(ctx context.Context, owner string) (*Note, error)
	Update(ctx context.Context, owner, content string, mode NoteMode) (*Note, error)
	Save(ctx context.Context, owner string) (*Note, error)
	Clear(ctx context.Context, owner string) (*Note, error)
	Download(ctx context.Context, owner string) (*NoteFile, error)
}
