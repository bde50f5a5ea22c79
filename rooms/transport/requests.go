package transport

import "github.com/imtaco/interview-lobby/rooms"

// PasswordRequest is checked by the password gate itself so an empty
// password gets the gate's own message.
type PasswordRequest struct {
	Password string `json:"password"`
}

type OpenFlowRequest struct {
	Kind rooms.FlowKind `json:"kind" binding:"required,flowkind"`
}

// FlowURI identifies a flow (from URL param)
type FlowURI struct {
	FlowID string `uri:"flowId" binding:"required,uuid"`
}

type ChooseActionRequest struct {
	Action rooms.Action `json:"action" binding:"required,flowaction"`
}

// SubmitDetailsRequest carries the detail fields; the flow decides which
// ones its action needs and reports field problems with its own messages.
type SubmitDetailsRequest struct {
	RoomName    string `json:"roomName" binding:"max=2048"`
	Date        string `json:"date" binding:"max=32"`
	Time        string `json:"time" binding:"max=32"`
	Room        string `json:"room" binding:"max=2048"`
	ConfirmName string `json:"confirmName" binding:"max=2048"`
}

func (r *SubmitDetailsRequest) input() *rooms.DetailInput {
	return &rooms.DetailInput{
		RoomName:    r.RoomName,
		Date:        r.Date,
		Time:        r.Time,
		Room:        r.Room,
		ConfirmName: r.ConfirmName,
	}
}

// VerifyRoomQuery accepts a room name or a full room URL.
type VerifyRoomQuery struct {
	Room string `form:"room" binding:"required,max=2048"`
}

// OwnerURI identifies a notepad (from URL param)
type OwnerURI struct {
	Owner string `uri:"owner" binding:"required,owner"`
}

type UpdateNoteRequest struct {
	Content string         `json:"content" binding:"max=1048576"`
	Mode    rooms.NoteMode `json:"mode" binding:"omitempty,notemode"`
}
