package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/mocks"
)

const (
	flowID = "3b241101-e2bb-4255-8caf-4136c566a962"
	owner  = "owner-1234abcd"
)

func testConfig() *Config {
	return &Config{
		PasswordRate:   0.001,
		PasswordBurst:  3,
		LimiterTTL:     time.Minute,
		LimiterSize:    16,
		AllowedOrigins: []string{"*"},
	}
}

func setupRouter(t *testing.T) (*Router, *mocks.MockFlowService, *mocks.MockNotepadService) {
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	flows := mocks.NewMockFlowService(ctrl)
	notes := mocks.NewMockNotepadService(ctrl)
	clock := clockwork.NewFakeClockAt(time.Date(2025, 3, 10, 3, 30, 0, 0, time.UTC))
	router := NewRouter(testConfig(), flows, notes, clock, log.NewTest(t))
	t.Cleanup(router.Close)
	return router, flows, notes
}

func do(router *Router, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.RemoteAddr = "10.0.0.1:5555"

	w := httptest.NewRecorder()
	router.Handler().ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func TestHealthCheck(t *testing.T) {
	router, _, _ := setupRouter(t)

	w := do(router, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "ok", resp["status"])
	assert.Equal(t, "interview-lobby", resp["service"])
	assert.EqualValues(t, 1741577400, resp["timestamp"])
}

func TestValidatePassword(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().CheckPassword("secret").Return(nil)

		w := do(router, http.MethodPost, "/validate-password", gin.H{"password": "secret"})
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, true, decode(t, w)["valid"])
	})

	t.Run("Statuses", func(t *testing.T) {
		tests := []struct {
			name   string
			err    error
			status int
			title  string
		}{
			{"missing", rooms.NewFlowError(rooms.ErrValidation, "Password Required", "Please enter the password."), http.StatusBadRequest, "Password Required"},
			{"wrong", rooms.NewFlowError(rooms.ErrUnauthorized, "Invalid Password", "Incorrect password. Please try again."), http.StatusUnauthorized, "Invalid Password"},
			{"no secret", rooms.NewFlowError(rooms.ErrConfiguration, "Configuration Error", "Password not configured."), http.StatusInternalServerError, "Configuration Error"},
		}
		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				router, flows, _ := setupRouter(t)
				flows.EXPECT().CheckPassword(gomock.Any()).Return(tt.err)

				w := do(router, http.MethodPost, "/validate-password", gin.H{"password": "x"})
				assert.Equal(t, tt.status, w.Code)
				resp := decode(t, w)
				assert.Equal(t, false, resp["success"])
				assert.Equal(t, tt.title, resp["error"])
			})
		}
	})

	t.Run("MethodNotAllowed", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodGet, "/validate-password", nil)
		assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
	})

	t.Run("RateLimited", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().CheckPassword(gomock.Any()).Return(
			rooms.NewFlowError(rooms.ErrUnauthorized, "Invalid Password", "Incorrect password. Please try again."),
		).Times(3)

		for range 3 {
			w := do(router, http.MethodPost, "/validate-password", gin.H{"password": "guess"})
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		}
		w := do(router, http.MethodPost, "/validate-password", gin.H{"password": "guess"})
		assert.Equal(t, http.StatusTooManyRequests, w.Code)
	})
}

func TestFlows(t *testing.T) {
	t.Run("Open", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().OpenFlow(gomock.Any(), rooms.FlowManage).Return(&rooms.FlowState{
			ID:   flowID,
			Kind: rooms.FlowManage,
			Step: rooms.StepPassword,
		}, nil)

		w := do(router, http.MethodPost, "/api/flows", gin.H{"kind": "manage"})
		assert.Equal(t, http.StatusCreated, w.Code)
		flow := decode(t, w)["flow"].(map[string]any)
		assert.Equal(t, flowID, flow["id"])
		assert.Equal(t, "password", flow["step"])
	})

	t.Run("OpenUnknownKind", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodPost, "/api/flows", gin.H{"kind": "destroy"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.NotEmpty(t, decode(t, w)["details"])
	})

	t.Run("BadFlowID", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodGet, "/api/flows/not-a-uuid", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("Expired", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().GetFlow(gomock.Any(), flowID).Return(nil,
			rooms.NewFlowError(rooms.ErrFlowNotFound, "Session Expired", "Please start again."))

		w := do(router, http.MethodGet, "/api/flows/"+flowID, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
		assert.Equal(t, "Session Expired", decode(t, w)["error"])
	})

	t.Run("ChooseJoinRejected", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodPost, "/api/flows/"+flowID+"/action", gin.H{"action": "join"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("SubmitBusy", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().SubmitDetails(gomock.Any(), flowID, gomock.Any()).Return(nil,
			rooms.NewFlowError(rooms.ErrBusy, "Please Wait", "A request is already in progress."))

		w := do(router, http.MethodPost, "/api/flows/"+flowID+"/submit", gin.H{"roomName": "room1"})
		assert.Equal(t, http.StatusConflict, w.Code)
	})

	t.Run("SubmitCreate", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().SubmitDetails(gomock.Any(), flowID, &rooms.DetailInput{
			RoomName: "https://concretio.daily.co/room1",
			Date:     "2025-03-10",
			Time:     "09:00",
		}).Return(&rooms.FlowResult{
			State:   &rooms.FlowState{ID: flowID, Step: rooms.StepCompleted},
			Title:   "Room Created",
			Message: "Room room1 created successfully.",
			RoomURL: "https://concretio.daily.co/room1",
		}, nil)

		w := do(router, http.MethodPost, "/api/flows/"+flowID+"/submit", gin.H{
			"roomName": "https://concretio.daily.co/room1",
			"date":     "2025-03-10",
			"time":     "09:00",
		})
		assert.Equal(t, http.StatusOK, w.Code)
		result := decode(t, w)["result"].(map[string]any)
		assert.Equal(t, "Room Created", result["title"])
		assert.Equal(t, "https://concretio.daily.co/room1", result["roomUrl"])
	})

	t.Run("ProviderFailure", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().AwaitRooms(gomock.Any(), flowID).Return(nil,
			rooms.NewFlowError(rooms.ErrTransport, "Network Error", "Network error: unable to reach the video service."))

		w := do(router, http.MethodGet, "/api/flows/"+flowID+"/rooms", nil)
		assert.Equal(t, http.StatusBadGateway, w.Code)
	})

	t.Run("UncodedError", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().CloseFlow(gomock.Any(), flowID).Return(errors.New("boom"))

		w := do(router, http.MethodDelete, "/api/flows/"+flowID, nil)
		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.Equal(t, "Failed to close flow", decode(t, w)["error"])
	})
}

func TestVerifyRoom(t *testing.T) {
	t.Run("Found", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().VerifyRoom(gomock.Any(), "concretio.daily.co/room1").Return(&rooms.JoinTarget{
			Name: "room1",
			URL:  "https://concretio.daily.co/room1",
		}, nil)

		w := do(router, http.MethodGet, "/api/rooms/verify?room=concretio.daily.co/room1", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		target := decode(t, w)["target"].(map[string]any)
		assert.Equal(t, "room1", target["name"])
	})

	t.Run("Missing", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodGet, "/api/rooms/verify", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("NotFound", func(t *testing.T) {
		router, flows, _ := setupRouter(t)
		flows.EXPECT().VerifyRoom(gomock.Any(), "ghost").Return(nil,
			rooms.NewFlowError(rooms.ErrNotFound, "Room Not Found", "The room does not exist."))

		w := do(router, http.MethodGet, "/api/rooms/verify?room=ghost", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestNotepad(t *testing.T) {
	t.Run("Update", func(t *testing.T) {
		router, _, notes := setupRouter(t)
		notes.EXPECT().Update(gomock.Any(), owner, "x := 1", rooms.ModeCode).Return(&rooms.Note{
			Owner:   owner,
			Content: "x := 1",
			Mode:    rooms.ModeCode,
		}, nil)

		w := do(router, http.MethodPut, "/api/notepad/"+owner, gin.H{"content": "x := 1", "mode": "code"})
		assert.Equal(t, http.StatusOK, w.Code)
		note := decode(t, w)["note"].(map[string]any)
		assert.Equal(t, false, note["saved"])
	})

	t.Run("BadMode", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodPut, "/api/notepad/"+owner, gin.H{"content": "x", "mode": "slides"})
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("BadOwner", func(t *testing.T) {
		router, _, _ := setupRouter(t)

		w := do(router, http.MethodGet, "/api/notepad/abc", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("SaveAndClear", func(t *testing.T) {
		router, _, notes := setupRouter(t)
		notes.EXPECT().Save(gomock.Any(), owner).Return(&rooms.Note{Owner: owner, Saved: true}, nil)
		notes.EXPECT().Clear(gomock.Any(), owner).Return(&rooms.Note{Owner: owner, Saved: true}, nil)

		assert.Equal(t, http.StatusOK, do(router, http.MethodPost, "/api/notepad/"+owner+"/save", nil).Code)
		assert.Equal(t, http.StatusOK, do(router, http.MethodDelete, "/api/notepad/"+owner, nil).Code)
	})

	t.Run("Download", func(t *testing.T) {
		router, _, notes := setupRouter(t)
		notes.EXPECT().Download(gomock.Any(), owner).Return(&rooms.NoteFile{
			Filename: "notes-2025-03-10.txt",
			Content:  "agenda",
		}, nil)

		w := do(router, http.MethodGet, "/api/notepad/"+owner+"/download", nil)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "agenda", w.Body.String())
		assert.Contains(t, w.Header().Get("Content-Disposition"), `filename="notes-2025-03-10.txt"`)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/plain"))
	})
}

func TestCallJoinsVerifiedRoom(t *testing.T) {
	router, flows, _ := setupRouter(t)
	srv := httptest.NewServer(router.Handler())
	defer srv.Close()

	flows.EXPECT().VerifyRoom(gomock.Any(), "room1").Return(&rooms.JoinTarget{
		Name: "room1",
		URL:  "https://concretio.daily.co/room1",
	}, nil)
	flows.EXPECT().VerifyRoom(gomock.Any(), "ghost").Return(nil,
		rooms.NewFlowError(rooms.ErrNotFound, "Room Not Found", "The room does not exist."))

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, srv.URL+"/ws/call", nil)
	require.NoError(t, err)
	defer func() { _ = conn.CloseNow() }()

	type message struct {
		Type   string `json:"type"`
		URL    string `json:"url"`
		Bridge *struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"bridge"`
	}

	require.NoError(t, wsjson.Write(ctx, conn, gin.H{"type": "request-join", "room": "ghost"}))
	var msg message
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, "bridge-event", msg.Type)
	require.NotNil(t, msg.Bridge)
	assert.Equal(t, "error", msg.Bridge.Kind)
	assert.Equal(t, "The room does not exist.", msg.Bridge.Message)

	require.NoError(t, wsjson.Write(ctx, conn, gin.H{"type": "request-join", "room": "room1"}))
	msg = message{}
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, "join", msg.Type)
	assert.Equal(t, "https://concretio.daily.co/room1", msg.URL)

	require.NoError(t, wsjson.Write(ctx, conn, gin.H{"type": "runtime-event", "event": "joined-meeting"}))
	msg = message{}
	require.NoError(t, wsjson.Read(ctx, conn, &msg))
	assert.Equal(t, "bridge-event", msg.Type)
	require.NotNil(t, msg.Bridge)
	assert.Equal(t, "joined", msg.Bridge.Kind)
}
