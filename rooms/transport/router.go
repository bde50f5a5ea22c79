package transport

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/rooms"
)

const serviceName = "interview-lobby"

type Router struct {
	cfg     *Config
	flows   rooms.FlowService
	notes   rooms.NotepadService
	limiter *ipLimiter
	engine  *gin.Engine
	clock   clockwork.Clock
	logger  *log.Logger

	// ctx ends open call connections on Close.
	ctx    context.Context
	cancel context.CancelFunc
}

func NewRouter(
	cfg *Config,
	flows rooms.FlowService,
	notes rooms.NotepadService,
	clock clockwork.Clock,
	logger *log.Logger,
) *Router {
	if logger == nil {
		panic("logger is required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	if gin.Mode() != gin.TestMode {
		gin.SetMode(gin.ReleaseMode)
	}
	engine := gin.New()
	engine.Use(gin.Recovery())
	engine.Use(otelgin.Middleware(serviceName))
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	engine.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: false,
	}))
	engine.HandleMethodNotAllowed = true

	ctx, cancel := context.WithCancel(context.Background())
	r := &Router{
		cfg:     cfg,
		flows:   flows,
		notes:   notes,
		limiter: newIPLimiter(cfg.PasswordRate, cfg.PasswordBurst, cfg.LimiterSize, cfg.LimiterTTL),
		engine:  engine,
		clock:   clock,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}

	r.engine.Use(func(c *gin.Context) {
		c.Next()
		r.logger.Debug("request",
			log.String("method", c.Request.Method),
			log.String("path", c.FullPath()),
			log.Int("status", c.Writer.Status()))
	})

	r.setupRoutes()
	return r
}

func (r *Router) Handler() http.Handler {
	return r.engine
}

// Close ends open call connections.
func (r *Router) Close() {
	r.cancel()
}

func (r *Router) setupRoutes() {
	r.engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{
			"success": false,
			"error":   "Method not allowed",
		})
	})

	r.engine.POST("/validate-password", r.limiter.middleware(), r.validatePassword)

	flows := r.engine.Group("/api/flows")
	flows.POST("", r.openFlow)
	flows.GET("/:flowId", r.getFlow)
	flows.GET("/:flowId/rooms", r.awaitRooms)
	flows.POST("/:flowId/password", r.limiter.middleware(), r.submitPassword)
	flows.POST("/:flowId/action", r.chooseAction)
	flows.POST("/:flowId/submit", r.submitDetails)
	flows.DELETE("/:flowId", r.closeFlow)

	r.engine.GET("/api/rooms/verify", r.verifyRoom)

	notes := r.engine.Group("/api/notepad/:owner")
	notes.GET("", r.getNote)
	notes.PUT("", r.updateNote)
	notes.DELETE("", r.clearNote)
	notes.POST("/save", r.saveNote)
	notes.GET("/download", r.downloadNote)

	r.engine.GET("/ws/call", r.serveCall)

	r.engine.GET("/health", r.healthCheck)
}

func (r *Router) validatePassword(c *gin.Context) {
	var req PasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	if err := r.flows.CheckPassword(req.Password); err != nil {
		r.writeError(c, err, "Failed to validate password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"valid":   true,
	})
}

func (r *Router) openFlow(c *gin.Context) {
	var req OpenFlowRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	state, err := r.flows.OpenFlow(c.Request.Context(), req.Kind)
	if err != nil {
		r.writeError(c, err, "Failed to open flow")
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"flow":    state,
	})
}

// bindFlow binds the flow id and, when body is non-nil, the JSON body.
func bindFlow(c *gin.Context, body any) (string, bool) {
	var uri FlowURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeBindError(c, err)
		return "", false
	}
	if body != nil {
		if err := c.ShouldBindJSON(body); err != nil {
			writeBindError(c, err)
			return "", false
		}
	}
	return uri.FlowID, true
}

func (r *Router) getFlow(c *gin.Context) {
	id, ok := bindFlow(c, nil)
	if !ok {
		return
	}

	state, err := r.flows.GetFlow(c.Request.Context(), id)
	if err != nil {
		r.writeError(c, err, "Failed to get flow")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"flow":    state,
	})
}

func (r *Router) awaitRooms(c *gin.Context) {
	id, ok := bindFlow(c, nil)
	if !ok {
		return
	}

	state, err := r.flows.AwaitRooms(c.Request.Context(), id)
	if err != nil {
		r.writeError(c, err, "Failed to load rooms")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"flow":    state,
	})
}

func (r *Router) submitPassword(c *gin.Context) {
	var req PasswordRequest
	id, ok := bindFlow(c, &req)
	if !ok {
		return
	}

	state, err := r.flows.SubmitPassword(c.Request.Context(), id, req.Password)
	if err != nil {
		r.writeError(c, err, "Failed to check password")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"flow":    state,
	})
}

func (r *Router) chooseAction(c *gin.Context) {
	var req ChooseActionRequest
	id, ok := bindFlow(c, &req)
	if !ok {
		return
	}

	state, err := r.flows.ChooseAction(c.Request.Context(), id, req.Action)
	if err != nil {
		r.writeError(c, err, "Failed to choose action")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"flow":    state,
	})
}

func (r *Router) submitDetails(c *gin.Context) {
	var req SubmitDetailsRequest
	id, ok := bindFlow(c, &req)
	if !ok {
		return
	}

	result, err := r.flows.SubmitDetails(c.Request.Context(), id, req.input())
	if err != nil {
		r.writeError(c, err, "Failed to submit details")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"result":  result,
	})
}

func (r *Router) closeFlow(c *gin.Context) {
	id, ok := bindFlow(c, nil)
	if !ok {
		return
	}

	if err := r.flows.CloseFlow(c.Request.Context(), id); err != nil {
		r.writeError(c, err, "Failed to close flow")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
	})
}

func (r *Router) verifyRoom(c *gin.Context) {
	var req VerifyRoomQuery
	if err := c.ShouldBindQuery(&req); err != nil {
		writeBindError(c, err)
		return
	}

	target, err := r.flows.VerifyRoom(c.Request.Context(), req.Room)
	if err != nil {
		r.writeError(c, err, "Failed to verify room")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"target":  target,
	})
}

func bindOwner(c *gin.Context) (string, bool) {
	var uri OwnerURI
	if err := c.ShouldBindUri(&uri); err != nil {
		writeBindError(c, err)
		return "", false
	}
	return uri.Owner, true
}

func (r *Router) getNote(c *gin.Context) {
	owner, ok := bindOwner(c)
	if !ok {
		return
	}

	note, err := r.notes.Get(c.Request.Context(), owner)
	if err != nil {
		r.writeError(c, err, "Failed to load note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    note,
	})
}

func (r *Router) updateNote(c *gin.Context) {
	owner, ok := bindOwner(c)
	if !ok {
		return
	}
	var req UpdateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}

	note, err := r.notes.Update(c.Request.Context(), owner, req.Content, req.Mode)
	if err != nil {
		r.writeError(c, err, "Failed to update note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    note,
	})
}

func (r *Router) saveNote(c *gin.Context) {
	owner, ok := bindOwner(c)
	if !ok {
		return
	}

	note, err := r.notes.Save(c.Request.Context(), owner)
	if err != nil {
		r.writeError(c, err, "Failed to save note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    note,
	})
}

func (r *Router) clearNote(c *gin.Context) {
	owner, ok := bindOwner(c)
	if !ok {
		return
	}

	note, err := r.notes.Clear(c.Request.Context(), owner)
	if err != nil {
		r.writeError(c, err, "Failed to clear note")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"note":    note,
	})
}

func (r *Router) downloadNote(c *gin.Context) {
	owner, ok := bindOwner(c)
	if !ok {
		return
	}

	file, err := r.notes.Download(c.Request.Context(), owner)
	if err != nil {
		r.writeError(c, err, "Failed to download note")
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", file.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(file.Content))
}

func (r *Router) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"service":   serviceName,
		"timestamp": r.clock.Now().Unix(),
	})
}
