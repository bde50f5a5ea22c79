package directory

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/imtaco/interview-lobby/internal/errors"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/utils"
	"github.com/imtaco/interview-lobby/rooms"
	"github.com/imtaco/interview-lobby/rooms/roomname"
)

const (
	msgNotFound     = "Room not found. Please check the room name and try again."
	msgAuth         = "Authentication failed. Please check your API configuration."
	msgPermission   = "Access denied. You may not have permission to access this room."
	msgTransport    = "Unable to reach the rooms service. Please check your connection and try again."
	msgMissingKey   = "Rooms API key is not configured."
	defaultPageSize = 100
)

type clientImpl struct {
	http     *resty.Client
	apiKey   string
	pageSize int
	codec    *roomname.Codec
	clock    clockwork.Clock
	logger   *log.Logger
}

// New returns a rooms.Directory backed by the provider REST API.
func New(cfg *Config, codec *roomname.Codec, clock clockwork.Clock, logger *log.Logger) rooms.Directory {
	if logger == nil {
		panic("logger is required")
	}
	if codec == nil {
		panic("codec is required")
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	pageSize := cfg.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	httpClient := resty.New().
		SetBaseURL(strings.TrimRight(cfg.APIURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(cfg.Timeout)
	if cfg.APIKey != "" {
		httpClient.SetAuthToken(cfg.APIKey)
	}

	return &clientImpl{
		http:     httpClient,
		apiKey:   cfg.APIKey,
		pageSize: pageSize,
		codec:    codec,
		clock:    clock,
		logger:   logger,
	}
}

func (c *clientImpl) Exists(ctx context.Context, name string) (bool, *rooms.RoomRecord, error) {
	var out room
	if err := c.do(ctx, "exists", http.MethodGet, "/rooms/{name}", name, nil, &out, nil); err != nil {
		return false, nil, err
	}
	return true, c.toRecord(&out, name), nil
}

func (c *clientImpl) Create(ctx context.Context, name string, opts *rooms.CreateOptions) (*rooms.RoomRecord, error) {
	if opts == nil {
		opts = &rooms.CreateOptions{Public: true, Capabilities: rooms.DefaultCapabilities()}
	}
	privacy := privacyPrivate
	if opts.Public {
		privacy = privacyPublic
	}
	body := &createRequest{
		Name:    name,
		Privacy: privacy,
		Properties: createProperties{
			Capabilities: opts.Capabilities,
			NotBefore:    opts.NotBefore,
		},
	}

	var out room
	if err := c.do(ctx, "create", http.MethodPost, "/rooms", "", body, &out, nil); err != nil {
		return nil, err
	}
	c.logger.Info("room created", log.Room(name))
	return c.toRecord(&out, name), nil
}

// List follows pages until the provider returns a short page.
func (c *clientImpl) List(ctx context.Context) ([]*rooms.RoomRecord, error) {
	var (
		records []*rooms.RoomRecord
		after   string
	)
	for {
		query := map[string]string{"limit": fmt.Sprint(c.pageSize)}
		if after != "" {
			query["starting_after"] = after
		}

		var page roomPage
		if err := c.do(ctx, "list", http.MethodGet, "/rooms", "", nil, &page, query); err != nil {
			return nil, err
		}
		for _, r := range page.Data {
			records = append(records, c.toRecord(r, r.Name))
		}
		if len(page.Data) < c.pageSize {
			return records, nil
		}
		after = page.Data[len(page.Data)-1].ID
	}
}

func (c *clientImpl) Reschedule(ctx context.Context, name string, notBefore int64) (*rooms.RoomRecord, error) {
	body := &updateRequest{Properties: updateProperties{NotBefore: notBefore}}

	var out room
	if err := c.do(ctx, "reschedule", http.MethodPost, "/rooms/{name}", name, body, &out, nil); err != nil {
		return nil, err
	}
	c.logger.Info("room rescheduled", log.Room(name), log.Int64("nbf", notBefore))
	return c.toRecord(&out, name), nil
}

func (c *clientImpl) Delete(ctx context.Context, name string) error {
	if err := c.do(ctx, "delete", http.MethodDelete, "/rooms/{name}", name, nil, nil, nil); err != nil {
		return err
	}
	c.logger.Info("room deleted", log.Room(name))
	return nil
}

func (c *clientImpl) do(
	ctx context.Context,
	op, method, path, name string,
	body, result any,
	query map[string]string,
) (err error) {
	if c.apiKey == "" {
		return errors.New(rooms.ErrConfiguration, msgMissingKey)
	}

	start := c.clock.Now()
	defer func() {
		outcome := "ok"
		if code, ok := errors.CodeOf(err); ok {
			outcome = string(code)
		}
		attrs := metric.WithAttributes(attribute.String("op", op), attribute.String("outcome", outcome))
		requestsTotal.Add(ctx, 1, attrs)
		requestDuration.Record(ctx, c.clock.Since(start).Seconds(), attrs)
	}()

	var apiErr apiError
	req := c.http.R().SetContext(ctx).SetError(&apiErr)
	if name != "" {
		req.SetPathParam("name", name)
	}
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}
	if query != nil {
		req.SetQueryParams(query)
	}

	c.logger.Debug("provider request", log.String("op", op), log.String("path", path), log.Room(name))
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Warn("provider unreachable", log.String("op", op), log.Error(err))
		return errors.New(rooms.ErrTransport, msgTransport)
	}
	if !resp.IsError() {
		return nil
	}

	status := resp.StatusCode()
	c.logger.Debug("provider error response",
		log.String("op", op),
		log.Int("status", status),
		log.String("error", apiErr.Error),
		log.String("info", apiErr.Info))

	switch status {
	case http.StatusNotFound:
		return errors.New(rooms.ErrNotFound, msgNotFound)
	case http.StatusUnauthorized:
		return errors.New(rooms.ErrAuth, msgAuth)
	case http.StatusForbidden:
		return errors.New(rooms.ErrPermission, msgPermission)
	}
	switch {
	case apiErr.Info != "":
		return errors.New(rooms.ErrProvider, apiErr.Info)
	case apiErr.Error != "":
		return errors.New(rooms.ErrProvider, apiErr.Error)
	default:
		return errors.Newf(rooms.ErrProvider, "API request failed with status %d", status)
	}
}

// toRecord fills fields the provider omitted.
func (c *clientImpl) toRecord(r *room, name string) *rooms.RoomRecord {
	rec := &rooms.RoomRecord{
		ID:           r.ID,
		Name:         r.Name,
		IsPublic:     r.Privacy != privacyPrivate,
		URL:          r.URL,
		Capabilities: r.Config,
	}
	if rec.Name == "" {
		rec.Name = name
	}
	if rec.ID == "" {
		rec.ID = rec.Name
	}
	if rec.URL == "" {
		rec.URL = c.codec.CanonicalURL(rec.Name)
	}
	if rec.Capabilities == nil {
		rec.Capabilities = map[string]any{}
	}
	if t, err := time.Parse(time.RFC3339, r.CreatedAt); err == nil {
		rec.CreatedAt = t
	} else {
		rec.CreatedAt = c.clock.Now()
	}
	if nbf, ok := notBefore(r.Config); ok {
		rec.NotBefore = utils.Ptr(nbf)
	}
	return rec
}

func notBefore(cfg map[string]any) (int64, bool) {
	switch v := cfg["nbf"].(type) {
	case float64:
		return int64(v), true
	case int64:
		return v, true
	case int:
		return int64(v), true
	default:
		return 0, false
	}
}
