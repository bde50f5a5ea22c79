package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/jonboulle/clockwork"
	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"golang.org/x/sync/errgroup"

	"github.com/imtaco/interview-lobby/internal/config"
	"github.com/imtaco/interview-lobby/internal/httputil"
	"github.com/imtaco/interview-lobby/internal/log"
	"github.com/imtaco/interview-lobby/internal/otel"
	"github.com/imtaco/interview-lobby/internal/redis"
	"github.com/imtaco/interview-lobby/internal/retry"
	"github.com/imtaco/interview-lobby/internal/workflow"
	"github.com/imtaco/interview-lobby/rooms/directory"
	"github.com/imtaco/interview-lobby/rooms/notepad"
	"github.com/imtaco/interview-lobby/rooms/roomname"
	"github.com/imtaco/interview-lobby/rooms/service"
	"github.com/imtaco/interview-lobby/rooms/transport"
)

type Config struct {
	App     config.App       `mapstructure:"app"`
	HTTP    httputil.Config  `mapstructure:"http"`
	Otel    otel.Config      `mapstructure:"otel"`
	Redis   redis.Config     `mapstructure:"redis"`
	Daily   directory.Config `mapstructure:"daily"`
	Admin   service.Config   `mapstructure:"admin"`
	Notepad notepad.Config   `mapstructure:"notepad"`
	API     transport.Config `mapstructure:"api"`
}

func loadConfig() (*Config, error) {
	return config.Load(&Config{}, os.Getenv("CONFIG_FILE"), func(v *viper.Viper) {
		config.Setup(v, "app")
		httputil.Setup(v, "http")
		otel.Setup(v, "otel")
		redis.Setup(v, "redis")
		directory.Setup(v, "daily")
		service.Setup(v, "admin")
		notepad.Setup(v, "notepad")
		transport.Setup(v, "api")

		v.SetDefault("http.addr", "0.0.0.0:3000")
	})
}

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("Failed to load configuration", err)
	}

	logger, err := log.NewLogger(cfg.App.LogConfigFile)
	if err != nil {
		log.Fatal("Failed to create logger", err)
	}
	defer func() { _ = logger.Sync() }()

	ctx := context.Background()

	otelShutdown, err := otel.Init(ctx, &cfg.Otel, logger.Module("Otel"))
	if err != nil {
		logger.Fatal("Failed to initialize OTEL provider", log.Error(err))
	}

	logger.Info("Starting interview lobby",
		log.String("addr", cfg.HTTP.Addr),
		log.String("roomBaseUrl", cfg.Daily.RoomBaseURL),
		log.String("notepadBackend", cfg.Notepad.Backend))
	if cfg.Daily.APIKey == "" {
		logger.Warn("daily.api_key is not set, room operations will fail")
	}

	codec, err := roomname.NewCodec(cfg.Daily.RoomBaseURL)
	if err != nil {
		logger.Fatal("Invalid room base URL", log.Error(err))
	}
	clock := clockwork.NewRealClock()

	var redisClient *goredis.Client
	if cfg.Notepad.Backend == notepad.BackendRedis {
		redisClient = redis.NewClient(&cfg.Redis)
		r := retry.New(logger.Module("Retry"), 500*time.Millisecond, 5*time.Second, 30*time.Second)
		if err := r.Do(ctx, "redis ping", func() error {
			return redis.Ping(ctx, redisClient)
		}); err != nil {
			logger.Fatal("Failed to reach redis", log.String("addr", cfg.Redis.Addr), log.Error(err))
		}
	}

	noteStore, err := notepad.NewStore(&cfg.Notepad, redisClient, logger.Module("NoteStore"))
	if err != nil {
		logger.Fatal("Failed to create note store", log.Error(err))
	}

	dir := directory.New(&cfg.Daily, codec, clock, logger.Module("Directory"))
	flows := service.NewFlowService(&cfg.Admin, dir, codec, clock, logger.Module("FlowSvc"))
	notes := notepad.NewService(&cfg.Notepad, noteStore, clock, logger.Module("Notepad"))

	cfg.API.AllowedOrigins = cfg.HTTP.AllowedOrigins
	router := transport.NewRouter(&cfg.API, flows, notes, clock, logger.Module("Router"))
	server := httputil.NewServer(&cfg.HTTP, router.Handler())

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting HTTP server", log.String("addr", cfg.HTTP.Addr))
		if err := server.Listen(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	logger.Info("Interview lobby started")

	workflow.WaitGracefulShutdown(gctx, logger.Module("CleanUp"), cfg.App.ShutdownTimeout,
		workflow.Cleanup{Name: "http", Fn: server.Shutdown},
		workflow.Cleanup{Name: "calls", Fn: func(context.Context) error {
			router.Close()
			return nil
		}},
		workflow.Cleanup{Name: "notepad", Fn: func(context.Context) error {
			notes.Close()
			return nil
		}},
		workflow.Cleanup{Name: "redis", Fn: func(context.Context) error {
			if redisClient == nil {
				return nil
			}
			return redisClient.Close()
		}},
		workflow.Cleanup{Name: "otel", Fn: otelShutdown},
	)

	if err := g.Wait(); err != nil {
		logger.Error("HTTP server failed", log.Error(err))
	}
}
