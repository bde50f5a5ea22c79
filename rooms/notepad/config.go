package notepad

import (
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Backend       string        `mapstructure:"backend"`
	KeyPrefix     string        `mapstructure:"key_prefix"`
	AutosaveDelay time.Duration `mapstructure:"autosave_delay"`
	// TTL expires stored notes in redis; zero keeps them.
	TTL time.Duration `mapstructure:"ttl"`
	// StoreTimeout bounds every load, save and clear; zero leaves them to the caller's ctx.
	StoreTimeout time.Duration `mapstructure:"store_timeout"`
	// AutosaveWorkers caps the autosaves written at once.
	AutosaveWorkers int `mapstructure:"autosave_workers"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("backend"), BackendMemory)
	v.SetDefault(p("key_prefix"), "lobby:notepad:")
	v.SetDefault(p("autosave_delay"), "30s")
	v.SetDefault(p("ttl"), "168h")
	v.SetDefault(p("store_timeout"), "10s")
	v.SetDefault(p("autosave_workers"), 8)
}
