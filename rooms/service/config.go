package service

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AdminPassword string        `mapstructure:"password"`
	SessionTTL    time.Duration `mapstructure:"session_ttl"`
	MaxSessions   int           `mapstructure:"max_sessions"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("password"), "")
	v.SetDefault(p("session_ttl"), "30m")
	v.SetDefault(p("max_sessions"), 1024)
}
