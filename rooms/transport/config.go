package transport

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	// PasswordRate is password checks per second allowed per client IP.
	PasswordRate   float64       `mapstructure:"password_rate"`
	PasswordBurst  int           `mapstructure:"password_burst"`
	LimiterTTL     time.Duration `mapstructure:"limiter_ttl"`
	LimiterSize    int           `mapstructure:"limiter_size"`
	// AllowedOrigins is taken from the HTTP server config.
	AllowedOrigins []string      `mapstructure:"-"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("password_rate"), 0.2)
	v.SetDefault(p("password_burst"), 5)
	v.SetDefault(p("limiter_ttl"), "10m")
	v.SetDefault(p("limiter_size"), 4096)
}
