package directory

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	APIURL      string        `mapstructure:"api_url"`
	APIKey      string        `mapstructure:"api_key"`
	RoomBaseURL string        `mapstructure:"room_base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	PageSize    int           `mapstructure:"page_size"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("api_url"), "https://api.daily.co/v1")
	v.SetDefault(p("api_key"), "")
	v.SetDefault(p("room_base_url"), "https://concretio.daily.co/")
	v.SetDefault(p("timeout"), "10s")
	v.SetDefault(p("page_size"), 100)
}
