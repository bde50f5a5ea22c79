package config

import (
	"strings"

	"github.com/spf13/viper"
)

// NewViper reads every key from the environment, "daily.api_key" <- DAILY_API_KEY.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	return v
}

// Load applies configure (defaults) and unmarshals into c. When file is set it
// is read first; environment values still win.
func Load[T any](c *T, file string, configure func(v *viper.Viper)) (*T, error) {
	v := NewViper()
	configure(v)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}
	return c, v.Unmarshal(c)
}
