package httputil

import (
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

type TLSConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	CertFile string `mapstructure:"cert_file"`
	KeyFile  string `mapstructure:"key_file"`
}

type Config struct {
	Addr              string        `mapstructure:"addr"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	AllowedOrigins    []string      `mapstructure:"allowed_origins"`
	TLS               TLSConfig     `mapstructure:"tls"`
}

func Setup(v *viper.Viper, prefix string) {
	p := func(key string) string { return prefix + "." + key }

	v.SetDefault(p("addr"), ":8080")
	v.SetDefault(p("read_header_timeout"), "5s")
	v.SetDefault(p("allowed_origins"), []string{"*"})
	v.SetDefault(p("tls.enabled"), false)
	v.SetDefault(p("tls.cert_file"), "")
	v.SetDefault(p("tls.key_file"), "")
}

type Server struct {
	*http.Server
	cfg *Config
}

func NewServer(cfg *Config, handler http.Handler) *Server {
	return &Server{
		Server: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		},
		cfg: cfg,
	}
}

// Listen blocks serving plain HTTP or TLS depending on config.
func (s *Server) Listen() error {
	if !s.cfg.TLS.Enabled {
		return s.ListenAndServe()
	}
	if s.cfg.TLS.CertFile == "" || s.cfg.TLS.KeyFile == "" {
		return errors.New("TLS is enabled but cert_file or key_file is not set")
	}
	return s.ListenAndServeTLS(s.cfg.TLS.CertFile, s.cfg.TLS.KeyFile)
}
