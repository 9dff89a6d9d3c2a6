package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const prefix = "FILEMAN"

type Config struct {
	Server  ServerConfig
	Logging LogConfig
	SSH     SSHConfig
}

type ServerConfig struct {
	Host string `envconfig:"HOST" default:""`
	Port uint   `envconfig:"PORT" default:"1234"`
	// Idle time after which a bridge connection is closed.
	ConnectionTimeout time.Duration `envconfig:"CONNECTION_TIMEOUT" default:"1m"`
	AllowOrigins      []string      `envconfig:"ALLOW_ORIGINS" default:"*"`
}

type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"LOG_DEV" default:"false"`
}

type SSHConfig struct {
	DialTimeout time.Duration `envconfig:"SSH_DIAL_TIMEOUT" default:"10s"`
	// Host keys are not verified when empty.
	KnownHostsFile string `envconfig:"SSH_KNOWN_HOSTS"`
}

// Load reads the configuration from FILEMAN_* environment variables.
// Sections are processed one by one so their keys share the flat prefix
// instead of being nested under the section name.
func Load() (*Config, error) {
	var cfg Config
	for _, section := range []any{&cfg.Server, &cfg.Logging, &cfg.SSH} {
		if err := envconfig.Process(prefix, section); err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}
	return &cfg, nil
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              1234,
			ConnectionTimeout: time.Minute,
			AllowOrigins:      []string{"*"},
		},
		Logging: LogConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			DialTimeout: 10 * time.Second,
		},
	}
}

func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}
