package config

import (
	"context"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/askgate/pkg/log"
)

type AppConfig struct {
	RuntimePath string `env:"ASKGATE_RUNTIME_PATH" envDefault:".askgate"`
	ListenAddr  string `env:"ASKGATE_LISTEN_ADDR" envDefault:":8000"`

	// Overrides the database location derived from RuntimePath
	DatabasePath string `env:"ASKGATE_DB_PATH"`

	// Which vision backend to run: "remote" or "local"
	VisionProvider string `env:"ASKGATE_VISION_PROVIDER" envDefault:"remote"`

	// Persistence Flags
	PersistText   bool `env:"ASKGATE_PERSIST_TEXT" envDefault:"true"`
	PersistVision bool `env:"ASKGATE_PERSIST_VISION" envDefault:"true"`

	// Upper bound applied to the ?limit= query of the listing endpoint
	MaxListLimit int `env:"ASKGATE_MAX_LIST_LIMIT" envDefault:"100"`
}

func NewAppConfig(ctx context.Context) *AppConfig {
	c := &AppConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse App config")
	}
	return c
}

func (c AppConfig) GetRuntimePath() string {
	return c.RuntimePath
}

func (c AppConfig) GetDatabasePath() string {
	if c.DatabasePath != "" {
		return c.DatabasePath
	}
	return filepath.Join(c.RuntimePath, "askgate.db")
}

func (c AppConfig) IsLocalVisionSelected() bool {
	return c.VisionProvider == "local"
}
