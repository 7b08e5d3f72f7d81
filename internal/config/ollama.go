package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/askgate/pkg/log"
)

type OllamaConfig struct {
	BaseURL      string        `env:"OLLAMA_API_URL" envDefault:"http://localhost:11434"`
	DefaultModel string        `env:"OLLAMA_DEFAULT_MODEL" envDefault:"qwen2.5:0.5b"`
	Timeout      time.Duration `env:"ASKGATE_TEXT_TIMEOUT" envDefault:"120s"`
}

func NewOllamaConfig(ctx context.Context) *OllamaConfig {
	c := &OllamaConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Ollama config")
	}
	return c
}
