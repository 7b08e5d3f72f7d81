package config

import (
	"context"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sandevgo/askgate/pkg/log"
)

type VisionConfig struct {
	// Remote backend
	BaseURL string `env:"VISION_API_URL" envDefault:"http://localhost:8080"`

	// Local backend (llama.cpp vision CLI)
	BinaryPath    string `env:"LLAMA_CPP_PATH" envDefault:"/usr/local/bin/llama-qwen2vl-cli"`
	ModelPath     string `env:"QWEN2VL_MODEL_PATH" envDefault:"models/Qwen2-VL-2B-Instruct-Q4_K_M.gguf"`
	ProjectorPath string `env:"MM_PROJ_PATH" envDefault:"models/mmproj-Qwen2-VL-2B-Instruct-f16.gguf"`

	// TempDir receives uploaded images for the local backend; empty
	// means the OS default
	TempDir string `env:"ASKGATE_VISION_TEMP_DIR"`

	Timeout   time.Duration `env:"ASKGATE_VISION_TIMEOUT" envDefault:"500s"`
	AllowWebP bool          `env:"ASKGATE_VISION_ALLOW_WEBP" envDefault:"false"`
}

func NewVisionConfig(ctx context.Context) *VisionConfig {
	c := &VisionConfig{}
	if err := env.Parse(c); err != nil {
		log.FromCtx(ctx).Fatal().Err(err).Msg("failed to parse Vision config")
	}
	return c
}
