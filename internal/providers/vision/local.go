package vision

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

// Local answers vision questions by invoking the llama.cpp vision CLI
// as a subprocess. The uploaded image is spooled to a temp file which
// is removed on every exit path.
type Local struct {
	cfg     *config.VisionConfig
	allowed map[string]struct{}

	// the CLI loads the full model on every run; one inference at a
	// time keeps commodity hardware from thrashing
	mu sync.Mutex
}

func NewLocal(cfg *config.VisionConfig) *Local {
	return &Local{
		cfg:     cfg,
		allowed: supportedExtensions(cfg.AllowWebP),
	}
}

func (l *Local) Generate(ctx context.Context, question string, image core.Upload) (string, error) {
	ext, err := validateExtension(image.Filename, l.allowed)
	if err != nil {
		return "", err
	}

	imagePath, err := l.spoolImage(image.Reader, ext)
	if err != nil {
		return "", err
	}
	defer os.Remove(imagePath)

	log.FromCtx(ctx).Info().Str("image", image.Filename).Msg("running local vision inference")

	l.mu.Lock()
	defer l.mu.Unlock()

	runCtx, cancel := context.WithTimeout(ctx, l.cfg.Timeout)
	defer cancel()

	cmd := exec.CommandContext(runCtx, l.cfg.BinaryPath,
		"-m", l.cfg.ModelPath,
		"--mmproj", l.cfg.ProjectorPath,
		"-p", question,
		"--image", imagePath,
	)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	// Do not wait on grandchildren holding the output pipes after the
	// CLI itself was killed
	cmd.WaitDelay = time.Second

	if err := cmd.Run(); err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			log.FromCtx(ctx).Error().Msg("vision inference timed out")
			return "", core.ErrBackendTimeout
		}
		log.FromCtx(ctx).Error().Err(err).Str("stderr", stderr.String()).Msg("vision inference failed")
		return "", &core.BackendError{Status: 500, Body: stderr.String()}
	}

	return strings.TrimSpace(stdout.String()), nil
}

func (l *Local) spoolImage(src io.Reader, ext string) (string, error) {
	f, err := os.CreateTemp(l.cfg.TempDir, "askgate-vision-*"+ext)
	if err != nil {
		return "", fmt.Errorf("failed to create temp image: %w", err)
	}

	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write temp image: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to close temp image: %w", err)
	}
	return f.Name(), nil
}
