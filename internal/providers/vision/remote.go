package vision

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
	"github.com/sandevgo/askgate/pkg/log"
)

// Remote forwards vision questions to an HTTP vision-serving endpoint
// as a multipart form.
type Remote struct {
	client  *http.Client
	baseURL string
	allowed map[string]struct{}
}

func NewRemote(cfg *config.VisionConfig) *Remote {
	return &Remote{
		client: &http.Client{
			Timeout: cfg.Timeout,
		},
		baseURL: cfg.BaseURL,
		allowed: supportedExtensions(cfg.AllowWebP),
	}
}

func (r *Remote) Generate(ctx context.Context, question string, image core.Upload) (string, error) {
	if _, err := validateExtension(image.Filename, r.allowed); err != nil {
		return "", err
	}

	log.FromCtx(ctx).Info().Str("image", image.Filename).Msg("forwarding vision request")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	if err := mw.WriteField("user_question", question); err != nil {
		return "", fmt.Errorf("failed to write question field: %w", err)
	}

	fw, err := mw.CreateFormFile("image", image.Filename)
	if err != nil {
		return "", fmt.Errorf("failed to create image part: %w", err)
	}
	if _, err := io.Copy(fw, image.Reader); err != nil {
		return "", fmt.Errorf("failed to copy image: %w", err)
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("failed to finalize form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/generate-vision", &buf)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := r.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", core.ErrBackendTimeout
		}
		return "", fmt.Errorf("%w: %v", core.ErrBackendUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", &core.BackendError{Status: resp.StatusCode, Body: string(data)}
	}

	var result struct {
		Response string `json:"response"`
	}
	if err := json.Unmarshal(data, &result); err != nil {
		return "", fmt.Errorf("decode: %w", err)
	}
	return result.Response, nil
}
