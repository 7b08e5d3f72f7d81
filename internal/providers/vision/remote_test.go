package vision

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sandevgo/askgate/internal/config"
	"github.com/sandevgo/askgate/internal/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRemoteConfig(baseURL string, allowWebP bool) *config.VisionConfig {
	return &config.VisionConfig{
		BaseURL:   baseURL,
		Timeout:   5 * time.Second,
		AllowWebP: allowWebP,
	}
}

func TestRemote_Generate(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/generate-vision", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(32<<20))

		assert.Equal(t, "What is in this picture?", r.FormValue("user_question"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cat.jpg", header.Filename)

		data, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "fake image bytes", string(data))

		fmt.Fprint(w, `{"response": "A cat on a sofa"}`)
	}))
	defer ts.Close()

	remote := NewRemote(newRemoteConfig(ts.URL, false))
	answer, err := remote.Generate(context.Background(), "What is in this picture?", core.Upload{
		Filename: "cat.jpg",
		Reader:   strings.NewReader("fake image bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, "A cat on a sofa", answer)
}

func TestRemote_Generate_UnsupportedExtension(t *testing.T) {
	var hits atomic.Int32
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))
	defer ts.Close()

	remote := NewRemote(newRemoteConfig(ts.URL, false))

	for _, filename := range []string{"anim.gif", "doc.pdf", "noext", "pic.webp"} {
		_, err := remote.Generate(context.Background(), "question", core.Upload{
			Filename: filename,
			Reader:   strings.NewReader("data"),
		})

		var vErr *core.ValidationError
		require.True(t, errors.As(err, &vErr), "expected validation error for %q", filename)
	}

	assert.Equal(t, int32(0), hits.Load(), "validation must reject before any network call")
}

func TestRemote_Generate_WebPFlag(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"response": "ok"}`)
	}))
	defer ts.Close()

	remote := NewRemote(newRemoteConfig(ts.URL, true))
	_, err := remote.Generate(context.Background(), "question", core.Upload{
		Filename: "pic.webp",
		Reader:   strings.NewReader("data"),
	})
	require.NoError(t, err)
}

func TestRemote_Generate_BackendError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"detail": "inference crashed"}`)
	}))
	defer ts.Close()

	remote := NewRemote(newRemoteConfig(ts.URL, false))
	_, err := remote.Generate(context.Background(), "question", core.Upload{
		Filename: "cat.png",
		Reader:   strings.NewReader("data"),
	})

	var bErr *core.BackendError
	require.True(t, errors.As(err, &bErr))
	assert.Equal(t, http.StatusInternalServerError, bErr.Status)
	assert.Contains(t, bErr.Body, "inference crashed")
}

func TestRemote_Generate_BackendUnreachable(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close()

	remote := NewRemote(newRemoteConfig(ts.URL, false))
	_, err := remote.Generate(context.Background(), "question", core.Upload{
		Filename: "cat.png",
		Reader:   strings.NewReader("data"),
	})
	assert.True(t, errors.Is(err, core.ErrBackendUnavailable))
}
