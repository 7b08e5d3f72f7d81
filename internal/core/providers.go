package core

import (
	"context"
	"io"
)

type TextGenerator interface {
	Generate(ctx context.Context, contextText, question, model string) (string, error)
}

// Upload is an in-flight image attachment. The reader is owned by the
// HTTP handler and stays valid for the duration of the request.
type Upload struct {
	Filename string
	Reader   io.Reader
}

type VisionGenerator interface {
	Generate(ctx context.Context, question string, image Upload) (string, error)
}
