package core

import "time"

const (
	AskgateName    = "askgate"
	AskgateVersion = "0.1.0"

	// VisionContext is the placeholder stored as the context of
	// image-based interactions, which carry no textual context.
	VisionContext = "Image input"
)

// Interaction is one logged question/answer/rating record.
type Interaction struct {
	ID        int64     `json:"id"`
	Context   string    `json:"context"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	Rating    *int64    `json:"rating"`
	CreatedAt time.Time `json:"timestamp"`
}
