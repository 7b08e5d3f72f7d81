package llm

import (
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

var (
	encOnce sync.Once
	encoder *tiktoken.Tiktoken
)

// estimateTokens gives a rough prompt size for debug logging. The
// cl100k_base vocabulary is not the served model's tokenizer, but it is
// close enough to spot oversized prompts. Returns -1 when the encoding
// cannot be loaded.
func estimateTokens(text string) int {
	encOnce.Do(func() {
		enc, err := tiktoken.GetEncoding(tiktoken.MODEL_CL100K_BASE)
		if err != nil {
			return
		}
		encoder = enc
	})
	if encoder == nil {
		return -1
	}
	return len(encoder.Encode(text, nil, nil))
}
