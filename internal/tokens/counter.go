// Package tokens provides approximate prompt token accounting. Gemini does
// not expose a local tokenizer, so counts use the cl100k encoding as a
// close-enough proxy for request logging and the oversized-prompt guard.
package tokens

import (
	"sync"

	"github.com/tiktoken-go/tokenizer"
)

// Counter counts tokens for prompt text.
type Counter struct {
	once  sync.Once
	codec tokenizer.Codec
	err   error
}

// NewCounter creates a lazy counter; the tokenizer vocabulary is loaded on
// first use.
func NewCounter() *Counter {
	return &Counter{}
}

func (c *Counter) load() {
	c.codec, c.err = tokenizer.Get(tokenizer.Cl100kBase)
}

// Count returns the approximate token count for text. When the tokenizer
// cannot be loaded it falls back to a bytes/4 estimate rather than failing
// the send path.
func (c *Counter) Count(text string) int {
	c.once.Do(c.load)
	if c.err != nil {
		return estimate(text)
	}
	ids, _, err := c.codec.Encode(text)
	if err != nil {
		return estimate(text)
	}
	return len(ids)
}

// estimate is the rough heuristic of one token per four bytes.
func estimate(text string) int {
	n := len(text) / 4
	if n == 0 && len(text) > 0 {
		n = 1
	}
	return n
}
