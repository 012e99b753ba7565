// Package chunker provides a word-window text chunking processor.
package chunker

import (
	"regexp"
	"strings"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// DefaultChunkSize is the default window size in words.
const DefaultChunkSize = 400

// DefaultOverlap is the default overlap between windows in words.
const DefaultOverlap = 50

// minChunkChars is the floor below which a window is discarded.
// Near-empty fragments are useless as grounding context and would only
// dilute retrieval.
const minChunkChars = 50

var (
	crlf         = strings.NewReplacer("\r\n", "\n", "\r", "\n")
	excessBlanks = regexp.MustCompile(`\n{3,}`)
)

// Chunker splits normalised text into overlapping word windows.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the window size in words.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between windows in words.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a chunker with the given options. The overlap must be
// strictly smaller than the chunk size; anything else would stall the
// sliding window, so it is rejected up front.
func New(opts ...Option) (*Chunker, error) {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	if c.overlap >= c.chunkSize {
		return nil, domain.ErrInvalidConfig
	}

	return c, nil
}

// ChunkSize returns the configured window size in words.
func (c *Chunker) ChunkSize() int {
	return c.chunkSize
}

// Overlap returns the configured overlap in words.
func (c *Chunker) Overlap() int {
	return c.overlap
}

// Normalize canonicalises raw book text: CRLF to LF, runs of three or
// more newlines collapsed to a paragraph break, surrounding whitespace
// trimmed.
func Normalize(text string) string {
	text = crlf.Replace(text)
	text = excessBlanks.ReplaceAllString(text, "\n\n")
	return strings.TrimSpace(text)
}

// Split normalises the text and slices it into overlapping word windows.
// Text at most one window long is returned whole. Consecutive windows
// share exactly the configured overlap (the final window may be
// shorter), and windows at or under the character floor are dropped.
func (c *Chunker) Split(text string) []string {
	normalized := Normalize(text)
	if normalized == "" {
		return nil
	}

	words := strings.Fields(normalized)
	if len(words) <= c.chunkSize {
		return []string{normalized}
	}

	step := c.chunkSize - c.overlap
	estimated := (len(words) / step) + 1
	chunks := make([]string, 0, estimated)

	for start := 0; start < len(words); start += step {
		end := start + c.chunkSize
		if end > len(words) {
			end = len(words)
		}

		window := strings.Join(words[start:end], " ")
		if len(strings.TrimSpace(window)) > minChunkChars {
			chunks = append(chunks, window)
		}
	}

	return chunks
}
