package chunker

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/storyloom-labs/lorebase/internal/core/domain"
)

// numberedWords returns n distinct words "w0" .. "w(n-1)".
func numberedWords(n int) []string {
	words := make([]string, n)
	for i := range words {
		words[i] = fmt.Sprintf("w%d", i)
	}
	return words
}

func TestNew(t *testing.T) {
	t.Run("default values", func(t *testing.T) {
		c, err := New()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.chunkSize != DefaultChunkSize {
			t.Errorf("expected chunkSize %d, got %d", DefaultChunkSize, c.chunkSize)
		}
		if c.overlap != DefaultOverlap {
			t.Errorf("expected overlap %d, got %d", DefaultOverlap, c.overlap)
		}
	})

	t.Run("custom values", func(t *testing.T) {
		c, err := New(WithChunkSize(200), WithOverlap(25))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.ChunkSize() != 200 || c.Overlap() != 25 {
			t.Errorf("expected 200/25, got %d/%d", c.ChunkSize(), c.Overlap())
		}
	})

	t.Run("overlap equal to chunk size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(100))
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("overlap above chunk size is rejected", func(t *testing.T) {
		_, err := New(WithChunkSize(100), WithOverlap(150))
		if !errors.Is(err, domain.ErrInvalidConfig) {
			t.Errorf("expected ErrInvalidConfig, got %v", err)
		}
	})

	t.Run("zero values ignored", func(t *testing.T) {
		c, err := New(WithChunkSize(0), WithOverlap(-1))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if c.chunkSize != DefaultChunkSize || c.overlap != DefaultOverlap {
			t.Errorf("expected defaults, got %d/%d", c.chunkSize, c.overlap)
		}
	})
}

func TestNormalize(t *testing.T) {
	t.Run("collapses CRLF", func(t *testing.T) {
		got := Normalize("one\r\ntwo\rthree")
		if got != "one\ntwo\nthree" {
			t.Errorf("unexpected normalisation: %q", got)
		}
	})

	t.Run("collapses blank runs to paragraph break", func(t *testing.T) {
		got := Normalize("one\n\n\n\ntwo")
		if got != "one\n\ntwo" {
			t.Errorf("unexpected normalisation: %q", got)
		}
	})

	t.Run("preserves single paragraph break", func(t *testing.T) {
		got := Normalize("one\n\ntwo")
		if got != "one\n\ntwo" {
			t.Errorf("unexpected normalisation: %q", got)
		}
	})

	t.Run("trims surrounding whitespace", func(t *testing.T) {
		got := Normalize("  \n some text \n\n")
		if got != "some text" {
			t.Errorf("unexpected normalisation: %q", got)
		}
	})
}

func TestSplit_SingleChunk(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	text := strings.Join(numberedWords(400), " ")
	chunks := c.Split(text)

	if len(chunks) != 1 {
		t.Fatalf("expected 1 chunk, got %d", len(chunks))
	}
	if chunks[0] != text {
		t.Error("single chunk should equal the normalised text")
	}
}

func TestSplit_WindowOffsets(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	words := numberedWords(1000)
	chunks := c.Split(strings.Join(words, " "))

	if len(chunks) != 3 {
		t.Fatalf("expected 3 chunks, got %d", len(chunks))
	}

	// Windows start at word offsets 0, 350 and 700.
	wantStarts := []int{0, 350, 700}
	for i, start := range wantStarts {
		first := strings.Fields(chunks[i])[0]
		if first != words[start] {
			t.Errorf("chunk %d: expected first word %q, got %q", i, words[start], first)
		}
	}

	// Consecutive chunks share exactly 50 words.
	for i := 0; i < len(chunks)-1; i++ {
		prev := strings.Fields(chunks[i])
		next := strings.Fields(chunks[i+1])
		tail := prev[len(prev)-50:]
		head := next[:50]
		for j := range tail {
			if tail[j] != head[j] {
				t.Fatalf("chunks %d/%d: overlap mismatch at word %d: %q != %q", i, i+1, j, tail[j], head[j])
			}
		}
	}

	// Final chunk is shorter than a full window.
	last := strings.Fields(chunks[2])
	if len(last) != 300 {
		t.Errorf("expected final chunk of 300 words, got %d", len(last))
	}
}

func TestSplit_DropsShortWindows(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// 701 one-character words: the final window holds a single word and
	// falls under the character floor.
	words := make([]string, 701)
	for i := range words {
		words[i] = "a"
	}
	chunks := c.Split(strings.Join(words, " "))

	if len(chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(chunks))
	}
	for i, chunk := range chunks {
		if len(strings.TrimSpace(chunk)) <= 50 {
			t.Errorf("chunk %d is under the character floor", i)
		}
	}
}

func TestSplit_EmptyText(t *testing.T) {
	c, err := New()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chunks := c.Split("   \n\n  "); chunks != nil {
		t.Errorf("expected nil chunks, got %v", chunks)
	}
}
