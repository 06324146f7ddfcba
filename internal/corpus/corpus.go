// Package corpus holds the fixed dictionary of plaintext pass-words that the
// key validation engine compares decrypted keys against. The corpus is loaded
// once per process, kept sorted, and queried with a three-way-comparator
// binary search.
package corpus

import (
	"context"
	_ "embed"
	"log/slog"
	"os"
	"slices"
	"strings"
	"sync"
)

//go:embed words.txt
var embedded string

// Corpus is an immutable, lexicographically sorted word list. The zero value
// is unusable; construct one with New or Default.
type Corpus struct {
	words []string

	once sync.Once
	path string
}

// Default returns a corpus backed by the embedded word list.
func Default() *Corpus {
	return New("")
}

// New returns a corpus backed by the newline-delimited word list at path, or
// by the embedded list when path is empty. Loading is deferred until first
// use and happens exactly once.
func New(path string) *Corpus {
	return &Corpus{path: path}
}

// load reads and caches the backing word list. An unreadable override file
// yields an empty corpus rather than an error; the validation engine treats
// an empty corpus as "no key can match".
func (c *Corpus) load() {
	c.once.Do(func() {
		raw := embedded
		if c.path != "" {
			data, err := os.ReadFile(c.path)
			if err != nil {
				slog.LogAttrs(context.Background(), slog.LevelWarn,
					"corpus file unreadable, using empty corpus",
					slog.String("component", "corpus"),
					slog.String("path", c.path),
					slog.String("error", err.Error()),
				)
				c.words = nil
				return
			}
			raw = string(data)
		}
		c.words = parse(raw)
	})
}

// parse splits, trims, sorts, and dedups a newline-delimited word list. The
// embedded list ships sorted; sorting here keeps the binary-search invariant
// for override files too.
func parse(raw string) []string {
	lines := strings.Split(raw, "\n")
	words := make([]string, 0, len(lines))
	for _, line := range lines {
		w := strings.TrimSpace(line)
		if w == "" {
			continue
		}
		words = append(words, w)
	}
	slices.Sort(words)
	return slices.Compact(words)
}

// Len reports the number of words in the corpus.
func (c *Corpus) Len() int {
	c.load()
	return len(c.words)
}

// Contains reports whether word is in the corpus. strings.Compare is a strict
// three-way comparator; a boolean equality predicate would break the
// monotonicity binary search depends on.
func (c *Corpus) Contains(word string) bool {
	c.load()
	_, found := slices.BinarySearchFunc(c.words, word, strings.Compare)
	return found
}

// Slice returns the first n words of the sorted corpus. n larger than the
// corpus yields the whole corpus; n <= 0 yields an empty slice. The result
// is a copy and safe to retain.
func (c *Corpus) Slice(n int) []string {
	c.load()
	if n < 0 {
		n = 0
	}
	if n > len(c.words) {
		n = len(c.words)
	}
	out := make([]string, n)
	copy(out, c.words[:n])
	return out
}

// Word returns the word at index modulo the corpus length, so any window
// index maps onto a valid word. Negative indexes wrap the same way. Returns
// "" for an empty corpus.
func (c *Corpus) Word(index int) string {
	c.load()
	n := len(c.words)
	if n == 0 {
		return ""
	}
	return c.words[((index%n)+n)%n]
}
