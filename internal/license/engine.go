package license

import (
	"context"
	"crypto/aes"
	"crypto/cipher"
	"crypto/md5"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"log/slog"
	"time"

	"shareware/internal/config"
	"shareware/internal/corpus"
	"shareware/internal/window"
)

// Engine validates candidate activation keys against the time-windowed word
// scheme. It is safe for concurrent use: the corpus and epoch are read-only
// after construction and every call builds its own cipher.
type Engine struct {
	corpus       *corpus.Corpus
	epochOrdinal int
	cache        *resultCache
	metrics      *Metrics
}

// EngineOption configures optional engine behavior.
type EngineOption func(*Engine)

// WithCache enables the month-scoped validation result cache.
func WithCache(maxSize int) EngineOption {
	return func(e *Engine) {
		e.cache = newResultCache(maxSize)
	}
}

// WithMetrics records validation metrics on the given instruments.
func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// NewEngine returns an engine validating against c with the given epoch
// month ordinal.
func NewEngine(c *corpus.Corpus, epochOrdinal int, opts ...EngineOption) *Engine {
	e := &Engine{corpus: c, epochOrdinal: epochOrdinal}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExpectedWord returns the corpus word that is the valid key plaintext for
// the calendar month containing now.
func (e *Engine) ExpectedWord(now time.Time) string {
	return e.corpus.Word(window.Index(now, e.epochOrdinal))
}

// Validate decides the activation state for a namespace and candidate key at
// the given time. It always returns a State: malformed or forged keys are a
// data condition, not a fault, and are reported as StateInvalid.
func (e *Engine) Validate(ctx context.Context, namespace, rawKey string, now time.Time) State {
	start := time.Now()
	state := e.validate(ctx, namespace, rawKey, now)
	e.metrics.recordValidation(ctx, state, time.Since(start))

	logAction(ctx, slog.LevelDebug, "validate", "key validated",
		slog.String("namespace", namespace),
		slog.String("state", state.String()),
		slog.Bool("key_present", rawKey != ""),
	)
	return state
}

func (e *Engine) validate(ctx context.Context, namespace, rawKey string, now time.Time) State {
	if rawKey == "" {
		return StateUnactivated
	}
	if rawKey == config.SentinelKey {
		// Explicit unpaid opt-in; no cryptographic check.
		return StateActivated
	}

	monthOrdinal := window.Ordinal(now)
	if e.cache != nil {
		if state, ok := e.cache.get(namespace, rawKey, monthOrdinal); ok {
			e.metrics.recordCacheHit(ctx)
			return state
		}
		e.metrics.recordCacheMiss(ctx)
	}

	state := StateInvalid
	if plaintext, err := decrypt(deriveKey(namespace), rawKey); err == nil {
		expected := e.ExpectedWord(now)
		if expected != "" && e.corpus.Contains(plaintext) &&
			subtle.ConstantTimeCompare([]byte(plaintext), []byte(expected)) == 1 {
			state = StateActivated
		}
	}

	if e.cache != nil {
		e.cache.put(namespace, rawKey, monthOrdinal, state)
	}
	return state
}

// Issue generates the key a paying user would receive for a namespace and an
// absolute month ordinal: the window's corpus word, AES-CBC encrypted under
// the namespace digest, base64 encoded with the IV prepended. This is the
// issuer side of the scheme the validator checks against.
func (e *Engine) Issue(namespace string, monthOrdinal int) (string, error) {
	word := e.corpus.Word(monthOrdinal - e.epochOrdinal)
	if word == "" {
		return "", ErrEmptyCorpus
	}

	block, err := aes.NewCipher(deriveKey(namespace))
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	plaintext := pkcs7Pad([]byte(word), aes.BlockSize)
	buf := make([]byte, aes.BlockSize+len(plaintext))
	iv := buf[:aes.BlockSize]
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate iv: %w", err)
	}
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(buf[aes.BlockSize:], plaintext)

	return base64.StdEncoding.EncodeToString(buf), nil
}

// deriveKey hashes a namespace name into an AES-128 key. MD5 is a key
// derivation convention shared with the issuer here, not an integrity
// mechanism.
func deriveKey(namespace string) []byte {
	sum := md5.Sum([]byte(namespace))
	return sum[:]
}

// decrypt treats rawKey as base64(IV || AES-CBC ciphertext) and returns the
// unpadded plaintext. Every malformed-input condition comes back as an error
// for the caller to downgrade to StateInvalid.
func decrypt(key []byte, rawKey string) (string, error) {
	data, err := base64.StdEncoding.DecodeString(rawKey)
	if err != nil {
		return "", fmt.Errorf("key is not valid base64: %w", err)
	}
	if len(data) < 2*aes.BlockSize || len(data)%aes.BlockSize != 0 {
		return "", fmt.Errorf("ciphertext length %d is not a valid block sequence", len(data))
	}

	// Cipher state is per-call; never reuse across validations.
	block, err := aes.NewCipher(key)
	if err != nil {
		return "", fmt.Errorf("failed to create cipher: %w", err)
	}

	iv, ciphertext := data[:aes.BlockSize], data[aes.BlockSize:]
	plaintext := make([]byte, len(ciphertext))
	cipher.NewCBCDecrypter(block, iv).CryptBlocks(plaintext, ciphertext)

	return pkcs7Unpad(plaintext, aes.BlockSize)
}

// pkcs7Pad appends PKCS#7 padding up to blockSize.
func pkcs7Pad(data []byte, blockSize int) []byte {
	n := blockSize - len(data)%blockSize
	out := make([]byte, len(data)+n)
	copy(out, data)
	for i := len(data); i < len(out); i++ {
		out[i] = byte(n)
	}
	return out
}

// pkcs7Unpad strips and verifies PKCS#7 padding.
func pkcs7Unpad(data []byte, blockSize int) (string, error) {
	if len(data) == 0 || len(data)%blockSize != 0 {
		return "", fmt.Errorf("invalid padded length %d", len(data))
	}
	n := int(data[len(data)-1])
	if n == 0 || n > blockSize || n > len(data) {
		return "", fmt.Errorf("invalid padding byte %d", n)
	}
	for _, b := range data[len(data)-n:] {
		if int(b) != n {
			return "", fmt.Errorf("inconsistent padding")
		}
	}
	return string(data[:len(data)-n]), nil
}
