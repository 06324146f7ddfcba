// Package testutil provides fixtures and helpers for activation tests.
package testutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"shareware/internal/config"
	"shareware/internal/corpus"
	"shareware/internal/license"
	"shareware/internal/window"
)

// NewEngine returns an engine over the embedded corpus with the default
// epoch, the configuration almost every test wants.
func NewEngine(t *testing.T, opts ...license.EngineOption) *license.Engine {
	t.Helper()
	return license.NewEngine(corpus.Default(), config.EpochOrdinal, opts...)
}

// MustIssueKey issues a key for the namespace valid during the month
// containing at.
func MustIssueKey(t *testing.T, e *license.Engine, namespace string, at time.Time) string {
	t.Helper()
	key, err := e.Issue(namespace, window.Ordinal(at))
	require.NoError(t, err)
	return key
}

// TimeIn returns a fixed mid-month instant, so tests pin validations to a
// known window without depending on the wall clock.
func TimeIn(year int, month time.Month) time.Time {
	return time.Date(year, month, 14, 9, 30, 0, 0, time.UTC)
}

// Env builds an environment lookup from a map, for Declarer tests.
func Env(vars map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

// Clock returns a frozen time source.
func Clock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
