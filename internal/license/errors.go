package license

import "errors"

var (
	// ErrInvalidNamespace means a declared namespace name is empty or not a
	// valid identifier. This is a programming error in the declaring
	// component, rejected before the engine runs.
	ErrInvalidNamespace = errors.New("namespace name is not a valid identifier")

	// ErrRateLimited means the per-namespace attempt guard refused a
	// validation. The attempt is still recorded, as Invalid.
	ErrRateLimited = errors.New("validation attempts rate limited")

	// ErrEmptyCorpus means no key can be issued because the word corpus
	// loaded empty.
	ErrEmptyCorpus = errors.New("word corpus is empty")
)
