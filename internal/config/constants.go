package config

import "time"

// Application constants for the shareware activation system
const (
	// Application Info
	AppName    = "shareware"
	AppVersion = "1.0.0"

	// SentinelKey is the reserved literal meaning "unpaid, silent opt-in".
	// Any namespace declared with this key is activated without a
	// cryptographic check.
	SentinelKey = "free-as-in-beer"

	// EpochOrdinal is month zero of the validity-window arithmetic:
	// January 2016, expressed as year*12 + month-1. Issued keys and the
	// validator both count whole calendar months from here.
	EpochOrdinal = 2016*12 + 0

	// KeyEnvPrefix is prepended to the upper-snake transform of a namespace
	// name to form the environment variable holding its candidate key.
	KeyEnvPrefix = "SHAREWARE_KEY_"

	// CorpusSize is the expected size of the embedded word list.
	CorpusSize = 2400

	// Rate Limiting
	DefaultValidationRateLimit = 10 // validations per minute per namespace
	DefaultValidationBurst     = 5

	// Cache Settings
	ValidationCacheTTL     = 5 * time.Minute
	ValidationCacheMaxSize = 1024
)
