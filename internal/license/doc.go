// Package license implements the activation registry and key-validation
// engine for the shareware system. It decides, for a namespace and a
// user-supplied key string, whether that namespace is activated, unactivated,
// or invalid, and tracks every outcome for end-of-process reporting.
//
// # Architecture Overview
//
// The package consists of several components:
//
//	- Engine: key validation and issuer-side key generation
//	- Event: immutable record of one validation outcome
//	- Entry: append-only per-namespace event history
//	- Registry: process-wide concurrent map of entries
//	- Declarer: the explicit registration call made by a declaring component
//	- AttemptGuard: per-namespace validation rate limiting
//	- resultCache: month-scoped validation result caching
//
// # Validation Flow
//
// The validation process follows these steps:
//
//	1. Empty key -> Unactivated
//	2. Sentinel key ("free-as-in-beer") -> Activated, no cryptography
//	3. Derive AES-128 key from the MD5 digest of the namespace name
//	4. Base64-decode the raw key as IV || AES-CBC ciphertext
//	5. Decrypt and strip PKCS#7 padding; any failure -> Invalid
//	6. Constant-time compare against the current month's corpus word
//	7. Match -> Activated, mismatch -> Invalid
//
// Validation never returns an error and never panics for malformed input;
// every failure is encoded in the returned State.
//
// # Declaration
//
// A declaring component registers itself once at initialization:
//
//	state, err := declarer.Declare(ctx, "Demo")
//
// The Declarer looks up the candidate key from the environment
// (SHAREWARE_KEY_DEMO), validates it, and records the outcome in the
// registry. Declaring the same namespace again appends a new event;
// the entry's current state is the most recent outcome.
package license
