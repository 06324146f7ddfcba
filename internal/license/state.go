package license

import (
	"time"

	"github.com/google/uuid"
)

// State is the outcome of one key validation.
type State string

const (
	// StateActivated means the key matched the current window's word, or
	// the sentinel key was used.
	StateActivated State = "activated"
	// StateUnactivated means no key was provided.
	StateUnactivated State = "unactivated"
	// StateInvalid means a key was provided but failed validation.
	StateInvalid State = "invalid"
)

// String implements fmt.Stringer.
func (s State) String() string {
	return string(s)
}

// Event is an immutable record of one validation outcome. Construct with
// NewEvent; never mutate after construction.
type Event struct {
	// ID uniquely identifies the event for reporting and correlation.
	ID string `json:"id"`
	// Library is the namespace name the event belongs to.
	Library string `json:"library"`
	// RawKey is the candidate key exactly as supplied, possibly empty.
	RawKey string `json:"raw_key"`
	// State is the outcome computed at creation time.
	State State `json:"state"`
	// ObservedAt is when the validation ran.
	ObservedAt time.Time `json:"observed_at"`
}

// NewEvent constructs an activation event. The state was already computed by
// the engine; no validation happens here.
func NewEvent(library, rawKey string, state State, observedAt time.Time) Event {
	return Event{
		ID:         uuid.NewString(),
		Library:    library,
		RawKey:     rawKey,
		State:      state,
		ObservedAt: observedAt,
	}
}
