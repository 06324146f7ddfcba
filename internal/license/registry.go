package license

import (
	"crypto/md5"
	"sync"
)

// Entry is the append-only aggregate of all activation events seen for one
// namespace name. The registry exclusively owns its entries; callers only
// ever see copies.
type Entry struct {
	// Name is the namespace name, unique within a registry.
	Name string `json:"name"`
	// Events holds every validation outcome in arrival order.
	Events []Event `json:"events"`

	// digest caches the AES key derivation of Name. The name is immutable
	// for the entry's lifetime, so computing it once is safe.
	digest [md5.Size]byte
}

func newEntry(name string) *Entry {
	return &Entry{
		Name:   name,
		digest: md5.Sum([]byte(name)),
	}
}

// record appends an event. This is the only mutation an entry permits and is
// always called under the registry lock.
func (e *Entry) record(ev Event) {
	e.Events = append(e.Events, ev)
}

// CurrentState returns the state of the most recently recorded event.
// Last-write-wins: a namespace may be declared many times in one process and
// the latest declaration reflects the caller's latest intent. An entry with
// no events reports Unactivated.
func (e *Entry) CurrentState() State {
	if len(e.Events) == 0 {
		return StateUnactivated
	}
	return e.Events[len(e.Events)-1].State
}

// Digest returns the cached MD5 digest of the entry name.
func (e *Entry) Digest() [md5.Size]byte {
	return e.digest
}

// clone deep-copies the entry so snapshot holders cannot reach registry
// internals.
func (e *Entry) clone() Entry {
	out := Entry{Name: e.Name, digest: e.digest}
	out.Events = make([]Event, len(e.Events))
	copy(out.Events, e.Events)
	return out
}

// Registry is the process-wide concurrent map from namespace name to entry.
// One mutex guards every operation; the add-or-update path is a single
// critical section so concurrent declarations of the same namespace can
// never drop events. Insertion order is preserved for deterministic
// reporting.
type Registry struct {
	mu      sync.Mutex
	entries map[string]*Entry
	order   []string
}

// NewRegistry returns an empty registry. A single process-wide instance is
// normally wired at startup; tests construct their own.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]*Entry)}
}

// AddOrUpdate locates or creates the entry for name and records ev, all
// under one lock acquisition. Nothing here suspends or performs I/O; the
// critical section is amortized O(1).
func (r *Registry) AddOrUpdate(name string, ev Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	entry, ok := r.entries[name]
	if !ok {
		entry = newEntry(name)
		r.entries[name] = entry
		r.order = append(r.order, name)
	}
	entry.record(ev)
}

// Len reports the number of entries.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Snapshot returns an independent copy of the registry contents. Cold path:
// O(N) in entries and events, intended for end-of-process reporting, never
// for the per-event hot path.
func (r *Registry) Snapshot() map[string]Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make(map[string]Entry, len(r.entries))
	for name, entry := range r.entries {
		out[name] = entry.clone()
	}
	return out
}

// Names returns all namespace names in insertion order.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// ActivatedNames returns, in insertion order, the namespaces whose current
// state is Activated. Cold path.
func (r *Registry) ActivatedNames() []string {
	return r.namesInState(StateActivated)
}

// UnactivatedNames returns, in insertion order, the namespaces whose current
// state is Unactivated. Cold path.
func (r *Registry) UnactivatedNames() []string {
	return r.namesInState(StateUnactivated)
}

// InvalidNames returns, in insertion order, the namespaces whose current
// state is Invalid. Cold path.
func (r *Registry) InvalidNames() []string {
	return r.namesInState(StateInvalid)
}

func (r *Registry) namesInState(s State) []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []string
	for _, name := range r.order {
		if r.entries[name].CurrentState() == s {
			out = append(out, name)
		}
	}
	return out
}

// AllEvents returns every recorded event, grouped by entry in insertion
// order. Cold path.
func (r *Registry) AllEvents() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []Event
	for _, name := range r.order {
		out = append(out, r.entries[name].Events...)
	}
	return out
}

// Reset clears all entries. Intended only for test isolation between
// independent runs; runtime logic never calls it.
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = make(map[string]*Entry)
	r.order = nil
}
