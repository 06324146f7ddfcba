// Package report renders end-of-process activation summaries from a registry
// snapshot. Everything here works on the snapshot copy, never on registry
// internals, and is cold-path only.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"shareware/internal/license"
)

// Summary is a point-in-time rollup of a registry snapshot.
type Summary struct {
	Activated   []string
	Unactivated []string
	Invalid     []string
	TotalEvents int
	GeneratedAt time.Time
}

// Summarize builds a summary from a snapshot. Names within each state are
// sorted so output is deterministic regardless of map iteration order.
func Summarize(snapshot map[string]license.Entry) Summary {
	s := Summary{GeneratedAt: time.Now()}
	for name, entry := range snapshot {
		s.TotalEvents += len(entry.Events)
		switch entry.CurrentState() {
		case license.StateActivated:
			s.Activated = append(s.Activated, name)
		case license.StateInvalid:
			s.Invalid = append(s.Invalid, name)
		default:
			s.Unactivated = append(s.Unactivated, name)
		}
	}
	sort.Strings(s.Activated)
	sort.Strings(s.Unactivated)
	sort.Strings(s.Invalid)
	return s
}

// Render writes a human-readable activation report to w.
func Render(w io.Writer, snapshot map[string]license.Entry) error {
	s := Summarize(snapshot)

	var b strings.Builder
	b.WriteString("shareware activation report\n")
	b.WriteString(strings.Repeat("-", 40) + "\n")
	writeSection(&b, "activated", s.Activated)
	writeSection(&b, "unactivated", s.Unactivated)
	writeSection(&b, "invalid", s.Invalid)
	fmt.Fprintf(&b, "namespaces: %d, events: %d\n",
		len(s.Activated)+len(s.Unactivated)+len(s.Invalid), s.TotalEvents)

	_, err := io.WriteString(w, b.String())
	return err
}

func writeSection(b *strings.Builder, label string, names []string) {
	fmt.Fprintf(b, "%-12s (%d)\n", label, len(names))
	for _, name := range names {
		fmt.Fprintf(b, "  %s\n", name)
	}
}
