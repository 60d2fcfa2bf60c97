package heavyhitters

import (
	"fmt"
	"strings"
)

// FormatTopKeys renders the tracker's current top-K set as a
// diagnostic string in "[key: count, key: count, ...]" form, ordered
// the same way SortedTopKeys orders them. Intended for logs and debug
// output, not for a stable machine-readable format.
func (t *Tracker[K]) FormatTopKeys() string {
	keys := t.SortedTopKeys()

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%v: %d", key, t.Estimate(key))
	}

	return "[" + strings.Join(parts, ", ") + "]"
}
