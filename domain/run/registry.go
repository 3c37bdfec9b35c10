package run

import "strings"

// MethodEntry pairs a human-readable augmentation method label with the
// filename prefix that encodes it.
type MethodEntry struct {
	Label  string `json:"label"`
	Prefix string `json:"prefix"`
}

// MethodRegistry is an ordered list of method entries. Order is load-bearing:
// prefixes are tested in registration order and the first match wins, so an
// entry whose prefix is a substring of another (e.g. "expUA" vs "expUAua")
// must be registered after the more specific one.
type MethodRegistry struct {
	entries []MethodEntry
}

// NewMethodRegistry creates a registry from entries in the given order.
func NewMethodRegistry(entries ...MethodEntry) MethodRegistry {
	copied := make([]MethodEntry, len(entries))
	copy(copied, entries)
	return MethodRegistry{entries: copied}
}

// DefaultRegistry returns the augmentation methods under study and their
// checkpoint filename prefixes.
func DefaultRegistry() MethodRegistry {
	return NewMethodRegistry(
		MethodEntry{Label: "FAA (RA)", Prefix: "expFAA"},
		MethodEntry{Label: "UA (UA)", Prefix: "expUAua"},
		MethodEntry{Label: "UA (RA)", Prefix: "expUAra"},
		MethodEntry{Label: "TA (RA)", Prefix: "expTAra"},
		MethodEntry{Label: "TA (Wide)", Prefix: "expTAwide"},
	)
}

// Classify maps a checkpoint path to its method label. Directory components
// (both separator flavors) are stripped first so callers may pass full paths.
// Returns ok=false when no prefix matches; an unclassified checkpoint is a
// valid state, not an error.
func (r MethodRegistry) Classify(path string) (string, bool) {
	name := BaseName(path)
	for _, entry := range r.entries {
		if strings.HasPrefix(name, entry.Prefix) {
			return entry.Label, true
		}
	}
	return "", false
}

// Labels returns the method labels in registration order.
func (r MethodRegistry) Labels() []string {
	labels := make([]string, len(r.entries))
	for i, entry := range r.entries {
		labels[i] = entry.Label
	}
	return labels
}

// Len returns the number of registered methods.
func (r MethodRegistry) Len() int {
	return len(r.entries)
}

// BaseName strips leading directory components from a checkpoint path,
// accepting both forward- and back-slash separators.
func BaseName(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		path = path[idx+1:]
	}
	if idx := strings.LastIndex(path, "\\"); idx >= 0 {
		path = path[idx+1:]
	}
	return path
}
