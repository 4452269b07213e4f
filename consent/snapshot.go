package consent

// Snapshot maps consent keys to their current values. Keys whose
// representation cannot be resolved are absent; a present key always carries
// a non-empty value.
type Snapshot map[Key]Value

// Put sets the value for a key. An empty value means the representation is
// absent and removes the key, preserving the absence-by-removal invariant.
func (s Snapshot) Put(key Key, value Value) {
	if value == "" {
		delete(s, key)
		return
	}
	s[key] = value
}

// Clone returns an independent copy. Used both for the external read-only
// view and for capturing a baseline before a reset.
func (s Snapshot) Clone() Snapshot {
	c := make(Snapshot, len(s))
	for k, v := range s {
		c[k] = v
	}
	return c
}

// Clear removes every entry in place, keeping the map identity stable for
// concurrent readers of the external copy path.
func (s Snapshot) Clear() {
	for k := range s {
		delete(s, k)
	}
}
