package utils

// KeySet is an insertion-ordered set of strings.
// It is not safe for concurrent use.
type KeySet struct {
	seen  map[string]struct{}
	order []string
}

// NewKeySet creates an empty KeySet.
func NewKeySet() *KeySet {
	return &KeySet{seen: make(map[string]struct{})}
}

// Add returns true if the key was newly added, false if already present.
func (s *KeySet) Add(key string) bool {
	if _, exists := s.seen[key]; exists {
		return false
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, key)
	return true
}

// Keys returns the keys in the order they were first added.
func (s *KeySet) Keys() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}
