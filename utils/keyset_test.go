package utils

import (
	"reflect"
	"testing"
)

func TestKeySetNoDuplicates(t *testing.T) {
	s := NewKeySet()

	added := s.Add("U100")
	if !added {
		t.Error("first Add should return true")
	}

	added = s.Add("U100")
	if added {
		t.Error("second Add of same key should return false")
	}

	if got := s.Keys(); len(got) != 1 || got[0] != "U100" {
		t.Errorf("Keys: got %v, want [U100]", got)
	}
}

func TestKeySetKeepsFirstSeenOrder(t *testing.T) {
	s := NewKeySet()
	for _, k := range []string{"U300", "U100", "U300", "U200", "U100"} {
		s.Add(k)
	}

	want := []string{"U300", "U100", "U200"}
	if got := s.Keys(); !reflect.DeepEqual(got, want) {
		t.Errorf("Keys: got %v, want %v", got, want)
	}
}

func TestKeySetKeysIsACopy(t *testing.T) {
	s := NewKeySet()
	s.Add("a")
	keys := s.Keys()
	keys[0] = "mutated"

	if s.Keys()[0] != "a" {
		t.Error("mutating the returned slice must not change the set")
	}
}
