package region

import "testing"

func TestStore_MissIsUnclassified(t *testing.T) {
	s := NewStore(nil, nil, nil)
	if c := s.Classify(12850); c != Unclassified {
		t.Fatalf("empty store classified 12850 as %v", c)
	}
}

func TestStore_PrecedenceWhenListedTwice(t *testing.T) {
	s := NewStore([]ID{1, 2, 3}, []ID{2, 3}, []ID{3})
	if c := s.Classify(1); c != Locked {
		t.Fatalf("id 1: got %v, want locked", c)
	}
	if c := s.Classify(2); c != Unlockable {
		t.Fatalf("id 2: got %v, want unlockable", c)
	}
	if c := s.Classify(3); c != Blacklisted {
		t.Fatalf("id 3: got %v, want blacklisted", c)
	}
	if s.Len() != 3 {
		t.Fatalf("Len=%d, want 3", s.Len())
	}
}

func TestStore_SetAndClear(t *testing.T) {
	var s Store
	s.Set(12850, Unlockable)
	s.Set(12851, Locked)
	if c := s.Classify(12850); c != Unlockable {
		t.Fatalf("got %v, want unlockable", c)
	}
	s.Set(12850, Unclassified)
	if s.Len() != 1 {
		t.Fatalf("setting Unclassified should delete, Len=%d", s.Len())
	}
	if ids := s.IDs(Locked); len(ids) != 1 || ids[0] != 12851 {
		t.Fatalf("IDs(Locked)=%v", ids)
	}
	s.Clear()
	if s.Len() != 0 {
		t.Fatalf("Clear left %d entries", s.Len())
	}
}
