package game

import (
	"fmt"
	"testing"
)

func TestEventLog_Recent(t *testing.T) {
	l := NewEventLog()
	if len(l.Recent()) != 0 {
		t.Fatal("new log should be empty")
	}
	l.Add(1, "a")
	l.Add(2, "b")
	got := l.Recent()
	if len(got) != 2 || got[0].Message != "a" || got[1].Message != "b" {
		t.Fatalf("Recent()=%v", got)
	}
}

func TestEventLog_Wraps(t *testing.T) {
	l := NewEventLog()
	for i := 0; i < logMaxEntries+5; i++ {
		l.Add(i, fmt.Sprintf("m%d", i))
	}
	if l.Len() != logMaxEntries {
		t.Fatalf("Len=%d, want %d", l.Len(), logMaxEntries)
	}
	got := l.Recent()
	if got[0].Tick != 5 {
		t.Fatalf("oldest tick %d, want 5", got[0].Tick)
	}
	if got[len(got)-1].Tick != logMaxEntries+4 {
		t.Fatalf("newest tick %d, want %d", got[len(got)-1].Tick, logMaxEntries+4)
	}
}
