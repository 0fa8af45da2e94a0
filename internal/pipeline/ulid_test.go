package pipeline

import (
	"strings"
	"testing"
	"time"
)

func TestNewULID_Format(t *testing.T) {
	id := newBuildID()
	if len(id) != 26 {
		t.Fatalf("expected 26 characters, got %d (%q)", len(id), id)
	}
	for _, r := range id {
		if !strings.ContainsRune(crockford, r) {
			t.Fatalf("unexpected character %q in %q", r, id)
		}
	}
}

func TestNewULID_MonotonicWithinMillisecond(t *testing.T) {
	now := time.Now()
	prev := newULID(now)
	for range 100 {
		next := newULID(now)
		if next <= prev {
			t.Fatalf("expected %q > %q", next, prev)
		}
		prev = next
	}
}

func TestEncodeULID_Timestamp(t *testing.T) {
	var b [16]byte
	if got := encodeULID(b); got != strings.Repeat("0", 26) {
		t.Errorf("zero value encoded as %q", got)
	}

	for i := range b {
		b[i] = 0xff
	}
	if got := encodeULID(b); got != "7"+strings.Repeat("Z", 25) {
		t.Errorf("max value encoded as %q", got)
	}
}
