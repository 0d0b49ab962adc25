package util

import "testing"

func TestParseClock(t *testing.T) {
	h, m, err := ParseClock("10:30")
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if h != 10 || m != 30 {
		t.Fatalf("got %d:%d", h, m)
	}
	if _, _, err := ParseClock("25:99"); err == nil {
		t.Fatalf("expected error")
	}
}
