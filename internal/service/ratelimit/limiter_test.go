package ratelimit

import "testing"

func TestAllowConsumesBurst(t *testing.T) {
	l := New()
	for i := 0; i < 3; i++ {
		if !l.Allow("k", 3, 0) {
			t.Fatalf("call %d should be within the burst", i+1)
		}
	}
	if l.Allow("k", 3, 0) {
		t.Fatal("burst exhausted, call should be denied")
	}
}

func TestAllowKeysAreIndependent(t *testing.T) {
	l := New()
	if !l.Allow("a", 1, 0) {
		t.Fatal("first call for a should pass")
	}
	if l.Allow("a", 1, 0) {
		t.Fatal("a is exhausted")
	}
	if !l.Allow("b", 1, 0) {
		t.Fatal("b has its own bucket")
	}
}
