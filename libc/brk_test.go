package libc

import "testing"

func TestSbrkSequence(t *testing.T) {
	r := newTestRuntime(&stubHandler{})
	start := r.M.Layout.End

	// first call initializes the cursor and returns it
	if got := r.Sbrk(16); got != start {
		t.Fatalf("first Sbrk(16) = %#x, want %#x", got, start)
	}
	if got := r.Sbrk(0); got != start+16 {
		t.Fatalf("Sbrk(0) = %#x, want %#x", got, start+16)
	}
	if got := r.Sbrk(100); got != start+16 {
		t.Fatalf("Sbrk(100) = %#x, want %#x", got, start+16)
	}
	// shrink returns the pre-shrink cursor
	if got := r.Sbrk(-100); got != start+116 {
		t.Fatalf("Sbrk(-100) = %#x, want %#x", got, start+116)
	}
	if got := r.Sbrk(0); got != start+16 {
		t.Fatalf("cursor after shrink = %#x, want %#x", got, start+16)
	}
}

func TestSbrkOutOfMemory(t *testing.T) {
	r := newTestRuntime(&stubHandler{})
	size := int32(r.M.Layout.HeapEnd - r.M.Layout.End)

	// exactly to the bound succeeds
	if got := r.Sbrk(size); got != r.M.Layout.End {
		t.Fatalf("Sbrk(size) = %#x, want %#x", got, r.M.Layout.End)
	}
	// one more byte fails, errno set, cursor untouched
	if got := r.Sbrk(1); got != BrkFailed {
		t.Fatalf("Sbrk(1) past bound = %#x, want BrkFailed", got)
	}
	if r.Errno != ENOMEM {
		t.Fatalf("errno = %v, want ENOMEM", r.Errno)
	}
	if got := r.Sbrk(0); got != r.M.Layout.HeapEnd {
		t.Fatalf("cursor moved on failed extend: %#x", got)
	}
	// failure is idempotent
	if got := r.Sbrk(1); got != BrkFailed {
		t.Fatalf("repeat Sbrk(1) = %#x, want BrkFailed", got)
	}
	if got := r.Sbrk(0); got != r.M.Layout.HeapEnd {
		t.Fatalf("cursor moved on repeated failure: %#x", got)
	}
}

func TestSbrkBelowStart(t *testing.T) {
	r := newTestRuntime(&stubHandler{})
	if got := r.Sbrk(8); got != r.M.Layout.End {
		t.Fatalf("Sbrk(8) = %#x", got)
	}
	if got := r.Sbrk(-64); got != BrkFailed {
		t.Fatalf("Sbrk below heap start = %#x, want BrkFailed", got)
	}
	if r.Errno != ENOMEM {
		t.Fatalf("errno = %v, want ENOMEM", r.Errno)
	}
	if got := r.Sbrk(0); got != r.M.Layout.End+8 {
		t.Fatalf("cursor moved on failed shrink: %#x", got)
	}
}

func TestSbrkNeverTraps(t *testing.T) {
	h := &stubHandler{}
	r := newTestRuntime(h)
	r.Sbrk(32)
	r.Sbrk(int32(r.M.Layout.HeapEnd)) // fails
	if len(h.calls) != 0 {
		t.Fatalf("heap manager issued %d traps", len(h.calls))
	}
}
