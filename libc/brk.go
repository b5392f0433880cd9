package libc

import "github.com/m65832/machine-go/machine"

// BrkFailed is the sbrk failure value, (void *)-1 in the C contract.
const BrkFailed = ^machine.Word(0)

// Sbrk extends the heap by incr bytes and returns the previous break. The
// first call initializes the cursor to the linker's end-of-static-data
// symbol. A request that would move the cursor outside the heap bounds fails
// with ENOMEM and leaves the cursor untouched. incr may be zero or negative;
// no alignment is performed, callers own that.
func (r *Runtime) Sbrk(incr int32) machine.Word {
	if r.brk == 0 {
		r.brk = r.M.Layout.End
	}
	next := int64(r.brk) + int64(incr)
	if next > int64(r.M.Layout.HeapEnd) || next < int64(r.M.Layout.End) {
		r.Errno = ENOMEM
		return BrkFailed
	}
	prev := r.brk
	r.brk = machine.Word(next)
	return prev
}
