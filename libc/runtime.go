// Package libc is the machine-dependent support layer of the M65832 C
// library: the trap ABI, the sbrk heap, the POSIX descriptor shim, the stdio
// character-device backends and setjmp/longjmp, all operating on an emulated
// machine. The target is single-threaded and non-preemptive; all state here
// is process-wide and unlocked on purpose.
package libc

import "github.com/m65832/machine-go/machine"

// Runtime is the per-process state of the support layer: the machine it runs
// against, the trap handler behind it, the errno slot, the heap cursor and
// the standard streams.
type Runtime struct {
	M *machine.Machine
	H Handler

	// Errno is the process-wide last-error slot of the syscall return
	// convention.
	Errno Errno

	// Overrides lets the hosting library substitute individual descriptor
	// operations without a link conflict, like a strong symbol shadowing the
	// weak default.
	Overrides Overrides

	brk machine.Word

	// The three standard streams alias one shared stream object; interleaved
	// buffering behavior depends on that and callers may rely on it.
	Stdin  *Stream
	Stdout *Stream
	Stderr *Stream
}

func New(m *machine.Machine, h Handler) *Runtime {
	return &Runtime{M: m, H: h}
}
