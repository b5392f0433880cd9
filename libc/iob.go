package libc

import "github.com/m65832/machine-go/machine"

// Device is the character callback pair that makes a hardware or syscall
// channel usable as a buffered text stream. Putc echoes the written byte on
// success; both return -1 on failure or end of stream — the stream layer
// only distinguishes success from failure.
type Device interface {
	Putc(c byte) int
	Getc() int
}

// Stream is an open character stream over one device.
type Stream struct {
	dev Device
}

func (s *Stream) Putc(c byte) int { return s.dev.Putc(c) }
func (s *Stream) Getc() int       { return s.dev.Getc() }

// WriteString pushes str through Putc and returns the number of bytes
// written before the first failure.
func (s *Stream) WriteString(str string) int {
	for i := 0; i < len(str); i++ {
		if s.dev.Putc(str[i]) < 0 {
			return i
		}
	}
	return len(str)
}

// BackendKind selects which single stream backend a build links. Exactly one
// is ever present; there is no runtime switching.
type BackendKind int

const (
	BackendUART BackendKind = iota
	BackendSyscall
)

// SetupStdio builds one stream over dev and binds stdin, stdout and stderr
// to that same instance. The aliasing is deliberate: the target has a single
// shared character channel, not three.
func (r *Runtime) SetupStdio(dev Device) {
	s := &Stream{dev: dev}
	r.Stdin = s
	r.Stdout = s
	r.Stderr = s
}

// ConfigureStdio wires the configured backend into the standard streams.
// scratch is the guest bounce-buffer address the syscall backend uses; the
// UART backend ignores it.
func (r *Runtime) ConfigureStdio(kind BackendKind, board machine.Board, scratch machine.Word) {
	switch kind {
	case BackendSyscall:
		r.SetupStdio(&SyscallDevice{rt: r, scratch: scratch})
	default:
		r.SetupStdio(&UARTDevice{Bus: r.M.Mem, Board: board})
	}
}

// SyscallDevice forwards each character as a single-byte read or write trap.
// A failed trap is reported as end-of-stream, not as a POSIX code.
type SyscallDevice struct {
	rt      *Runtime
	scratch machine.Word
}

func (d *SyscallDevice) Putc(c byte) int {
	d.rt.M.Mem.StoreByte(d.scratch, c)
	if d.rt.Write(1, d.scratch, 1) != 1 {
		return -1
	}
	return int(c)
}

func (d *SyscallDevice) Getc() int {
	if d.rt.Read(0, d.scratch, 1) != 1 {
		return -1
	}
	return int(d.rt.M.Mem.LoadByte(d.scratch))
}
