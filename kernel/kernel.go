// Package kernel is the host side of the TRAP #0 boundary: a syscall-table
// trap handler that services the M65832 runtime layer against host files.
package kernel

import (
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"

	"github.com/m65832/machine-go/libc"
	"github.com/m65832/machine-go/machine"
)

// file is one descriptor's host endpoint. Standard descriptors usually carry
// only a reader or writer; descriptors minted by open carry the os.File for
// seeking and stat.
type file struct {
	r    io.Reader
	w    io.Writer
	s    io.Seeker
	c    io.Closer
	host *os.File
}

type Kernel struct {
	log    hclog.Logger
	files  map[int32]*file
	nextFD int32
	pid    int32

	status int32
	halted bool
}

func New(log hclog.Logger) *Kernel {
	if log == nil {
		log = hclog.NewNullLogger()
	}
	return &Kernel{
		log: log,
		files: map[int32]*file{
			0: {r: os.Stdin},
			1: {w: os.Stdout},
			2: {w: os.Stderr},
		},
		nextFD: 3,
		pid:    1,
	}
}

// Bind replaces a descriptor's host endpoint. r and w may be nil for a
// one-directional channel.
func (k *Kernel) Bind(fd int32, r io.Reader, w io.Writer) {
	f := &file{r: r, w: w}
	if s, ok := r.(io.Seeker); ok {
		f.s = s
	} else if s, ok := w.(io.Seeker); ok {
		f.s = s
	}
	k.files[fd] = f
}

// Halted reports whether an exit syscall has been serviced and with what
// status.
func (k *Kernel) Halted() (int32, bool) {
	return k.status, k.halted
}

// haltError is the unwind sentinel an exit syscall throws; Run absorbs it.
type haltError struct {
	status int32
}

func (e haltError) Error() string {
	return fmt.Sprintf("halted with status %d", e.status)
}

// Run invokes fn, absorbing the unwind from an exit syscall serviced inside
// it. halted is false when fn finished without the guest exiting.
func (k *Kernel) Run(fn func()) (status int32, halted bool) {
	defer func() {
		if r := recover(); r != nil {
			h, ok := r.(haltError)
			if !ok {
				panic(r)
			}
			status, halted = h.status, true
		}
	}()
	fn()
	return k.status, k.halted
}

// Trap implements libc.Handler: dispatch on R0 through the syscall table,
// leave the raw result in R0. Unknown operations land in the error band as
// -ENOSYS; argument validation beyond that belongs to individual handlers.
func (k *Kernel) Trap(m *machine.Machine) {
	num := libc.Sysno(m.CPU.Regs[machine.R0])
	args := [3]machine.Word{
		m.CPU.Regs[machine.R1],
		m.CPU.Regs[machine.R2],
		m.CPU.Regs[machine.R3],
	}
	h, ok := handlers[num]
	if !ok {
		k.log.Trace("unknown syscall", "num", uint32(num))
		m.CPU.Regs[machine.R0] = machine.Word(fail(libc.ENOSYS))
		return
	}
	ret := h(k, m, args)
	k.log.Trace("syscall", "op", num.String(),
		"a1", uint32(args[0]), "a2", uint32(args[1]), "a3", uint32(args[2]),
		"ret", ret)
	m.CPU.Regs[machine.R0] = machine.Word(ret)
}
