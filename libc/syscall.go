package libc

import (
	"fmt"

	"github.com/m65832/machine-go/machine"
)

// Sysno identifies one entry of the M65832 syscall table. The numbers are an
// ABI contract shared with the trap handler; renumbering either side breaks
// every linked binary.
type Sysno uint32

const (
	SysExit      Sysno = 1
	SysRead      Sysno = 3
	SysWrite     Sysno = 4
	SysOpen      Sysno = 5
	SysClose     Sysno = 6
	SysLseek     Sysno = 19
	SysGetpid    Sysno = 20
	SysFstat     Sysno = 108
	SysExitGroup Sysno = 248
)

var sysnoNames = map[Sysno]string{
	SysExit:      "exit",
	SysRead:      "read",
	SysWrite:     "write",
	SysOpen:      "open",
	SysClose:     "close",
	SysLseek:     "lseek",
	SysGetpid:    "getpid",
	SysFstat:     "fstat",
	SysExitGroup: "exit_group",
}

func (n Sysno) String() string {
	if name, ok := sysnoNames[n]; ok {
		return name
	}
	return fmt.Sprintf("{Sysno %d}", uint32(n))
}

// TrapLen is the size of the TRAP #0 instruction.
const TrapLen = 3

// trapInstr is the fixed TRAP #0 encoding. Architecture-defined, not
// configurable here.
var trapInstr = [TrapLen]byte{0x02, 0x40, 0x00}

// EncodeTrap writes the trap instruction at the start of p and returns its
// length.
func EncodeTrap(p []byte) int {
	return copy(p, trapInstr[:])
}

// IsTrap reports whether p begins with the trap instruction.
func IsTrap(p []byte) bool {
	return len(p) >= TrapLen &&
		p[0] == trapInstr[0] && p[1] == trapInstr[1] && p[2] == trapInstr[2]
}

// Handler is the execution context on the far side of the trap: it reads the
// operation code from R0 and arguments from R1..R3, and leaves the raw result
// in R0. The handoff is synchronous; the handler observes every guest store
// issued before the trap and the guest observes every handler store after it.
type Handler interface {
	Trap(m *machine.Machine)
}

// errnoBand bounds the result range (-errnoBand, 0) that encodes a failure.
// Values at or below -errnoBand are legitimate negative returns and pass
// through untouched.
const errnoBand = 4096

func (r *Runtime) syscall0(n Sysno) int32 {
	r.M.CPU.Regs[machine.R0] = machine.Word(n)
	r.H.Trap(r.M)
	return int32(r.M.CPU.Regs[machine.R0])
}

func (r *Runtime) syscall1(n Sysno, a1 machine.Word) int32 {
	r.M.CPU.Regs[machine.R0] = machine.Word(n)
	r.M.CPU.Regs[machine.R1] = a1
	r.H.Trap(r.M)
	return int32(r.M.CPU.Regs[machine.R0])
}

func (r *Runtime) syscall2(n Sysno, a1, a2 machine.Word) int32 {
	r.M.CPU.Regs[machine.R0] = machine.Word(n)
	r.M.CPU.Regs[machine.R1] = a1
	r.M.CPU.Regs[machine.R2] = a2
	r.H.Trap(r.M)
	return int32(r.M.CPU.Regs[machine.R0])
}

func (r *Runtime) syscall3(n Sysno, a1, a2, a3 machine.Word) int32 {
	r.M.CPU.Regs[machine.R0] = machine.Word(n)
	r.M.CPU.Regs[machine.R1] = a1
	r.M.CPU.Regs[machine.R2] = a2
	r.M.CPU.Regs[machine.R3] = a3
	r.H.Trap(r.M)
	return int32(r.M.CPU.Regs[machine.R0])
}

// sysret applies the error-band convention to a raw trap result: values in
// (-4096, 0) set errno to their magnitude and normalize to -1, everything
// else is the literal return value.
func (r *Runtime) sysret(v int32) int32 {
	if v < 0 && v > -errnoBand {
		r.Errno = Errno(-v)
		return -1
	}
	return v
}
