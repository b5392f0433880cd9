package libc

import "github.com/m65832/machine-go/machine"

// JmpBufSize is the guest footprint of a jump buffer: 8 words.
const JmpBufSize = 32

// JmpBuf captures enough CPU state to resume execution at a prior call site:
// the stack pointer, the return address and the callee-saved registers
// R16..R21. The field order is the ABI layout of the guest record; anything
// inspecting the buffer in memory sees exactly this sequence.
type JmpBuf struct {
	SP machine.Word
	PC machine.Word
	R  [6]machine.Word // R16..R21
}

// Setjmp records the current stack pointer, return address and callee-saved
// registers into buf and returns 0, the value the capture site sees on the
// first pass.
func (r *Runtime) Setjmp(buf *JmpBuf) int32 {
	cpu := &r.M.CPU
	buf.SP = cpu.SP
	buf.PC = cpu.PC
	copy(buf.R[:], cpu.Regs[machine.R16:machine.R21+1])
	return 0
}

// Longjmp reinstates the state captured in buf, making the capture site
// return again with val in R0 — coerced to 1 when val is 0, since 0 is
// reserved for the first pass. Control never comes back to the path that
// called Longjmp: the guest resumes at the captured return address when the
// machine continues.
//
// Restoring a buffer whose owning frame has already returned, or restoring
// the same buffer twice, is undefined behavior. It is not detected, and the
// resulting jump lands wherever the stale state points — the process is
// unrecoverable after that.
func (r *Runtime) Longjmp(buf *JmpBuf, val int32) {
	if val == 0 {
		val = 1
	}
	cpu := &r.M.CPU
	cpu.SP = buf.SP
	cpu.PC = buf.PC
	copy(cpu.Regs[machine.R16:machine.R21+1], buf.R[:])
	cpu.Regs[machine.R0] = machine.Word(val)
}

// StoreTo writes the buffer's guest representation at addr: SP, PC, then
// R16..R21, each a little-endian word.
func (b *JmpBuf) StoreTo(bus machine.Bus, addr machine.Word) {
	bus.StoreWord(addr, b.SP)
	bus.StoreWord(addr+4, b.PC)
	for i, v := range b.R {
		bus.StoreWord(addr+8+machine.Word(4*i), v)
	}
}

// LoadFrom reads the guest representation back from addr.
func (b *JmpBuf) LoadFrom(bus machine.Bus, addr machine.Word) {
	b.SP = bus.LoadWord(addr)
	b.PC = bus.LoadWord(addr + 4)
	for i := range b.R {
		b.R[i] = bus.LoadWord(addr + 8 + machine.Word(4*i))
	}
}
