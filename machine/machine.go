package machine

// Word is the natural register and bus width of the M65832.
type Word uint32

const NumRegs = 32

// argument/result registers of the trap convention
const (
	R0 = iota
	R1
	R2
	R3
)

// callee-saved registers, preserved across calls and captured by setjmp
const (
	R16 = 16 + iota
	R17
	R18
	R19
	R20
	R21
)

// CPU holds the register state of one M65832 core. PC and SP live outside
// the general file, matching the architecture's own description of itself.
type CPU struct {
	Regs [NumRegs]Word
	PC   Word
	SP   Word
}

// Layout carries the placement symbols the link step provides for any build:
// End is the first byte past static data (start of the heap), HeapEnd the
// exclusive upper bound. Neither is ever auto-detected.
type Layout struct {
	End     Word
	HeapEnd Word
}

type Machine struct {
	CPU    CPU
	Mem    *Memory
	Layout Layout
}

func New(memSize int, layout Layout) *Machine {
	return &Machine{
		Mem:    NewMemory(memSize),
		Layout: layout,
	}
}
