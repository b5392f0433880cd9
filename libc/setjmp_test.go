package libc

import (
	"testing"

	"github.com/m65832/machine-go/machine"
)

func seedCPU(cpu *machine.CPU) {
	cpu.SP = 0xBF00
	cpu.PC = 0x4010
	for i := machine.R16; i <= machine.R21; i++ {
		cpu.Regs[i] = machine.Word(0x1000 + i)
	}
}

func TestSetjmpReturnsZero(t *testing.T) {
	r := newTestRuntime(&stubHandler{})
	seedCPU(&r.M.CPU)

	var buf JmpBuf
	if got := r.Setjmp(&buf); got != 0 {
		t.Fatalf("Setjmp = %d, want 0", got)
	}
	if buf.SP != 0xBF00 || buf.PC != 0x4010 {
		t.Fatalf("captured SP/PC = %#x/%#x", buf.SP, buf.PC)
	}
	for i, v := range buf.R {
		want := machine.Word(0x1000 + machine.R16 + i)
		if v != want {
			t.Fatalf("captured R%d = %#x, want %#x", machine.R16+i, v, want)
		}
	}
}

func TestLongjmpRestores(t *testing.T) {
	tests := []struct {
		name   string
		val    int32
		wantR0 machine.Word
	}{
		{"zero coerced to one", 0, 1},
		{"nonzero passes through", 5, 5},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := newTestRuntime(&stubHandler{})
			seedCPU(&r.M.CPU)

			var buf JmpBuf
			r.Setjmp(&buf)

			// clobber everything setjmp is supposed to bring back
			cpu := &r.M.CPU
			cpu.SP = 0
			cpu.PC = 0xDEAD
			for i := machine.R16; i <= machine.R21; i++ {
				cpu.Regs[i] = 0
			}
			cpu.Regs[machine.R0] = 0xAAAA

			r.Longjmp(&buf, tc.val)

			if cpu.SP != 0xBF00 || cpu.PC != 0x4010 {
				t.Fatalf("restored SP/PC = %#x/%#x", cpu.SP, cpu.PC)
			}
			for i := machine.R16; i <= machine.R21; i++ {
				want := machine.Word(0x1000 + i)
				if cpu.Regs[i] != want {
					t.Fatalf("restored R%d = %#x, want %#x", i, cpu.Regs[i], want)
				}
			}
			if cpu.Regs[machine.R0] != tc.wantR0 {
				t.Fatalf("R0 = %d, want %d", cpu.Regs[machine.R0], tc.wantR0)
			}
		})
	}
}

// The guest record is an ABI contract: SP, PC, R16..R21, little-endian words.
func TestJmpBufGuestLayout(t *testing.T) {
	r := newTestRuntime(&stubHandler{})
	buf := JmpBuf{
		SP: 0x44332211,
		PC: 0x22222222,
		R:  [6]machine.Word{3, 4, 5, 6, 7, 8},
	}
	const addr = machine.Word(0x6000)
	buf.StoreTo(r.M.Mem, addr)

	if got := r.M.Mem.LoadWord(addr); got != 0x44332211 {
		t.Errorf("word 0 = %#x, want SP", got)
	}
	if got := r.M.Mem.LoadWord(addr + 4); got != 0x22222222 {
		t.Errorf("word 1 = %#x, want PC", got)
	}
	if got := r.M.Mem.LoadByte(addr); got != 0x11 {
		t.Errorf("byte order not little-endian: %#x", got)
	}

	var back JmpBuf
	back.LoadFrom(r.M.Mem, addr)
	if back != buf {
		t.Fatalf("round trip = %+v, want %+v", back, buf)
	}

	if JmpBufSize != 32 {
		t.Fatalf("JmpBufSize = %d, want 32", JmpBufSize)
	}
}
