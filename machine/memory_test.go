package machine

import "testing"

func TestMemoryWordAccess(t *testing.T) {
	m := NewMemory(1 << 12)
	m.StoreWord(0x100, 0xCAFEBABE)
	if got := m.LoadWord(0x100); got != 0xCAFEBABE {
		t.Fatalf("LoadWord = %#x", got)
	}
	// little-endian in RAM
	if got := m.LoadByte(0x100); got != 0xBE {
		t.Fatalf("low byte = %#x, want 0xBE", got)
	}
	if got := m.LoadByte(0x103); got != 0xCA {
		t.Fatalf("high byte = %#x, want 0xCA", got)
	}
}

func TestMemoryByteHelpers(t *testing.T) {
	m := NewMemory(1 << 12)
	m.WriteBytes(0x200, []byte("ping"))
	if got := string(m.ReadBytes(0x200, 4)); got != "ping" {
		t.Fatalf("ReadBytes = %q", got)
	}
}

// recordDev claims one word of address space and records traffic.
type recordDev struct {
	addr   Word
	last   Word
	loads  int
	stores int
}

func (d *recordDev) Contains(addr Word) bool { return addr == d.addr }

func (d *recordDev) Load(addr Word) Word { d.loads++; return d.last }

func (d *recordDev) Store(addr Word, v Word) { d.stores++; d.last = v }

func TestMemoryDeviceDispatch(t *testing.T) {
	m := NewMemory(1 << 12)
	d := &recordDev{addr: 0x400}
	m.Map(d)

	m.StoreWord(0x400, 7)
	if got := m.LoadWord(0x400); got != 7 {
		t.Fatalf("device load = %d", got)
	}
	if d.loads != 1 || d.stores != 1 {
		t.Fatalf("device saw %d loads, %d stores", d.loads, d.stores)
	}
	// device range never hits RAM
	if got := m.ram[0x400]; got != 0 {
		t.Fatalf("RAM touched behind device: %#x", got)
	}
	// neighboring addresses still go to RAM
	m.StoreWord(0x404, 9)
	if got := m.LoadWord(0x404); got != 9 {
		t.Fatalf("RAM next to device = %d", got)
	}
}
