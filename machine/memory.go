package machine

import "encoding/binary"

// Bus is the memory access surface seen by code running against the machine.
type Bus interface {
	LoadWord(addr Word) Word
	StoreWord(addr Word, v Word)
	LoadByte(addr Word) byte
	StoreByte(addr Word, v byte)
}

// Device is a memory-mapped peripheral claiming part of the address space.
// Accesses inside its range never touch RAM.
type Device interface {
	Contains(addr Word) bool
	Load(addr Word) Word
	Store(addr Word, v Word)
}

// Memory is byte-addressable little-endian RAM plus the mapped devices.
type Memory struct {
	ram  []byte
	devs []Device
}

func NewMemory(size int) *Memory {
	return &Memory{ram: make([]byte, size)}
}

func (m *Memory) Map(d Device) {
	m.devs = append(m.devs, d)
}

func (m *Memory) dev(addr Word) Device {
	for _, d := range m.devs {
		if d.Contains(addr) {
			return d
		}
	}
	return nil
}

func (m *Memory) LoadWord(addr Word) Word {
	if d := m.dev(addr); d != nil {
		return d.Load(addr)
	}
	return Word(binary.LittleEndian.Uint32(m.ram[addr : addr+4]))
}

func (m *Memory) StoreWord(addr Word, v Word) {
	if d := m.dev(addr); d != nil {
		d.Store(addr, v)
		return
	}
	binary.LittleEndian.PutUint32(m.ram[addr:addr+4], uint32(v))
}

// Byte access on a device range goes through the device's word port; the
// UART register file only decodes the low byte anyway.
func (m *Memory) LoadByte(addr Word) byte {
	if d := m.dev(addr); d != nil {
		return byte(d.Load(addr))
	}
	return m.ram[addr]
}

func (m *Memory) StoreByte(addr Word, v byte) {
	if d := m.dev(addr); d != nil {
		d.Store(addr, Word(v))
		return
	}
	m.ram[addr] = v
}

// ReadBytes copies n bytes out of guest memory starting at addr.
func (m *Memory) ReadBytes(addr Word, n int) []byte {
	buf := make([]byte, n)
	for i := range buf {
		buf[i] = m.LoadByte(addr + Word(i))
	}
	return buf
}

// WriteBytes copies buf into guest memory starting at addr.
func (m *Memory) WriteBytes(addr Word, buf []byte) {
	for i, b := range buf {
		m.StoreByte(addr+Word(i), b)
	}
}
