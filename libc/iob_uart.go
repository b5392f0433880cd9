package libc

import "github.com/m65832/machine-go/machine"

// UARTDevice talks straight to the board's memory-mapped UART, busy-waiting
// on the status register before each access. The wait is unbounded: a stuck
// peripheral blocks the caller indefinitely, and nothing on this target
// could cancel it anyway.
type UARTDevice struct {
	Bus   machine.Bus
	Board machine.Board
}

func (d *UARTDevice) Putc(c byte) int {
	for d.Bus.LoadWord(d.Board.Status)&d.Board.TxReady == 0 {
	}
	d.Bus.StoreWord(d.Board.TxData, machine.Word(c))
	return int(c)
}

func (d *UARTDevice) Getc() int {
	for d.Bus.LoadWord(d.Board.Status)&d.Board.RxAvail == 0 {
	}
	return int(d.Bus.LoadWord(d.Board.RxData) & 0xFF)
}
