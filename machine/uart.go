package machine

import (
	"io"
	"time"
)

// UART emulates the board's three-register UART. TX stores forward to out,
// RX loads drain a one-byte buffer fed from in by a polling goroutine.
// The transmitter is always ready; the receive-available bit tracks whether
// a byte is waiting, and reading the data register consumes it.
type UART struct {
	board Board
	out   io.Writer
	rx    chan byte
	cur   byte
	have  bool
}

func NewUART(board Board, in io.Reader, out io.Writer) *UART {
	u := &UART{
		board: board,
		out:   out,
		rx:    make(chan byte, 1),
	}
	if in != nil {
		go u.poll(in)
	}
	return u
}

func (u *UART) poll(in io.Reader) {
	ticker := time.NewTicker(5 * time.Millisecond)
	for range ticker.C {
		buf := make([]byte, 1)
		n, err := in.Read(buf)
		if err != nil || n == 0 {
			continue
		}
		u.rx <- buf[0]
	}
}

// Push hands the UART a received byte directly, bypassing the poll
// goroutine. Used when no reader is attached.
func (u *UART) Push(b byte) {
	u.rx <- b
}

func (u *UART) Contains(addr Word) bool {
	return addr == u.board.Status || addr == u.board.TxData || addr == u.board.RxData
}

func (u *UART) Load(addr Word) Word {
	switch addr {
	case u.board.Status:
		s := u.board.TxReady
		if u.pending() {
			s |= u.board.RxAvail
		}
		return s
	case u.board.RxData:
		if u.pending() {
			u.have = false
			return Word(u.cur)
		}
		return 0
	}
	return 0
}

func (u *UART) Store(addr Word, v Word) {
	if addr == u.board.TxData && u.out != nil {
		u.out.Write([]byte{byte(v)})
	}
	// status and RX registers ignore stores
}

func (u *UART) pending() bool {
	if !u.have {
		select {
		case b := <-u.rx:
			u.cur, u.have = b, true
		default:
		}
	}
	return u.have
}
