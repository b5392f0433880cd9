package machine

// Board describes one target's UART register map: the three register
// addresses and the status bit masks. The bit assignment is board-specific
// and must match the real register file bit-for-bit; the shipped boards
// deliberately disagree about which bit means what, so the masks travel with
// the board and are never unified.
type Board struct {
	Name    string
	Status  Word
	TxData  Word
	RxData  Word
	TxReady Word // status mask: transmitter can accept a byte
	RxAvail Word // status mask: a received byte is waiting
}
