package machine

// DE25 board: UART block at 0x10006000, registers at fixed offsets from the
// base. RX-available is bit 0 and TX-ready bit 1 on this board.
var DE25 = Board{
	Name:    "de25",
	Status:  0x10006004,
	TxData:  0x10006010,
	RxData:  0x10006014,
	RxAvail: 1 << 0,
	TxReady: 1 << 1,
}
