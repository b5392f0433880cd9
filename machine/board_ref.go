package machine

// Reference board: UART registers packed at 0x00FFF100. Note the status bits
// are swapped relative to DE25: TX-ready is bit 0 here, RX-available bit 1.
var Ref = Board{
	Name:    "ref",
	Status:  0x00FFF100,
	TxData:  0x00FFF104,
	RxData:  0x00FFF108,
	TxReady: 1 << 0,
	RxAvail: 1 << 1,
}
