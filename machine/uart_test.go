package machine

import (
	"bytes"
	"testing"
	"time"
)

func TestUARTTransmit(t *testing.T) {
	var out bytes.Buffer
	u := NewUART(DE25, nil, &out)

	if u.Load(DE25.Status)&DE25.TxReady == 0 {
		t.Fatal("transmitter not ready")
	}
	u.Store(DE25.TxData, 'h')
	u.Store(DE25.TxData, 'i')
	if out.String() != "hi" {
		t.Fatalf("tx output = %q", out.String())
	}
}

func TestUARTReceive(t *testing.T) {
	u := NewUART(Ref, nil, nil)

	if u.Load(Ref.Status)&Ref.RxAvail != 0 {
		t.Fatal("rx-available set with nothing pending")
	}
	u.Push('k')
	if u.Load(Ref.Status)&Ref.RxAvail == 0 {
		t.Fatal("rx-available clear with a byte pending")
	}
	if got := u.Load(Ref.RxData); got != 'k' {
		t.Fatalf("RX data = %#x", got)
	}
	// reading the data register consumed the byte
	if u.Load(Ref.Status)&Ref.RxAvail != 0 {
		t.Fatal("rx-available still set after read")
	}
	if got := u.Load(Ref.RxData); got != 0 {
		t.Fatalf("empty RX data = %#x, want 0", got)
	}
}

func TestUARTPollsReader(t *testing.T) {
	in := bytes.NewBufferString("a")
	u := NewUART(DE25, in, nil)

	deadline := time.After(time.Second)
	for u.Load(DE25.Status)&DE25.RxAvail == 0 {
		select {
		case <-deadline:
			t.Fatal("poll goroutine never delivered the byte")
		default:
			time.Sleep(time.Millisecond)
		}
	}
	if got := u.Load(DE25.RxData); got != 'a' {
		t.Fatalf("RX data = %#x", got)
	}
}

func TestUARTAddressDecode(t *testing.T) {
	u := NewUART(DE25, nil, nil)
	for _, addr := range []Word{DE25.Status, DE25.TxData, DE25.RxData} {
		if !u.Contains(addr) {
			t.Errorf("UART does not claim %#x", addr)
		}
	}
	if u.Contains(DE25.Status - 4) {
		t.Error("UART claims an address outside its register file")
	}
}
