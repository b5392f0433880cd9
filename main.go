package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/hashicorp/go-hclog"
	"github.com/pkg/term/termios"
	"golang.org/x/sys/unix"
	"golang.org/x/term"

	"github.com/m65832/machine-go/kernel"
	"github.com/m65832/machine-go/libc"
	"github.com/m65832/machine-go/machine"
)

const (
	memorySize = 1 << 24 // 16 MB of guest RAM

	// link map of the demo image
	heapStart = 0x00100000
	heapEnd   = 0x00400000
	scratch   = 0x00000FFC // bounce byte for the syscall stdio backend
)

var (
	originalTerminalConfig unix.Termios
	rawMode                bool
)

func main() {
	boardName := flag.String("board", "de25", "target board (de25|ref)")
	stdio := flag.String("stdio", "uart", "stdio backend (uart|sys)")
	verbose := flag.Bool("v", false, "trace syscalls")
	flag.Parse()

	level := hclog.Warn
	if *verbose {
		level = hclog.Trace
	}
	logger := hclog.New(&hclog.LoggerOptions{
		Name:   "m65832",
		Level:  level,
		Output: os.Stderr,
	})

	var board machine.Board
	switch *boardName {
	case "de25":
		board = machine.DE25
	case "ref":
		board = machine.Ref
	default:
		fmt.Fprintf(os.Stderr, "unknown board %q\n", *boardName)
		os.Exit(2)
	}

	var backend libc.BackendKind
	switch *stdio {
	case "uart":
		backend = libc.BackendUART
	case "sys":
		backend = libc.BackendSyscall
	default:
		fmt.Fprintf(os.Stderr, "unknown stdio backend %q\n", *stdio)
		os.Exit(2)
	}

	m := machine.New(memorySize, machine.Layout{End: heapStart, HeapEnd: heapEnd})
	// With the syscall backend the kernel's fd 0 owns stdin; giving the UART
	// poller a reader too would steal bytes the read traps never see.
	var uartIn io.Reader
	if backend == libc.BackendUART {
		uartIn = os.Stdin
	}
	m.Mem.Map(machine.NewUART(board, uartIn, os.Stdout))

	k := kernel.New(logger.Named("kernel"))
	rt := libc.New(m, k)
	rt.ConfigureStdio(backend, board, scratch)

	if term.IsTerminal(int(os.Stdin.Fd())) {
		enableRawMode()
		defer disableRawMode()
	}

	status, _ := k.Run(func() {
		console(rt, board, backend)
	})
	disableRawMode()
	os.Exit(int(status))
}

// console is the smoke loop: banner out through the shared stdout stream,
// then echo until ^D or ^C.
func console(rt *libc.Runtime, board machine.Board, backend libc.BackendKind) {
	name := "uart"
	if backend == libc.BackendSyscall {
		name = "sys"
	}
	rt.Stdout.WriteString(fmt.Sprintf("m65832 console: board=%s stdio=%s (^D quits)\r\n", board.Name, name))

	for {
		c := rt.Stdin.Getc()
		if c < 0 || c == 0x04 || c == 0x03 {
			break
		}
		rt.Stdout.Putc(byte(c))
		if c == '\r' {
			rt.Stdout.Putc('\n')
		}
	}
	rt.Stdout.WriteString("\r\n")
	rt.Exit(0)
}

// this configures the terminal to run in raw mode
func enableRawMode() {
	termios.Tcgetattr(os.Stdin.Fd(), &originalTerminalConfig)
	newTermios := originalTerminalConfig
	newTermios.Lflag &^= unix.ICANON | unix.ECHO
	termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &newTermios)
	rawMode = true
}

func disableRawMode() {
	if !rawMode {
		return
	}
	termios.Tcsetattr(os.Stdin.Fd(), termios.TCSANOW, &originalTerminalConfig)
	rawMode = false
}
