package libc

import "github.com/m65832/machine-go/machine"

// open flags, newlib numbering
const (
	O_RDONLY int32 = 0
	O_WRONLY int32 = 1
	O_RDWR   int32 = 2
	O_APPEND int32 = 0x0008
	O_CREAT  int32 = 0x0200
	O_TRUNC  int32 = 0x0400
	O_EXCL   int32 = 0x0800
)

const (
	SEEK_SET int32 = 0
	SEEK_CUR int32 = 1
	SEEK_END int32 = 2
)

// Overrides holds optional replacements for the descriptor operations that
// carry a public (overridable) name. A nil field means the trap-backed
// default applies. Only the operations the C layer exported weakly appear
// here; isatty, getpid, kill and exit are not substitutable.
type Overrides struct {
	Write func(fd int32, buf machine.Word, n machine.Word) int32
	Read  func(fd int32, buf machine.Word, n machine.Word) int32
	Open  func(path machine.Word, flags int32, mode int32) int32
	Close func(fd int32) int32
	Lseek func(fd int32, offset int32, whence int32) int32
	Fstat func(fd int32, st machine.Word) int32
}

// write is the reserved entry: one WRITE trap, error band applied. buf is a
// guest address; the handler does the copying.
func (r *Runtime) write(fd int32, buf, n machine.Word) int32 {
	return r.sysret(r.syscall3(SysWrite, machine.Word(fd), buf, n))
}

func (r *Runtime) Write(fd int32, buf, n machine.Word) int32 {
	if f := r.Overrides.Write; f != nil {
		return f(fd, buf, n)
	}
	return r.write(fd, buf, n)
}

func (r *Runtime) read(fd int32, buf, n machine.Word) int32 {
	return r.sysret(r.syscall3(SysRead, machine.Word(fd), buf, n))
}

func (r *Runtime) Read(fd int32, buf, n machine.Word) int32 {
	if f := r.Overrides.Read; f != nil {
		return f(fd, buf, n)
	}
	return r.read(fd, buf, n)
}

// open forwards the variadic mode argument only when flags requests
// creation; absent otherwise it defaults to 0.
func (r *Runtime) open(path machine.Word, flags int32, mode ...int32) int32 {
	var m int32
	if flags&O_CREAT != 0 && len(mode) > 0 {
		m = mode[0]
	}
	return r.sysret(r.syscall3(SysOpen, path, machine.Word(flags), machine.Word(m)))
}

func (r *Runtime) Open(path machine.Word, flags int32, mode ...int32) int32 {
	if f := r.Overrides.Open; f != nil {
		var m int32
		if flags&O_CREAT != 0 && len(mode) > 0 {
			m = mode[0]
		}
		return f(path, flags, m)
	}
	return r.open(path, flags, mode...)
}

func (r *Runtime) close(fd int32) int32 {
	return r.sysret(r.syscall1(SysClose, machine.Word(fd)))
}

func (r *Runtime) Close(fd int32) int32 {
	if f := r.Overrides.Close; f != nil {
		return f(fd)
	}
	return r.close(fd)
}

func (r *Runtime) lseek(fd, offset, whence int32) int32 {
	return r.sysret(r.syscall3(SysLseek, machine.Word(fd), machine.Word(offset), machine.Word(whence)))
}

func (r *Runtime) Lseek(fd, offset, whence int32) int32 {
	if f := r.Overrides.Lseek; f != nil {
		return f(fd, offset, whence)
	}
	return r.lseek(fd, offset, whence)
}

func (r *Runtime) fstat(fd int32, st machine.Word) int32 {
	return r.sysret(r.syscall2(SysFstat, machine.Word(fd), st))
}

func (r *Runtime) Fstat(fd int32, st machine.Word) int32 {
	if f := r.Overrides.Fstat; f != nil {
		return f(fd, st)
	}
	return r.fstat(fd, st)
}

// Isatty is local: the three standard descriptors are the terminal, nothing
// else is. No trap is issued.
func (r *Runtime) Isatty(fd int32) int32 {
	if fd >= 0 && fd <= 2 {
		return 1
	}
	r.Errno = EBADF
	return 0
}

func (r *Runtime) Getpid() int32 {
	return r.sysret(r.syscall0(SysGetpid))
}

// Kill always fails: the target has no process signaling. No trap is issued.
func (r *Runtime) Kill(pid, sig int32) int32 {
	_ = pid
	_ = sig
	r.Errno = EINVAL
	return -1
}

// Exit terminates the process: group-exit first, single-exit if the handler
// somehow returns from that. Exit never returns; if both traps come back the
// process state is broken and we stop hard.
func (r *Runtime) Exit(status int32) {
	r.syscall1(SysExitGroup, machine.Word(status))
	r.syscall1(SysExit, machine.Word(status))
	panic("libc: exit trap returned")
}
