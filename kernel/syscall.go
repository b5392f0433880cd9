package kernel

import (
	"errors"
	"io"
	"os"

	"github.com/m65832/machine-go/libc"
	"github.com/m65832/machine-go/machine"
)

// handlers maps each syscall number to its implementation. Handlers report
// failure as a negated errno, which lands in the guest's error band by
// construction.
var handlers = map[libc.Sysno]func(*Kernel, *machine.Machine, [3]machine.Word) int32{
	libc.SysExit:      sysExit,
	libc.SysExitGroup: sysExit,
	libc.SysRead:      sysRead,
	libc.SysWrite:     sysWrite,
	libc.SysOpen:      sysOpen,
	libc.SysClose:     sysClose,
	libc.SysLseek:     sysLseek,
	libc.SysGetpid:    sysGetpid,
	libc.SysFstat:     sysFstat,
}

func fail(e libc.Errno) int32 {
	return -int32(e)
}

// maxTransfer caps one read/write's host-side buffer. The count register is
// an unvalidated guest word; a short transfer is legal POSIX, a 4 GB host
// allocation is not.
const maxTransfer = 1 << 20

func transferLen(count machine.Word) int {
	if count > maxTransfer {
		return maxTransfer
	}
	return int(count)
}

func sysExit(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	k.status = int32(a[0])
	k.halted = true
	k.log.Debug("guest exited", "status", k.status)
	panic(haltError{status: k.status})
}

// ssize_t write(int fd, const void *buf, size_t count)
func sysWrite(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	f, ok := k.files[int32(a[0])]
	if !ok || f.w == nil {
		return fail(libc.EBADF)
	}
	buf := m.Mem.ReadBytes(a[1], transferLen(a[2]))
	n, err := f.w.Write(buf)
	if err != nil {
		return fail(libc.EIO)
	}
	return int32(n)
}

// ssize_t read(int fd, void *buf, size_t count); 0 means EOF
func sysRead(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	f, ok := k.files[int32(a[0])]
	if !ok || f.r == nil {
		return fail(libc.EBADF)
	}
	buf := make([]byte, transferLen(a[2]))
	n, err := f.r.Read(buf)
	if n > 0 {
		m.Mem.WriteBytes(a[1], buf[:n])
		return int32(n)
	}
	if err == nil || errors.Is(err, io.EOF) {
		return 0
	}
	return fail(libc.EIO)
}

const maxPath = 4096

func sysOpen(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	path, ok := cstring(m, a[0])
	if !ok {
		return fail(libc.ENAMETOOLONG)
	}
	flags := int32(a[1])
	f, err := os.OpenFile(path, hostFlags(flags), os.FileMode(a[2]))
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return fail(libc.ENOENT)
		case os.IsPermission(err):
			return fail(libc.EACCES)
		case os.IsExist(err):
			return fail(libc.EEXIST)
		default:
			return fail(libc.EIO)
		}
	}
	fd := k.nextFD
	k.nextFD++
	k.files[fd] = &file{r: f, w: f, s: f, c: f, host: f}
	return fd
}

// hostFlags translates the guest's newlib flag numbering to the host's.
func hostFlags(flags int32) int {
	out := 0
	switch flags & 3 {
	case libc.O_RDONLY:
		out = os.O_RDONLY
	case libc.O_WRONLY:
		out = os.O_WRONLY
	case libc.O_RDWR:
		out = os.O_RDWR
	}
	if flags&libc.O_APPEND != 0 {
		out |= os.O_APPEND
	}
	if flags&libc.O_CREAT != 0 {
		out |= os.O_CREATE
	}
	if flags&libc.O_TRUNC != 0 {
		out |= os.O_TRUNC
	}
	if flags&libc.O_EXCL != 0 {
		out |= os.O_EXCL
	}
	return out
}

func cstring(m *machine.Machine, addr machine.Word) (string, bool) {
	var buf []byte
	for i := 0; i < maxPath; i++ {
		b := m.Mem.LoadByte(addr + machine.Word(i))
		if b == 0 {
			return string(buf), true
		}
		buf = append(buf, b)
	}
	return "", false
}

func sysClose(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	fd := int32(a[0])
	f, ok := k.files[fd]
	if !ok {
		return fail(libc.EBADF)
	}
	delete(k.files, fd)
	if f.c != nil {
		if err := f.c.Close(); err != nil {
			return fail(libc.EIO)
		}
	}
	return 0
}

func sysLseek(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	f, ok := k.files[int32(a[0])]
	if !ok {
		return fail(libc.EBADF)
	}
	if f.s == nil {
		return fail(libc.ESPIPE)
	}
	whence := int32(a[2])
	if whence < libc.SEEK_SET || whence > libc.SEEK_END {
		return fail(libc.EINVAL)
	}
	// guest whence numbering matches io.Seek*
	pos, err := f.s.Seek(int64(int32(a[1])), int(whence))
	if err != nil {
		return fail(libc.EINVAL)
	}
	return int32(pos)
}

func sysGetpid(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	return k.pid
}

// guest struct stat layout: thirteen little-endian words.
const (
	statDev     = 0
	statIno     = 4
	statMode    = 8
	statNlink   = 12
	statUID     = 16
	statGID     = 20
	statRdev    = 24
	statSize    = 28
	statBlksize = 32
	statBlocks  = 36
	statAtime   = 40
	statMtime   = 44
	statCtime   = 48
	statLen     = 52
)

const (
	sIFCHR = 0x2000
	sIFREG = 0x8000
)

func sysFstat(k *Kernel, m *machine.Machine, a [3]machine.Word) int32 {
	f, ok := k.files[int32(a[0])]
	if !ok {
		return fail(libc.EBADF)
	}
	st := a[1]
	for off := machine.Word(0); off < statLen; off += 4 {
		m.Mem.StoreWord(st+off, 0)
	}
	if f.host != nil {
		fi, err := f.host.Stat()
		if err != nil {
			return fail(libc.EIO)
		}
		m.Mem.StoreWord(st+statMode, sIFREG|machine.Word(fi.Mode().Perm()))
		m.Mem.StoreWord(st+statSize, machine.Word(fi.Size()))
		m.Mem.StoreWord(st+statMtime, machine.Word(fi.ModTime().Unix()))
	} else {
		// character device; standard descriptors land here
		m.Mem.StoreWord(st+statMode, sIFCHR|0o666)
	}
	m.Mem.StoreWord(st+statNlink, 1)
	m.Mem.StoreWord(st+statBlksize, 1024)
	return 0
}
