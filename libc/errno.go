package libc

import "fmt"

// Errno is a POSIX-style error code as it appears in the process-wide errno
// slot. Only the codes this layer produces or forwards are named.
type Errno int32

const (
	EPERM        Errno = 1
	ENOENT       Errno = 2
	EINTR        Errno = 4
	EIO          Errno = 5
	EBADF        Errno = 9
	EAGAIN       Errno = 11
	ENOMEM       Errno = 12
	EACCES       Errno = 13
	EFAULT       Errno = 14
	EEXIST       Errno = 17
	EINVAL       Errno = 22
	ENOSPC       Errno = 28
	ESPIPE       Errno = 29
	ENAMETOOLONG Errno = 36
	ENOSYS       Errno = 38
)

var errnoNames = map[Errno]string{
	EPERM:        "EPERM",
	ENOENT:       "ENOENT",
	EINTR:        "EINTR",
	EIO:          "EIO",
	EBADF:        "EBADF",
	EAGAIN:       "EAGAIN",
	ENOMEM:       "ENOMEM",
	EACCES:       "EACCES",
	EFAULT:       "EFAULT",
	EEXIST:       "EEXIST",
	EINVAL:       "EINVAL",
	ENOSPC:       "ENOSPC",
	ESPIPE:       "ESPIPE",
	ENAMETOOLONG: "ENAMETOOLONG",
	ENOSYS:       "ENOSYS",
}

func (e Errno) String() string {
	if name, ok := errnoNames[e]; ok {
		return name
	}
	return fmt.Sprintf("{Errno %d}", int32(e))
}
