// Package fileerr defines the foreign error-code space surfaced by the
// emulated file API and the mapping from native errno values into it.
// Every failure in this module is reported as (or wrapped in) an *Error
// so callers observe one consistent vocabulary regardless of which
// creator or enumerator path failed.
package fileerr

import (
	"errors"
	"fmt"
	"syscall"
)

// Errno is a Win32 system error code. The numeric values are part of the
// emulated surface and must not change.
type Errno uint32

const (
	Success            Errno = 0
	FileNotFound       Errno = 2
	PathNotFound       Errno = 3
	TooManyOpenFiles   Errno = 4
	AccessDenied       Errno = 5
	InvalidHandle      Errno = 6
	NotEnoughMemory    Errno = 8
	NoMoreFiles        Errno = 18
	WriteProtect       Errno = 19
	SharingViolation   Errno = 32
	LockViolation      Errno = 33
	GenFailure         Errno = 31
	NotSupported       Errno = 50
	FileExists         Errno = 80
	InvalidParameter   Errno = 87
	DiskFull           Errno = 112
	CallNotImplemented Errno = 120
	InvalidName        Errno = 123
	DirNotEmpty        Errno = 145
	BadArguments       Errno = 160
	AlreadyExists      Errno = 183
	InitFailed         Errno = 1114
)

func (e Errno) String() string {
	switch e {
	case Success:
		return "success"
	case FileNotFound:
		return "file not found"
	case PathNotFound:
		return "path not found"
	case TooManyOpenFiles:
		return "too many open files"
	case AccessDenied:
		return "access denied"
	case InvalidHandle:
		return "invalid handle"
	case NotEnoughMemory:
		return "not enough memory"
	case NoMoreFiles:
		return "no more files"
	case WriteProtect:
		return "write protected"
	case SharingViolation:
		return "sharing violation"
	case LockViolation:
		return "lock violation"
	case GenFailure:
		return "general failure"
	case NotSupported:
		return "not supported"
	case FileExists:
		return "file exists"
	case InvalidParameter:
		return "invalid parameter"
	case DiskFull:
		return "disk full"
	case CallNotImplemented:
		return "call not implemented"
	case InvalidName:
		return "invalid name"
	case DirNotEmpty:
		return "directory not empty"
	case BadArguments:
		return "bad arguments"
	case AlreadyExists:
		return "already exists"
	case InitFailed:
		return "initialization failed"
	default:
		return fmt.Sprintf("error %d", uint32(e))
	}
}

// Error is a structured failure carrying the foreign code plus the
// operation and path it occurred in.
type Error struct {
	Code Errno
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s [%s]: %s (%d)", e.Op, e.Path, e.Code, uint32(e.Code))
	}
	return fmt.Sprintf("%s: %s (%d)", e.Op, e.Code, uint32(e.Code))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports code equality so errors.Is(err, &Error{Code: ...}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error with an explicit foreign code.
func New(code Errno, op, path string, err error) *Error {
	return &Error{Code: code, Op: op, Path: path, Err: err}
}

// Wrap maps a native error into the foreign code space. If err already
// carries a foreign code it is returned unchanged.
func Wrap(op, path string, err error) *Error {
	var fe *Error
	if errors.As(err, &fe) {
		return fe
	}
	return &Error{Code: mapErrno(err), Op: op, Path: path, Err: err}
}

// CodeOf recovers the foreign code from any error produced by this
// module. Unknown errors map to GenFailure; nil maps to Success.
func CodeOf(err error) Errno {
	if err == nil {
		return Success
	}
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Code
	}
	return mapErrno(err)
}

// mapErrno translates a native errno (possibly wrapped in an
// *os.PathError or similar) into the foreign code space.
func mapErrno(err error) Errno {
	var errno syscall.Errno
	if !errors.As(err, &errno) {
		return GenFailure
	}

	switch errno {
	case syscall.EACCES, syscall.EPERM, syscall.EISDIR:
		return AccessDenied
	case syscall.ENOENT:
		return FileNotFound
	case syscall.ENOTDIR:
		return PathNotFound
	case syscall.EEXIST:
		return AlreadyExists
	case syscall.EINVAL:
		return InvalidParameter
	case syscall.EBADF:
		return InvalidHandle
	case syscall.ENOMEM:
		return NotEnoughMemory
	case syscall.ENOSPC:
		return DiskFull
	case syscall.ENOTEMPTY:
		return DirNotEmpty
	case syscall.EROFS:
		return WriteProtect
	case syscall.EBUSY:
		return SharingViolation
	case syscall.EAGAIN:
		return LockViolation
	case syscall.EMFILE, syscall.ENFILE:
		return TooManyOpenFiles
	case syscall.ENAMETOOLONG:
		return InvalidName
	case syscall.ENOSYS:
		return CallNotImplemented
	default:
		return GenFailure
	}
}
