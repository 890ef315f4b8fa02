//go:build !windows
// +build !windows

package localfile

import (
	"io"
	"os"
	"syscall"

	"golang.org/x/sys/unix"

	"winfile/internal/fattr"
	"winfile/internal/fileerr"
	"winfile/internal/handle"
)

// LockFile places a POSIX byte-range lock. An exclusive request maps to a
// write lock, otherwise a read lock; without the fail-immediately flag
// the call blocks until the range is available.
func (h *File) LockFile(offset, length uint64, flags handle.LockFlags) error {
	lk := unix.Flock_t{
		Type:   unix.F_RDLCK,
		Whence: io.SeekStart,
		Start:  int64(offset),
		Len:    int64(length),
	}
	if flags&handle.LockExclusive != 0 {
		lk.Type = unix.F_WRLCK
	}
	cmd := unix.F_SETLKW
	if flags&handle.LockfailImmediately != 0 {
		cmd = unix.F_SETLK
	}
	if err := unix.FcntlFlock(h.f.Fd(), cmd, &lk); err != nil {
		return fileerr.Wrap("LockFile", h.f.Name(), err)
	}
	return nil
}

func (h *File) UnlockFile(offset, length uint64) error {
	lk := unix.Flock_t{
		Type:   unix.F_UNLCK,
		Whence: io.SeekStart,
		Start:  int64(offset),
		Len:    int64(length),
	}
	if err := unix.FcntlFlock(h.f.Fd(), unix.F_SETLK, &lk); err != nil {
		return fileerr.Wrap("UnlockFile", h.f.Name(), err)
	}
	return nil
}

// SetFileTime updates access and write times. POSIX cannot set a
// creation time, so that argument is accepted and ignored; the loss is
// inherent to the platform, not silently repaired. Nil arguments keep
// the current value.
func (h *File) SetFileTime(creation, lastAccess, lastWrite *fattr.Filetime) error {
	_ = creation

	if lastAccess == nil && lastWrite == nil {
		return nil
	}

	fi, err := h.f.Stat()
	if err != nil {
		return fileerr.Wrap("SetFileTime", h.f.Name(), err)
	}
	atime, _ := fattr.StatTimes(fi)
	wtime := fi.ModTime()

	if lastAccess != nil {
		atime = lastAccess.Time()
	}
	if lastWrite != nil {
		wtime = lastWrite.Time()
	}

	tv := []unix.Timeval{
		unix.NsecToTimeval(atime.UnixNano()),
		unix.NsecToTimeval(wtime.UnixNano()),
	}
	if err := unix.Futimes(int(h.f.Fd()), tv); err != nil {
		return fileerr.Wrap("SetFileTime", h.f.Name(), err)
	}
	return nil
}

// sysIdentity extracts device, inode and link count for the by-handle
// information record.
func sysIdentity(fi os.FileInfo) (dev, ino, nlink uint64) {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		return uint64(st.Dev), uint64(st.Ino), uint64(st.Nlink)
	}
	return 0, 0, 0
}
