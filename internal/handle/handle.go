// Package handle defines the opaque handle contract shared by all
// creators, the optional capability interfaces the dispatcher forwards
// through, and the process-wide creator registry.
package handle

import (
	"winfile/internal/fattr"
)

// Kind tags the concrete handle implementation.
type Kind int

const (
	KindFile Kind = iota + 1
	KindSMB
	KindArchive
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindSMB:
		return "smb"
	case KindArchive:
		return "archive"
	default:
		return "unknown"
	}
}

// AccessMode is the requested access mask (foreign generic access bits).
type AccessMode uint32

const (
	GenericRead  AccessMode = 0x80000000
	GenericWrite AccessMode = 0x40000000
	GenericAll   AccessMode = 0x10000000
)

// ShareMode is the foreign sharing mask. POSIX has no open-time sharing
// enforcement, so creators accept but do not enforce it.
type ShareMode uint32

const (
	ShareRead   ShareMode = 0x1
	ShareWrite  ShareMode = 0x2
	ShareDelete ShareMode = 0x4
)

// Disposition selects create-vs-open behavior.
type Disposition uint32

const (
	CreateNew        Disposition = 1
	CreateAlways     Disposition = 2
	OpenExisting     Disposition = 3
	OpenAlways       Disposition = 4
	TruncateExisting Disposition = 5
)

// MoveMethod is the seek origin for pointer operations.
type MoveMethod uint32

const (
	FileBegin   MoveMethod = 0
	FileCurrent MoveMethod = 1
	FileEnd     MoveMethod = 2
)

// LockFlags modify extended lock requests.
type LockFlags uint32

const (
	LockfailImmediately LockFlags = 0x1
	LockExclusive       LockFlags = 0x2
)

// OpenOptions carries the open-time arguments from the public entry point
// to the selected creator, unchanged.
type OpenOptions struct {
	Access      AccessMode
	Share       ShareMode
	Disposition Disposition
	Attrs       fattr.FileAttr
}

// Handle is an opaque owned reference to an open resource. A handle is
// exclusively owned by its creator and closed exactly once; a second
// Close must be rejected, not silently accepted. Individual handles are
// not internally synchronized, matching the emulated API.
type Handle interface {
	Kind() Kind
	Close() error
}

// The capability interfaces below replace the original's nullable
// operation-table entries. A handle kind that does not implement one of
// these simply does not support that operation; the dispatcher reports
// "not implemented" instead of failing the process.

// Reader supports synchronous reads at the current file pointer.
type Reader interface {
	ReadFile(p []byte) (int, error)
}

// Writer supports synchronous writes at the current file pointer.
type Writer interface {
	WriteFile(p []byte) (int, error)
}

// ScatterReader reads into a sequence of buffers.
type ScatterReader interface {
	ReadFileScatter(segments [][]byte) (int, error)
}

// GatherWriter writes from a sequence of buffers.
type GatherWriter interface {
	WriteFileGather(segments [][]byte) (int, error)
}

// Flusher forces buffered writes to the underlying object.
type Flusher interface {
	FlushFileBuffers() error
}

// Sizer reports the current size of the underlying object.
type Sizer interface {
	GetFileSize() (int64, error)
}

// Seeker moves the file pointer.
type Seeker interface {
	SetFilePointer(offset int64, method MoveMethod) (int64, error)
}

// Truncater sets end-of-file at the current pointer.
type Truncater interface {
	SetEndOfFile() error
}

// Locker manipulates byte-range locks. Offsets and lengths are already
// reassembled from their split halves by the dispatcher.
type Locker interface {
	LockFile(offset, length uint64, flags LockFlags) error
	UnlockFile(offset, length uint64) error
}

// TimeSetter updates file timestamps. Nil arguments leave the
// corresponding timestamp unchanged.
type TimeSetter interface {
	SetFileTime(creation, lastAccess, lastWrite *fattr.Filetime) error
}

// InfoGetter produces the by-handle information record.
type InfoGetter interface {
	FileInformation() (*fattr.ByHandleInfo, error)
}
