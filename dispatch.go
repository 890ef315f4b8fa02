package winfile

import (
	"log"

	"winfile/internal/fileerr"
	"winfile/internal/handle"
)

// Generic operations forward through the per-kind capability interfaces.
// A nil handle is rejected up front; a handle kind lacking the
// capability gets the logged not-implemented result.

func invalidHandle(op string) error {
	return fileerr.New(fileerr.InvalidHandle, op, "", nil)
}

func notImplemented(op string, h Handle) error {
	log.Printf("winfile: %s operation not implemented for %s handle", op, h.Kind())
	return fileerr.New(fileerr.CallNotImplemented, op, "", nil)
}

// ReadFile reads up to len(p) bytes. End of file is not an error; it
// reads as a zero count.
func ReadFile(h Handle, p []byte) (int, error) {
	const op = "ReadFile"
	if h == nil {
		return 0, invalidHandle(op)
	}
	r, ok := h.(handle.Reader)
	if !ok {
		return 0, notImplemented(op, h)
	}
	return r.ReadFile(p)
}

// WriteFile writes len(p) bytes at the current file position.
func WriteFile(h Handle, p []byte) (int, error) {
	const op = "WriteFile"
	if h == nil {
		return 0, invalidHandle(op)
	}
	w, ok := h.(handle.Writer)
	if !ok {
		return 0, notImplemented(op, h)
	}
	return w.WriteFile(p)
}

// ReadFileEx is the asynchronous read entry point. No handle kind
// implements it; the call reports not-implemented after the usual
// handle validation.
func ReadFileEx(h Handle, p []byte) error {
	const op = "ReadFileEx"
	if h == nil {
		return invalidHandle(op)
	}
	return notImplemented(op, h)
}

// WriteFileEx is the asynchronous write entry point, unimplemented like
// ReadFileEx.
func WriteFileEx(h Handle, p []byte) error {
	const op = "WriteFileEx"
	if h == nil {
		return invalidHandle(op)
	}
	return notImplemented(op, h)
}

// ReadFileScatter reads sequentially into the given segments.
func ReadFileScatter(h Handle, segments [][]byte) (int, error) {
	const op = "ReadFileScatter"
	if h == nil {
		return 0, invalidHandle(op)
	}
	r, ok := h.(handle.ScatterReader)
	if !ok {
		return 0, notImplemented(op, h)
	}
	return r.ReadFileScatter(segments)
}

// WriteFileGather writes the given segments sequentially.
func WriteFileGather(h Handle, segments [][]byte) (int, error) {
	const op = "WriteFileGather"
	if h == nil {
		return 0, invalidHandle(op)
	}
	w, ok := h.(handle.GatherWriter)
	if !ok {
		return 0, notImplemented(op, h)
	}
	return w.WriteFileGather(segments)
}

// FlushFileBuffers forces buffered writes to stable storage.
func FlushFileBuffers(h Handle) error {
	const op = "FlushFileBuffers"
	if h == nil {
		return invalidHandle(op)
	}
	f, ok := h.(handle.Flusher)
	if !ok {
		return notImplemented(op, h)
	}
	return f.FlushFileBuffers()
}

// GetFileSize returns the low half of the file size and, when sizeHigh
// is non-nil, stores the high half through it.
func GetFileSize(h Handle, sizeHigh *uint32) (uint32, error) {
	const op = "GetFileSize"
	if h == nil {
		return 0, invalidHandle(op)
	}
	s, ok := h.(handle.Sizer)
	if !ok {
		return 0, notImplemented(op, h)
	}
	size, err := s.GetFileSize()
	if err != nil {
		return 0, err
	}
	if sizeHigh != nil {
		*sizeHigh = uint32(uint64(size) >> 32)
	}
	return uint32(uint64(size)), nil
}

// SetFilePointer moves the file position by a split 64-bit distance.
// With a nil distanceHigh the distance is the sign-extended low half;
// otherwise the halves combine and the new position's high half is
// stored back through distanceHigh.
func SetFilePointer(h Handle, distance int32, distanceHigh *int32, method MoveMethod) (uint32, error) {
	const op = "SetFilePointer"
	if h == nil {
		return 0, invalidHandle(op)
	}
	s, ok := h.(handle.Seeker)
	if !ok {
		return 0, notImplemented(op, h)
	}

	offset := int64(distance)
	if distanceHigh != nil {
		offset = int64(*distanceHigh)<<32 | int64(uint32(distance))
	}
	pos, err := s.SetFilePointer(offset, method)
	if err != nil {
		return 0, err
	}
	if distanceHigh != nil {
		*distanceHigh = int32(pos >> 32)
	}
	return uint32(uint64(pos)), nil
}

// SetFilePointerEx is the unsplit form of SetFilePointer.
func SetFilePointerEx(h Handle, distance int64, method MoveMethod) (int64, error) {
	const op = "SetFilePointerEx"
	if h == nil {
		return 0, invalidHandle(op)
	}
	s, ok := h.(handle.Seeker)
	if !ok {
		return 0, notImplemented(op, h)
	}
	return s.SetFilePointer(distance, method)
}

// SetEndOfFile truncates or extends the file to the current position.
func SetEndOfFile(h Handle) error {
	const op = "SetEndOfFile"
	if h == nil {
		return invalidHandle(op)
	}
	t, ok := h.(handle.Truncater)
	if !ok {
		return notImplemented(op, h)
	}
	return t.SetEndOfFile()
}

// LockFile takes an exclusive lock over the split byte range, failing
// immediately when the range is already held.
func LockFile(h Handle, offsetLow, offsetHigh, lengthLow, lengthHigh uint32) error {
	const op = "LockFile"
	if h == nil {
		return invalidHandle(op)
	}
	l, ok := h.(handle.Locker)
	if !ok {
		return notImplemented(op, h)
	}
	return l.LockFile(join64(offsetHigh, offsetLow), join64(lengthHigh, lengthLow),
		LockExclusive|LockfailImmediately)
}

// LockFileEx locks the split byte range with explicit flags; without
// LockfailImmediately the call blocks until the range is free.
func LockFileEx(h Handle, flags LockFlags, offsetLow, offsetHigh, lengthLow, lengthHigh uint32) error {
	const op = "LockFileEx"
	if h == nil {
		return invalidHandle(op)
	}
	l, ok := h.(handle.Locker)
	if !ok {
		return notImplemented(op, h)
	}
	return l.LockFile(join64(offsetHigh, offsetLow), join64(lengthHigh, lengthLow), flags)
}

// UnlockFile releases a previously locked byte range.
func UnlockFile(h Handle, offsetLow, offsetHigh, lengthLow, lengthHigh uint32) error {
	const op = "UnlockFile"
	if h == nil {
		return invalidHandle(op)
	}
	l, ok := h.(handle.Locker)
	if !ok {
		return notImplemented(op, h)
	}
	return l.UnlockFile(join64(offsetHigh, offsetLow), join64(lengthHigh, lengthLow))
}

// UnlockFileEx is UnlockFile with the extended signature; the reserved
// flags carry no meaning here.
func UnlockFileEx(h Handle, offsetLow, offsetHigh, lengthLow, lengthHigh uint32) error {
	const op = "UnlockFileEx"
	if h == nil {
		return invalidHandle(op)
	}
	l, ok := h.(handle.Locker)
	if !ok {
		return notImplemented(op, h)
	}
	return l.UnlockFile(join64(offsetHigh, offsetLow), join64(lengthHigh, lengthLow))
}

// SetFileTime updates the file times; nil arguments leave the
// corresponding time untouched.
func SetFileTime(h Handle, creation, lastAccess, lastWrite *Filetime) error {
	const op = "SetFileTime"
	if h == nil {
		return invalidHandle(op)
	}
	t, ok := h.(handle.TimeSetter)
	if !ok {
		return notImplemented(op, h)
	}
	return t.SetFileTime(creation, lastAccess, lastWrite)
}

// GetFileInformationByHandle returns the full stat-derived record for an
// open handle.
func GetFileInformationByHandle(h Handle) (*ByHandleInfo, error) {
	const op = "GetFileInformationByHandle"
	if h == nil {
		return nil, invalidHandle(op)
	}
	g, ok := h.(handle.InfoGetter)
	if !ok {
		return nil, notImplemented(op, h)
	}
	return g.FileInformation()
}

func join64(high, low uint32) uint64 {
	return uint64(high)<<32 | uint64(low)
}
