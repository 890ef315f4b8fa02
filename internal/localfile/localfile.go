// Package localfile is the local filesystem handle creator. It is the
// fallback creator: it claims every path the more specific creators
// declined, so it must be registered last.
package localfile

import (
	"io"
	"os"
	"path/filepath"

	"winfile/internal/fattr"
	"winfile/internal/fileerr"
	"winfile/internal/handle"
)

// Creator opens plain local paths.
type Creator struct{}

func NewCreator() *Creator {
	return &Creator{}
}

func (*Creator) Claims(string) bool {
	return true
}

func (*Creator) Open(path string, opts handle.OpenOptions) (handle.Handle, error) {
	flags, err := opts.OSFlags()
	if err != nil {
		return nil, err
	}
	f, err := os.OpenFile(path, flags, opts.CreateMode())
	if err != nil {
		return nil, fileerr.Wrap("CreateFile", path, err)
	}
	return &File{f: f}, nil
}

// File is a handle over a native descriptor. Scatter/gather reads and
// writes are deliberately unsupported for this kind, so those operations
// take the dispatcher's not-implemented path.
type File struct {
	f      *os.File
	closed bool
}

var (
	_ handle.Reader     = (*File)(nil)
	_ handle.Writer     = (*File)(nil)
	_ handle.Flusher    = (*File)(nil)
	_ handle.Sizer      = (*File)(nil)
	_ handle.Seeker     = (*File)(nil)
	_ handle.Truncater  = (*File)(nil)
	_ handle.Locker     = (*File)(nil)
	_ handle.TimeSetter = (*File)(nil)
	_ handle.InfoGetter = (*File)(nil)
)

func (h *File) Kind() handle.Kind {
	return handle.KindFile
}

// Close releases the descriptor. A second close is rejected.
func (h *File) Close() error {
	if h.closed {
		return fileerr.New(fileerr.InvalidHandle, "CloseHandle", h.f.Name(), nil)
	}
	h.closed = true
	if err := h.f.Close(); err != nil {
		return fileerr.Wrap("CloseHandle", h.f.Name(), err)
	}
	return nil
}

// ReadFile reads at the current pointer. End of file is a successful
// zero-byte transfer, per the emulated contract.
func (h *File) ReadFile(p []byte) (int, error) {
	n, err := h.f.Read(p)
	if err == io.EOF {
		return n, nil
	}
	if err != nil {
		return n, fileerr.Wrap("ReadFile", h.f.Name(), err)
	}
	return n, nil
}

func (h *File) WriteFile(p []byte) (int, error) {
	n, err := h.f.Write(p)
	if err != nil {
		return n, fileerr.Wrap("WriteFile", h.f.Name(), err)
	}
	return n, nil
}

func (h *File) FlushFileBuffers() error {
	if err := h.f.Sync(); err != nil {
		return fileerr.Wrap("FlushFileBuffers", h.f.Name(), err)
	}
	return nil
}

func (h *File) GetFileSize() (int64, error) {
	fi, err := h.f.Stat()
	if err != nil {
		return 0, fileerr.Wrap("GetFileSize", h.f.Name(), err)
	}
	return fi.Size(), nil
}

func (h *File) SetFilePointer(offset int64, method handle.MoveMethod) (int64, error) {
	switch method {
	case handle.FileBegin, handle.FileCurrent, handle.FileEnd:
	default:
		return 0, fileerr.New(fileerr.InvalidParameter, "SetFilePointer", h.f.Name(), nil)
	}
	pos, err := h.f.Seek(offset, int(method))
	if err != nil {
		return 0, fileerr.Wrap("SetFilePointer", h.f.Name(), err)
	}
	return pos, nil
}

// SetEndOfFile truncates or extends the file at the current pointer.
func (h *File) SetEndOfFile() error {
	pos, err := h.f.Seek(0, io.SeekCurrent)
	if err != nil {
		return fileerr.Wrap("SetEndOfFile", h.f.Name(), err)
	}
	if err := h.f.Truncate(pos); err != nil {
		return fileerr.Wrap("SetEndOfFile", h.f.Name(), err)
	}
	return nil
}

// FileInformation builds the by-handle record from fstat results.
func (h *File) FileInformation() (*fattr.ByHandleInfo, error) {
	fi, err := h.f.Stat()
	if err != nil {
		return nil, fileerr.Wrap("GetFileInformationByHandle", h.f.Name(), err)
	}

	fd := fattr.FromFileInfo(filepath.Base(h.f.Name()), fi)
	info := &fattr.ByHandleInfo{
		Attributes:     fd.Attributes,
		CreationTime:   fd.CreationTime,
		LastAccessTime: fd.LastAccessTime,
		LastWriteTime:  fd.LastWriteTime,
		SizeHigh:       fd.SizeHigh,
		SizeLow:        fd.SizeLow,
		NumberOfLinks:  1,
	}

	dev, ino, nlink := sysIdentity(fi)
	info.VolumeSerial = uint32(dev)
	info.FileIndexHigh = uint32(ino >> 32)
	info.FileIndexLow = uint32(ino)
	if nlink > 0 {
		info.NumberOfLinks = uint32(nlink)
	}
	return info, nil
}
