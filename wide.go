package winfile

import (
	"unicode/utf16"

	"winfile/internal/fileerr"
)

// W-variant entry points for callers holding UTF-16 path buffers, e.g.
// protocol code that received the path off the wire. Each is a pure
// conversion wrapper over its narrow counterpart; no semantics live
// here.

// DecodeWide converts a UTF-16 buffer to a string, stopping at the first
// NUL if one is present.
func DecodeWide(s []uint16) string {
	for i, c := range s {
		if c == 0 {
			s = s[:i]
			break
		}
	}
	return string(utf16.Decode(s))
}

// EncodeWide converts a string to a NUL-terminated UTF-16 buffer.
func EncodeWide(s string) []uint16 {
	return append(utf16.Encode([]rune(s)), 0)
}

// FindDataW is the find record with the entry name in UTF-16.
type FindDataW struct {
	Attributes     FileAttr
	CreationTime   Filetime
	LastAccessTime Filetime
	LastWriteTime  Filetime
	SizeHigh       uint32
	SizeLow        uint32
	Name           []uint16
}

func wideRecord(fd *FindData, w *FindDataW) {
	*w = FindDataW{
		Attributes:     fd.Attributes,
		CreationTime:   fd.CreationTime,
		LastAccessTime: fd.LastAccessTime,
		LastWriteTime:  fd.LastWriteTime,
		SizeHigh:       fd.SizeHigh,
		SizeLow:        fd.SizeLow,
		Name:           EncodeWide(fd.Name),
	}
}

func CreateFileW(name []uint16, access AccessMode, share ShareMode, disposition Disposition, attrs FileAttr) (Handle, error) {
	if name == nil {
		return nil, fileerr.New(fileerr.InvalidParameter, "CreateFile", "", nil)
	}
	return CreateFile(DecodeWide(name), access, share, disposition, attrs)
}

func DeleteFileW(path []uint16) error {
	return DeleteFile(DecodeWide(path))
}

func CreateDirectoryW(path []uint16) error {
	return CreateDirectory(DecodeWide(path))
}

func RemoveDirectoryW(path []uint16) error {
	return RemoveDirectory(DecodeWide(path))
}

func MoveFileW(existing, target []uint16) error {
	return MoveFile(DecodeWide(existing), DecodeWide(target))
}

func MoveFileExW(existing, target []uint16, flags MoveFlags) error {
	return MoveFileEx(DecodeWide(existing), DecodeWide(target), flags)
}

func GetFileAttributesW(path []uint16) (FileAttr, error) {
	return GetFileAttributes(DecodeWide(path))
}

func GetFileAttributesExW(path []uint16) (*AttributeData, error) {
	return GetFileAttributesEx(DecodeWide(path))
}

func SetFileAttributesW(path []uint16, attrs FileAttr) error {
	return SetFileAttributes(DecodeWide(path), attrs)
}

func FindFirstFileW(path []uint16, fd *FindDataW) (*Search, error) {
	if fd == nil {
		return nil, fileerr.New(fileerr.InvalidParameter, "FindFirstFile", "", nil)
	}
	var narrow FindData
	s, err := FindFirstFile(DecodeWide(path), &narrow)
	wideRecord(&narrow, fd)
	return s, err
}

func FindNextFileW(s *Search, fd *FindDataW) error {
	if fd == nil {
		return fileerr.New(fileerr.InvalidParameter, "FindNextFile", "", nil)
	}
	var narrow FindData
	err := FindNextFile(s, &narrow)
	wideRecord(&narrow, fd)
	return err
}
