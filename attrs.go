package winfile

import (
	"log"
	"os"

	"golang.org/x/sys/unix"

	"winfile/internal/fattr"
	"winfile/internal/fileerr"
)

// MoveFlags controls MoveFileEx.
type MoveFlags uint32

// MoveReplaceExisting allows the destination to be overwritten.
const MoveReplaceExisting MoveFlags = 0x01

// AttributeData is the extended attribute record GetFileAttributesEx
// fills: attributes, the three times and the split size.
type AttributeData struct {
	Attributes     FileAttr
	CreationTime   Filetime
	LastAccessTime Filetime
	LastWriteTime  Filetime
	SizeHigh       uint32
	SizeLow        uint32
}

// GetFileAttributes resolves a path's attribute bitmask by running a
// one-entry search for it. Failure reports the invalid-attributes
// sentinel with the underlying error.
func GetFileAttributes(path string) (FileAttr, error) {
	var fd FindData
	s, err := FindFirstFile(path, &fd)
	if err != nil {
		return fattr.InvalidAttrs, err
	}
	FindClose(s)
	return fd.Attributes, nil
}

// GetFileAttributesEx is GetFileAttributes plus times and size.
func GetFileAttributesEx(path string) (*AttributeData, error) {
	var fd FindData
	s, err := FindFirstFile(path, &fd)
	if err != nil {
		return nil, err
	}
	FindClose(s)
	return &AttributeData{
		Attributes:     fd.Attributes,
		CreationTime:   fd.CreationTime,
		LastAccessTime: fd.LastAccessTime,
		LastWriteTime:  fd.LastWriteTime,
		SizeHigh:       fd.SizeHigh,
		SizeLow:        fd.SizeLow,
	}, nil
}

// SetFileAttributes honors the read-only and normal bits. Setting
// read-only strips every write permission bit; clearing it restores the
// owner write bit. Any other requested bit is logged and ignored, and
// the call still succeeds.
func SetFileAttributes(path string, attrs FileAttr) error {
	const op = "SetFileAttributes"
	const supported = fattr.AttrReadOnly | fattr.AttrNormal

	if unsup := attrs &^ supported; unsup != 0 {
		log.Printf("winfile: %s ignoring unsupported attributes %s [0x%08X] for %s",
			op, unsup, uint32(unsup), path)
	}

	fi, err := os.Stat(path)
	if err != nil {
		return fileerr.Wrap(op, path, err)
	}
	mode := fi.Mode().Perm()
	if attrs&fattr.AttrReadOnly != 0 {
		mode &^= 0222
	} else {
		mode |= 0200
	}
	if err := os.Chmod(path, mode); err != nil {
		return fileerr.Wrap(op, path, err)
	}
	return nil
}

// CreateDirectory makes a single directory, owner-only by default.
func CreateDirectory(path string) error {
	if err := os.Mkdir(path, 0700); err != nil {
		return fileerr.Wrap("CreateDirectory", path, err)
	}
	return nil
}

// RemoveDirectory deletes an empty directory. Unlike a generic remove it
// never deletes a file, and a non-empty directory fails with
// dir-not-empty.
func RemoveDirectory(path string) error {
	if err := unix.Rmdir(path); err != nil {
		return fileerr.Wrap("RemoveDirectory", path, err)
	}
	return nil
}

// DeleteFile unlinks a file. Directories are not accepted.
func DeleteFile(path string) error {
	if err := unix.Unlink(path); err != nil {
		return fileerr.Wrap("DeleteFile", path, err)
	}
	return nil
}

// MoveFile renames without replacing: an existing destination fails.
func MoveFile(existing, target string) error {
	return moveFile("MoveFile", existing, target, 0)
}

// MoveFileEx renames with optional replacement. Without
// MoveReplaceExisting an existing destination fails with already-exists;
// with it, a destination lacking owner write permission fails with
// access-denied before anything is touched.
func MoveFileEx(existing, target string, flags MoveFlags) error {
	return moveFile("MoveFileEx", existing, target, flags)
}

func moveFile(op, existing, target string, flags MoveFlags) error {
	fi, err := os.Stat(target)
	if flags&MoveReplaceExisting == 0 {
		if err == nil {
			return fileerr.New(fileerr.AlreadyExists, op, target, nil)
		}
	} else if err == nil && fi.Mode().Perm()&0200 == 0 {
		return fileerr.New(fileerr.AccessDenied, op, target, nil)
	}

	if err := os.Rename(existing, target); err != nil {
		return fileerr.Wrap(op, existing, err)
	}
	return nil
}

// ChangeFileMode applies a native permission word directly, bypassing
// the attribute translation. Special bits (setuid, setgid, sticky) pass
// through unchanged.
func ChangeFileMode(path string, mode uint32) error {
	if err := unix.Chmod(path, mode); err != nil {
		return fileerr.Wrap("ChangeFileMode", path, err)
	}
	return nil
}
