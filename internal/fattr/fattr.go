// Package fattr translates native file metadata (mode bits, timestamps,
// size) into the emulated attribute/filetime representation. All mappings
// here are pure and deterministic; no I/O happens in this package.
package fattr

import (
	"os"
	"strings"
	"time"
)

// FileAttr is the emulated attribute bitmask. Values match the foreign
// API and are part of the wire contract.
type FileAttr uint32

const (
	AttrReadOnly  FileAttr = 0x0001
	AttrHidden    FileAttr = 0x0002
	AttrSystem    FileAttr = 0x0004
	AttrDirectory FileAttr = 0x0010
	AttrArchive   FileAttr = 0x0020
	AttrDevice    FileAttr = 0x0040
	AttrNormal    FileAttr = 0x0080
	AttrTemporary FileAttr = 0x0100
)

// InvalidAttrs is the sentinel returned by attribute queries on failure.
const InvalidAttrs FileAttr = 0xFFFFFFFF

// attrNames is used when logging unsupported attribute bits.
var attrNames = []struct {
	bit  FileAttr
	name string
}{
	{AttrReadOnly, "READONLY"},
	{AttrHidden, "HIDDEN"},
	{AttrSystem, "SYSTEM"},
	{AttrDirectory, "DIRECTORY"},
	{AttrArchive, "ARCHIVE"},
	{AttrDevice, "DEVICE"},
	{AttrNormal, "NORMAL"},
	{AttrTemporary, "TEMPORARY"},
}

func (a FileAttr) String() string {
	if a == 0 {
		return "0"
	}
	parts := make([]string, 0, 4)
	for _, n := range attrNames {
		if a&n.bit != 0 {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// MaxName bounds the name field of a FindData record (MAX_PATH minus the
// terminator in the foreign layout).
const MaxName = 259

// Filetime is a fixed-epoch timestamp: 100-nanosecond ticks since
// 1601-01-01 UTC, split into 32-bit halves per the foreign layout.
type Filetime struct {
	High uint32
	Low  uint32
}

// Seconds between the 1601 filetime epoch and the Unix epoch.
const epochDelta = 11644473600

// FiletimeFromTime converts a native timestamp to filetime ticks.
func FiletimeFromTime(t time.Time) Filetime {
	ticks := uint64(t.Unix()+epochDelta)*10_000_000 + uint64(t.Nanosecond()/100)
	return Filetime{High: uint32(ticks >> 32), Low: uint32(ticks)}
}

// Ticks reassembles the 64-bit tick count.
func (ft Filetime) Ticks() uint64 {
	return uint64(ft.High)<<32 | uint64(ft.Low)
}

// Time converts back to a native timestamp. The conversion from a native
// time round-trips at 100ns resolution.
func (ft Filetime) Time() time.Time {
	ticks := ft.Ticks()
	sec := int64(ticks/10_000_000) - epochDelta
	nsec := int64(ticks%10_000_000) * 100
	return time.Unix(sec, nsec).UTC()
}

// FindData is the per-entry record produced by directory enumeration and
// attribute queries. Layout follows the foreign contract: attribute mask,
// three split timestamps, split size, bounded name.
type FindData struct {
	Attributes     FileAttr
	CreationTime   Filetime
	LastAccessTime Filetime
	LastWriteTime  Filetime
	SizeHigh       uint32
	SizeLow        uint32
	Name           string
}

// ByHandleInfo mirrors the by-handle file information record.
type ByHandleInfo struct {
	Attributes     FileAttr
	CreationTime   Filetime
	LastAccessTime Filetime
	LastWriteTime  Filetime
	VolumeSerial   uint32
	SizeHigh       uint32
	SizeLow        uint32
	NumberOfLinks  uint32
	FileIndexHigh  uint32
	FileIndexLow   uint32
}

// AttrsFromMode derives the attribute mask from a native mode and the
// entry's base name. Order matters and mirrors the original mapping:
// directory first, archive as the default when nothing else is set, then
// the syntactic hidden rule, then readonly from the owner-write bit.
func AttrsFromMode(name string, mode os.FileMode) FileAttr {
	var attrs FileAttr

	if mode.IsDir() {
		attrs |= AttrDirectory
	}
	if attrs == 0 {
		attrs = AttrArchive
	}

	// Hidden is purely syntactic: a leading dot that is not "..".
	if len(name) > 1 && name[0] == '.' && name[1] != '.' {
		attrs |= AttrHidden
	}

	if mode.Perm()&0200 == 0 {
		attrs |= AttrReadOnly
	}

	return attrs
}

// SplitSize splits a native byte count into the foreign high/low halves.
func SplitSize(size int64) (high, low uint32) {
	return uint32(uint64(size) >> 32), uint32(uint64(size))
}

// FromFileInfo fills a FindData record from stat results. Creation time
// uses the change time where the platform exposes it; birth time is not
// available here, so the mapping is lossy and one-directional for that
// field.
func FromFileInfo(name string, fi os.FileInfo) FindData {
	atime, ctime := StatTimes(fi)

	var fd FindData
	fd.Attributes = AttrsFromMode(name, fi.Mode())
	fd.CreationTime = FiletimeFromTime(ctime)
	fd.LastWriteTime = FiletimeFromTime(fi.ModTime())
	fd.LastAccessTime = FiletimeFromTime(atime)
	fd.SizeHigh, fd.SizeLow = SplitSize(fi.Size())
	fd.Name = boundName(name)
	return fd
}

func boundName(name string) string {
	if len(name) > MaxName {
		return name[:MaxName]
	}
	return name
}
