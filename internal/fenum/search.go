// Package fenum implements the stateful first/next directory enumeration
// of the emulated find API on top of a native directory stream.
package fenum

import (
	"os"
	"strings"

	"winfile/internal/fattr"
	"winfile/internal/fileerr"
)

// searchTag marks a live Search. The public boundary hands these out as
// opaque values, so the tag guards against foreign or already-closed
// handles being passed back in.
const searchTag uint32 = 0x53524348

// Search owns a native directory stream plus the path/pattern pair a
// find-first call produced. Created by NewSearch, advanced by Next,
// released exactly once by Close. Not internally synchronized; matching
// the emulated API, concurrent use of one Search is the caller's
// responsibility.
type Search struct {
	tag       uint32
	dir       *os.File
	path      string // directory prefix, keeps its trailing separator
	pattern   string
	exhausted bool
	skipErr   error // last per-entry stat failure; recorded, never fatal
}

// NewSearch splits the search path into a directory prefix and a
// wildcard suffix and opens the directory stream. The final segment is
// the pattern and must be non-empty.
//
// If the prefix cannot be opened but the entire path refers to an
// openable directory, that directory is enumerated with a match-all
// pattern instead. Some filesystems (Android storage among them) expose
// directories whose parents are not themselves listable.
func NewSearch(path string) (*Search, error) {
	const op = "FindFirstFile"

	sep := strings.LastIndexByte(path, os.PathSeparator)
	if sep < 0 {
		return nil, fileerr.New(fileerr.BadArguments, op, path, nil)
	}
	pattern := path[sep+1:]
	if pattern == "" {
		return nil, fileerr.New(fileerr.BadArguments, op, path, nil)
	}
	prefix := path[:len(path)-len(pattern)]

	dir, err := os.Open(prefix)
	if err != nil {
		if fi, serr := os.Stat(path); serr == nil && fi.IsDir() {
			if sub, oerr := os.Open(path); oerr == nil {
				return &Search{tag: searchTag, dir: sub, path: path, pattern: "*"}, nil
			}
		}
		return nil, fileerr.Wrap(op, path, err)
	}

	return &Search{tag: searchTag, dir: dir, path: prefix, pattern: pattern}, nil
}

func (s *Search) valid() bool {
	return s != nil && s.tag == searchTag
}

// Next advances the stream until an entry matches the pattern and its
// metadata resolves, then fills fd with the translated record. The
// record is zeroed first in every case.
//
// Entries whose stat fails are skipped with the error recorded; FIFO
// entries are skipped silently. When the stream runs out the search
// enters a sticky exhausted state: every further call reports
// no-more-files without touching the stream again.
func (s *Search) Next(fd *fattr.FindData) error {
	const op = "FindNextFile"

	if fd == nil {
		return fileerr.New(fileerr.InvalidParameter, op, "", nil)
	}
	*fd = fattr.FindData{}

	if !s.valid() {
		return fileerr.New(fileerr.InvalidHandle, op, "", nil)
	}
	if s.exhausted {
		return fileerr.New(fileerr.NoMoreFiles, op, s.path, nil)
	}

	for {
		names, err := s.dir.Readdirnames(1)
		if err != nil || len(names) == 0 {
			s.exhausted = true
			return fileerr.New(fileerr.NoMoreFiles, op, s.path, nil)
		}
		name := names[0]

		if !Match(name, s.pattern) {
			continue
		}

		fi, err := os.Stat(s.joined(name))
		if err != nil {
			s.skipErr = fileerr.Wrap(op, name, err)
			continue
		}
		if fi.Mode()&os.ModeNamedPipe != 0 {
			continue
		}

		*fd = fattr.FromFileInfo(name, fi)
		return nil
	}
}

// joined appends name to the prefix, avoiding a duplicate separator.
func (s *Search) joined(name string) string {
	if strings.HasSuffix(s.path, string(os.PathSeparator)) {
		return s.path + name
	}
	return s.path + string(os.PathSeparator) + name
}

// SkipErr returns the most recent per-entry metadata failure, if any.
func (s *Search) SkipErr() error {
	if !s.valid() {
		return nil
	}
	return s.skipErr
}

// Close releases the directory stream and invalidates the search.
// Closing an already-closed search, or a value that never was a live
// search, is rejected as an invalid handle rather than ignored.
func (s *Search) Close() error {
	const op = "FindClose"

	if !s.valid() {
		return fileerr.New(fileerr.InvalidHandle, op, "", nil)
	}
	s.tag = 0
	if err := s.dir.Close(); err != nil {
		return fileerr.Wrap(op, s.path, err)
	}
	return nil
}
