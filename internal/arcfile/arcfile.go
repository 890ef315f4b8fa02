// Package arcfile is the handle creator for paths that traverse into an
// archive file, e.g. /data/bundle.zip/docs/readme.txt. Handles are
// read-only; anything beyond reading takes the dispatcher's
// not-implemented path.
package arcfile

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/mholt/archives"

	"winfile/internal/fileerr"
	"winfile/internal/handle"
)

// archiveExts are the formats the creator recognizes syntactically. The
// actual decoding is delegated to the archives package on open.
var archiveExts = []string{
	".zip", ".tar", ".tar.gz", ".tgz", ".tar.bz2", ".tar.xz", ".7z", ".rar",
}

// split finds the archive-file prefix of path and the entry path inside
// it. The prefix must exist as a regular file, so plain directories that
// happen to contain a dot never match.
func split(path string) (archive, inner string, ok bool) {
	for i := 0; i < len(path); i++ {
		if path[i] != os.PathSeparator {
			continue
		}
		prefix := path[:i]
		if !hasArchiveExt(prefix) {
			continue
		}
		if fi, err := os.Stat(prefix); err != nil || !fi.Mode().IsRegular() {
			continue
		}
		return prefix, strings.TrimLeft(path[i+1:], string(os.PathSeparator)), true
	}
	return "", "", false
}

func hasArchiveExt(p string) bool {
	lower := strings.ToLower(p)
	for _, ext := range archiveExts {
		if strings.HasSuffix(lower, ext) {
			return true
		}
	}
	return false
}

// Creator opens entries inside archive files.
type Creator struct{}

func NewCreator() *Creator {
	return &Creator{}
}

// Claims accepts paths with an existing archive file as a strict prefix.
// The archive file itself is left to the local creator.
func (*Creator) Claims(path string) bool {
	_, inner, ok := split(path)
	return ok && inner != ""
}

func (*Creator) Open(path string, opts handle.OpenOptions) (handle.Handle, error) {
	const op = "CreateFile"

	archivePath, inner, ok := split(path)
	if !ok || inner == "" {
		return nil, fileerr.New(fileerr.PathNotFound, op, path, nil)
	}
	if opts.Access&(handle.GenericWrite|handle.GenericAll) != 0 ||
		opts.Disposition != handle.OpenExisting {
		return nil, fileerr.New(fileerr.AccessDenied, op, path, nil)
	}

	fsys, err := archives.FileSystem(context.Background(), archivePath, nil)
	if err != nil {
		return nil, fileerr.Wrap(op, path, err)
	}

	f, err := fsys.Open(inner)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fileerr.New(fileerr.FileNotFound, op, path, err)
		}
		return nil, fileerr.Wrap(op, path, err)
	}

	return &File{f: f, path: path}, nil
}

// File is a read-only handle over an archive entry.
type File struct {
	f      fs.File
	path   string
	closed bool
}

var (
	_ handle.Reader = (*File)(nil)
	_ handle.Sizer  = (*File)(nil)
)

func (h *File) Kind() handle.Kind {
	return handle.KindArchive
}

func (h *File) Close() error {
	if h.closed {
		return fileerr.New(fileerr.InvalidHandle, "CloseHandle", h.path, nil)
	}
	h.closed = true
	if err := h.f.Close(); err != nil {
		return fileerr.Wrap("CloseHandle", h.path, err)
	}
	return nil
}

func (h *File) ReadFile(p []byte) (int, error) {
	n, err := h.f.Read(p)
	if errors.Is(err, io.EOF) {
		return n, nil
	}
	if err != nil {
		return n, fileerr.Wrap("ReadFile", h.path, err)
	}
	return n, nil
}

func (h *File) GetFileSize() (int64, error) {
	fi, err := h.f.Stat()
	if err != nil {
		return 0, fileerr.Wrap("GetFileSize", h.path, err)
	}
	return fi.Size(), nil
}
