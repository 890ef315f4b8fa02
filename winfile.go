// Package winfile emulates a Windows-style file API on POSIX hosts:
// opaque handles, attribute bitmasks and first/next wildcard directory
// enumeration, built on native open/stat/directory primitives.
//
// Opening goes through an ordered registry of handle creators; the first
// creator claiming a path opens it. Generic operations are dispatched
// through per-kind capability interfaces, and an unsupported operation
// is a defined not-implemented result, never a fault. Failures carry a
// foreign error code recoverable with ErrorCode.
package winfile

import (
	"winfile/internal/arcfile"
	"winfile/internal/config"
	"winfile/internal/fattr"
	"winfile/internal/fenum"
	"winfile/internal/fileerr"
	"winfile/internal/fwatch"
	"winfile/internal/handle"
	"winfile/internal/localfile"
	"winfile/internal/secret"
	"winfile/internal/smbfile"
)

// Re-exported surface types.
type (
	Handle       = handle.Handle
	Kind         = handle.Kind
	AccessMode   = handle.AccessMode
	ShareMode    = handle.ShareMode
	Disposition  = handle.Disposition
	MoveMethod   = handle.MoveMethod
	LockFlags    = handle.LockFlags
	FileAttr     = fattr.FileAttr
	Filetime     = fattr.Filetime
	FindData     = fattr.FindData
	ByHandleInfo = fattr.ByHandleInfo
	Errno        = fileerr.Errno
	Search       = fenum.Search
	Notification = fwatch.Notification
	NotifyFilter = fwatch.Filter
)

const (
	GenericRead  = handle.GenericRead
	GenericWrite = handle.GenericWrite
	GenericAll   = handle.GenericAll

	ShareRead   = handle.ShareRead
	ShareWrite  = handle.ShareWrite
	ShareDelete = handle.ShareDelete

	CreateNew        = handle.CreateNew
	CreateAlways     = handle.CreateAlways
	OpenExisting     = handle.OpenExisting
	OpenAlways       = handle.OpenAlways
	TruncateExisting = handle.TruncateExisting

	FileBegin   = handle.FileBegin
	FileCurrent = handle.FileCurrent
	FileEnd     = handle.FileEnd

	LockfailImmediately = handle.LockfailImmediately
	LockExclusive       = handle.LockExclusive

	AttrReadOnly  = fattr.AttrReadOnly
	AttrHidden    = fattr.AttrHidden
	AttrSystem    = fattr.AttrSystem
	AttrDirectory = fattr.AttrDirectory
	AttrArchive   = fattr.AttrArchive
	AttrDevice    = fattr.AttrDevice
	AttrNormal    = fattr.AttrNormal
	AttrTemporary = fattr.AttrTemporary

	InvalidAttrs = fattr.InvalidAttrs

	NotifyFileName   = fwatch.NotifyFileName
	NotifyDirName    = fwatch.NotifyDirName
	NotifyAttributes = fwatch.NotifyAttributes
	NotifySize       = fwatch.NotifySize
	NotifyLastWrite  = fwatch.NotifyLastWrite
	NotifyAll        = fwatch.NotifyAll
)

// ErrorCode recovers the foreign error code from any error returned by
// this package. Nil maps to 0.
func ErrorCode(err error) Errno {
	return fileerr.CodeOf(err)
}

var defaultRegistry handle.Registry

// buildCreators assembles the fixed creator list. Order matters: the
// local creator claims everything, so it goes last.
func buildCreators() ([]handle.Creator, error) {
	cfg, err := config.NewManager().Load()
	if err != nil {
		return nil, err
	}

	var creators []handle.Creator
	if !cfg.DisableSMB {
		var store secret.Store
		if cfg.PersistCredentials {
			if s, err := secret.NewKeyringStore(); err == nil {
				store = s
			}
		}
		creators = append(creators, smbfile.NewCreator(store))
	}
	if !cfg.DisableArchives {
		creators = append(creators, arcfile.NewCreator())
	}
	creators = append(creators, localfile.NewCreator())
	return creators, nil
}

func resolveCreator(path string) (handle.Creator, error) {
	defaultRegistry.Init(buildCreators)
	return defaultRegistry.Resolve(path)
}

// CreateFile resolves the path to a creator and opens a handle. A nil
// handle plus an error carrying the foreign code reports failure; no
// creator claiming the path surfaces as file-not-found.
func CreateFile(name string, access AccessMode, share ShareMode, disposition Disposition, attrs FileAttr) (Handle, error) {
	if name == "" {
		return nil, fileerr.New(fileerr.InvalidParameter, "CreateFile", "", nil)
	}
	c, err := resolveCreator(name)
	if err != nil {
		return nil, err
	}
	return c.Open(name, handle.OpenOptions{
		Access:      access,
		Share:       share,
		Disposition: disposition,
		Attrs:       attrs,
	})
}

// CloseHandle releases a handle. Closing nil or an already-closed handle
// is rejected as invalid.
func CloseHandle(h Handle) error {
	if h == nil {
		return fileerr.New(fileerr.InvalidHandle, "CloseHandle", "", nil)
	}
	return h.Close()
}
