package handle

import (
	"os"

	"winfile/internal/fattr"
	"winfile/internal/fileerr"
)

// OSFlags translates the foreign access mask and creation disposition
// into native open flags. Shared by creators that open through an
// os.OpenFile-shaped call.
func (o OpenOptions) OSFlags() (int, error) {
	var flags int
	switch {
	case o.Access&GenericAll != 0:
		flags = os.O_RDWR
	case o.Access&GenericRead != 0 && o.Access&GenericWrite != 0:
		flags = os.O_RDWR
	case o.Access&GenericWrite != 0:
		flags = os.O_WRONLY
	default:
		flags = os.O_RDONLY
	}

	switch o.Disposition {
	case CreateNew:
		flags |= os.O_CREATE | os.O_EXCL
	case CreateAlways:
		flags |= os.O_CREATE | os.O_TRUNC
	case OpenExisting:
		// plain open
	case OpenAlways:
		flags |= os.O_CREATE
	case TruncateExisting:
		flags |= os.O_TRUNC
	default:
		return 0, fileerr.New(fileerr.InvalidParameter, "OSFlags", "", nil)
	}

	return flags, nil
}

// CreateMode picks the permission bits for newly created files from the
// requested attributes: a file created readonly loses its write bits.
func (o OpenOptions) CreateMode() os.FileMode {
	if o.Attrs&fattr.AttrReadOnly != 0 {
		return 0444
	}
	return 0666
}
