//go:build !linux
// +build !linux

package fattr

import (
	"os"
	"time"
)

// StatTimes on platforms without a known stat layout approximates access
// and change times with the modification time.
func StatTimes(fi os.FileInfo) (atime, ctime time.Time) {
	return fi.ModTime(), fi.ModTime()
}
