//go:build linux
// +build linux

package fattr

import (
	"os"
	"syscall"
	"time"
)

// StatTimes extracts access and change times from the platform stat
// structure. Falls back to the modification time when the FileInfo does
// not carry a native stat (virtual providers).
func StatTimes(fi os.FileInfo) (atime, ctime time.Time) {
	if st, ok := fi.Sys().(*syscall.Stat_t); ok {
		atime = time.Unix(st.Atim.Sec, st.Atim.Nsec)
		ctime = time.Unix(st.Ctim.Sec, st.Ctim.Nsec)
		return atime, ctime
	}
	return fi.ModTime(), fi.ModTime()
}
