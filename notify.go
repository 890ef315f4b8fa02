package winfile

import (
	"time"

	"winfile/internal/fileerr"
	"winfile/internal/fwatch"
)

// FindFirstChangeNotification starts watching a directory for changes
// matching filter. The returned notification latches once signaled; use
// WaitForChange to observe it and FindNextChangeNotification to rearm.
func FindFirstChangeNotification(path string, watchSubtree bool, filter NotifyFilter) (*Notification, error) {
	if path == "" {
		return nil, fileerr.New(fileerr.InvalidParameter, "FindFirstChangeNotification", "", nil)
	}
	return fwatch.New(path, watchSubtree, filter)
}

// WaitForChange blocks until the notification signals or the timeout
// elapses; a zero timeout polls. Reports whether a change was observed.
func WaitForChange(n *Notification, timeout time.Duration) bool {
	if n == nil {
		return false
	}
	return n.Wait(timeout)
}

// FindNextChangeNotification rearms the notification so the next wait
// reflects only changes after this call.
func FindNextChangeNotification(n *Notification) error {
	if n == nil {
		return fileerr.New(fileerr.InvalidHandle, "FindNextChangeNotification", "", nil)
	}
	return n.Rearm()
}

// FindCloseChangeNotification stops watching. A second close is
// rejected.
func FindCloseChangeNotification(n *Notification) error {
	if n == nil {
		return fileerr.New(fileerr.InvalidHandle, "FindCloseChangeNotification", "", nil)
	}
	return n.Close()
}
