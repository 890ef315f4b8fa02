// Package fwatch backs the change-notification triad
// (FindFirstChangeNotification / FindNextChangeNotification /
// FindCloseChangeNotification) with inotify-style events.
package fwatch

import (
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"winfile/internal/fileerr"
)

// Filter selects which change classes signal the notification.
type Filter uint32

const (
	NotifyFileName   Filter = 0x01
	NotifyDirName    Filter = 0x02
	NotifyAttributes Filter = 0x04
	NotifySize       Filter = 0x08
	NotifyLastWrite  Filter = 0x10
)

// NotifyAll is the everything filter.
const NotifyAll = NotifyFileName | NotifyDirName | NotifyAttributes | NotifySize | NotifyLastWrite

// Notification is a waitable change-notification handle. It stays
// signaled once a matching change arrives until Rearm consumes the
// state, mirroring the emulated semantics.
type Notification struct {
	w      *fsnotify.Watcher
	signal chan struct{}
	closed bool
}

// New starts watching path. With subtree set, directories below path
// that exist at creation time are watched too; directories created
// later are picked up on a best-effort basis when events name them.
func New(path string, subtree bool, filter Filter) (*Notification, error) {
	const op = "FindFirstChangeNotification"

	fi, err := os.Stat(path)
	if err != nil {
		return nil, fileerr.Wrap(op, path, err)
	}
	if !fi.IsDir() {
		return nil, fileerr.New(fileerr.PathNotFound, op, path, nil)
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fileerr.Wrap(op, path, err)
	}
	if err := w.Add(path); err != nil {
		w.Close()
		return nil, fileerr.Wrap(op, path, err)
	}
	if subtree {
		filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err == nil && d.IsDir() && p != path {
				w.Add(p)
			}
			return nil
		})
	}

	n := &Notification{w: w, signal: make(chan struct{}, 1)}
	go n.pump(filter, subtree)
	return n, nil
}

func (n *Notification) pump(filter Filter, subtree bool) {
	for {
		select {
		case ev, ok := <-n.w.Events:
			if !ok {
				return
			}
			if subtree && ev.Op.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					n.w.Add(ev.Name)
				}
			}
			if matches(filter, ev.Op) {
				select {
				case n.signal <- struct{}{}:
				default:
				}
			}
		case _, ok := <-n.w.Errors:
			if !ok {
				return
			}
		}
	}
}

func matches(filter Filter, op fsnotify.Op) bool {
	if op.Has(fsnotify.Create) || op.Has(fsnotify.Remove) || op.Has(fsnotify.Rename) {
		return filter&(NotifyFileName|NotifyDirName) != 0
	}
	if op.Has(fsnotify.Write) {
		return filter&(NotifyLastWrite|NotifySize) != 0
	}
	if op.Has(fsnotify.Chmod) {
		return filter&NotifyAttributes != 0
	}
	return false
}

// Wait blocks until the notification is signaled or the timeout
// elapses. A zero timeout polls.
func (n *Notification) Wait(timeout time.Duration) bool {
	if n.closed {
		return false
	}
	if timeout == 0 {
		select {
		case <-n.signal:
			return true
		default:
			return false
		}
	}
	t := time.NewTimer(timeout)
	defer t.Stop()
	select {
	case <-n.signal:
		return true
	case <-t.C:
		return false
	}
}

// Rearm drops any pending signal so the next Wait reflects only future
// changes.
func (n *Notification) Rearm() error {
	if n.closed {
		return fileerr.New(fileerr.InvalidHandle, "FindNextChangeNotification", "", nil)
	}
	select {
	case <-n.signal:
	default:
	}
	return nil
}

// Close stops watching. A second close is rejected.
func (n *Notification) Close() error {
	if n.closed {
		return fileerr.New(fileerr.InvalidHandle, "FindCloseChangeNotification", "", nil)
	}
	n.closed = true
	if err := n.w.Close(); err != nil {
		return fileerr.Wrap("FindCloseChangeNotification", "", err)
	}
	return nil
}
