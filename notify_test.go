package winfile

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"winfile/internal/fileerr"
)

func TestChangeNotificationTriad(t *testing.T) {
	dir := t.TempDir()

	n, err := FindFirstChangeNotification(dir, false, NotifyAll)
	if err != nil {
		t.Fatal(err)
	}

	if err := os.WriteFile(filepath.Join(dir, "touched"), nil, 0644); err != nil {
		t.Fatal(err)
	}
	if !WaitForChange(n, 3*time.Second) {
		t.Error("no signal after change")
	}

	if err := FindNextChangeNotification(n); err != nil {
		t.Fatal(err)
	}
	if WaitForChange(n, 0) {
		t.Error("signal survived rearm")
	}

	if err := FindCloseChangeNotification(n); err != nil {
		t.Fatal(err)
	}
	if err := FindCloseChangeNotification(n); ErrorCode(err) != fileerr.InvalidHandle {
		t.Errorf("second close = %v, want invalid-handle", err)
	}
}

func TestChangeNotificationNilChecks(t *testing.T) {
	if _, err := FindFirstChangeNotification("", false, NotifyAll); ErrorCode(err) != fileerr.InvalidParameter {
		t.Errorf("empty path: %v, want invalid-parameter", err)
	}
	if WaitForChange(nil, 0) {
		t.Error("WaitForChange(nil) reported a change")
	}
	if err := FindNextChangeNotification(nil); ErrorCode(err) != fileerr.InvalidHandle {
		t.Errorf("rearm nil: %v, want invalid-handle", err)
	}
	if err := FindCloseChangeNotification(nil); ErrorCode(err) != fileerr.InvalidHandle {
		t.Errorf("close nil: %v, want invalid-handle", err)
	}
}
