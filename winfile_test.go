package winfile

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"winfile/internal/fileerr"
)

func createTemp(t *testing.T, name string) (string, Handle) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	h, err := CreateFile(path, GenericRead|GenericWrite, 0, CreateAlways, 0)
	if err != nil {
		t.Fatal(err)
	}
	return path, h
}

func TestCreateWriteReadClose(t *testing.T) {
	_, h := createTemp(t, "f.txt")

	if n, err := WriteFile(h, []byte("payload")); err != nil || n != 7 {
		t.Fatalf("WriteFile = (%d, %v)", n, err)
	}
	if _, err := SetFilePointerEx(h, 0, FileBegin); err != nil {
		t.Fatal(err)
	}
	buf := make([]byte, 16)
	n, err := ReadFile(h, buf)
	if err != nil || string(buf[:n]) != "payload" {
		t.Fatalf("ReadFile = (%d, %v) %q", n, err, buf[:n])
	}

	if err := CloseHandle(h); err != nil {
		t.Fatal(err)
	}
	if err := CloseHandle(h); ErrorCode(err) != fileerr.InvalidHandle {
		t.Errorf("second CloseHandle = %v, want invalid-handle", err)
	}
}

func TestCreateFileEmptyName(t *testing.T) {
	_, err := CreateFile("", GenericRead, 0, OpenExisting, 0)
	if ErrorCode(err) != fileerr.InvalidParameter {
		t.Errorf("empty name: %v, want invalid-parameter", err)
	}
}

func TestCreateFileMissing(t *testing.T) {
	_, err := CreateFile(filepath.Join(t.TempDir(), "missing"), GenericRead, 0, OpenExisting, 0)
	if ErrorCode(err) != fileerr.FileNotFound {
		t.Errorf("missing file: %v, want file-not-found", err)
	}
}

func TestNilHandleIsRejectedEverywhere(t *testing.T) {
	checks := map[string]error{
		"ReadFile":          func() error { _, err := ReadFile(nil, nil); return err }(),
		"WriteFile":         func() error { _, err := WriteFile(nil, nil); return err }(),
		"ReadFileScatter":   func() error { _, err := ReadFileScatter(nil, nil); return err }(),
		"WriteFileGather":   func() error { _, err := WriteFileGather(nil, nil); return err }(),
		"ReadFileEx":        ReadFileEx(nil, nil),
		"WriteFileEx":       WriteFileEx(nil, nil),
		"FlushFileBuffers":  FlushFileBuffers(nil),
		"GetFileSize":       func() error { _, err := GetFileSize(nil, nil); return err }(),
		"SetFilePointerEx":  func() error { _, err := SetFilePointerEx(nil, 0, FileBegin); return err }(),
		"SetEndOfFile":      SetEndOfFile(nil),
		"LockFile":          LockFile(nil, 0, 0, 1, 0),
		"UnlockFile":        UnlockFile(nil, 0, 0, 1, 0),
		"SetFileTime":       SetFileTime(nil, nil, nil, nil),
		"GetFileInfoByHndl": func() error { _, err := GetFileInformationByHandle(nil); return err }(),
		"CloseHandle":       CloseHandle(nil),
	}
	for op, err := range checks {
		if ErrorCode(err) != fileerr.InvalidHandle {
			t.Errorf("%s(nil) = %v, want invalid-handle", op, err)
		}
	}
}

func TestGetFileSizeSplit(t *testing.T) {
	_, h := createTemp(t, "f")
	defer CloseHandle(h)
	WriteFile(h, make([]byte, 4096))

	var high uint32 = 0xFFFF_FFFF
	low, err := GetFileSize(h, &high)
	if err != nil {
		t.Fatal(err)
	}
	if low != 4096 || high != 0 {
		t.Errorf("GetFileSize = (%d, high %d)", low, high)
	}
}

func TestSetFilePointerSplit(t *testing.T) {
	_, h := createTemp(t, "f")
	defer CloseHandle(h)
	WriteFile(h, make([]byte, 200))

	var high int32
	low, err := SetFilePointer(h, 150, &high, FileBegin)
	if err != nil {
		t.Fatal(err)
	}
	if low != 150 || high != 0 {
		t.Errorf("SetFilePointer = (%d, high %d)", low, high)
	}

	// Negative distance with a nil high half is sign-extended.
	low, err = SetFilePointer(h, -50, nil, FileCurrent)
	if err != nil {
		t.Fatal(err)
	}
	if low != 100 {
		t.Errorf("position after relative seek = %d, want 100", low)
	}
}

func TestAsyncEntryPointsAreNotImplemented(t *testing.T) {
	_, h := createTemp(t, "f")
	defer CloseHandle(h)

	if err := ReadFileEx(h, nil); ErrorCode(err) != fileerr.CallNotImplemented {
		t.Errorf("ReadFileEx = %v, want call-not-implemented", err)
	}
	if err := WriteFileEx(h, nil); ErrorCode(err) != fileerr.CallNotImplemented {
		t.Errorf("WriteFileEx = %v, want call-not-implemented", err)
	}
}

func TestScatterGatherNotImplementedForLocalFiles(t *testing.T) {
	_, h := createTemp(t, "f")
	defer CloseHandle(h)

	if _, err := ReadFileScatter(h, nil); ErrorCode(err) != fileerr.CallNotImplemented {
		t.Errorf("ReadFileScatter = %v, want call-not-implemented", err)
	}
	if _, err := WriteFileGather(h, nil); ErrorCode(err) != fileerr.CallNotImplemented {
		t.Errorf("WriteFileGather = %v, want call-not-implemented", err)
	}
}

func newZip(t *testing.T, entries map[string]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "bundle.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	for name, body := range entries {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		io.WriteString(w, body)
	}
	zw.Close()
	f.Close()
	return path
}

func TestArchiveHandleThroughRegistry(t *testing.T) {
	zipPath := newZip(t, map[string]string{"inner.txt": "zipped"})

	h, err := CreateFile(filepath.Join(zipPath, "inner.txt"), GenericRead, 0, OpenExisting, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer CloseHandle(h)

	buf := make([]byte, 32)
	n, err := ReadFile(h, buf)
	if err != nil || string(buf[:n]) != "zipped" {
		t.Fatalf("ReadFile = (%d, %v) %q", n, err, buf[:n])
	}

	// Archive handles carry no write capability; the dispatcher reports
	// not-implemented rather than failing the handle.
	if _, err := WriteFile(h, []byte("x")); ErrorCode(err) != fileerr.CallNotImplemented {
		t.Errorf("WriteFile on archive handle = %v, want call-not-implemented", err)
	}

	// The handle stays usable for operations the kind does support.
	if size, err := GetFileSize(h, nil); err != nil || size != uint32(len("zipped")) {
		t.Errorf("GetFileSize after refused write = (%d, %v)", size, err)
	}
}

func TestLockFileThroughDispatcher(t *testing.T) {
	_, h := createTemp(t, "f")
	defer CloseHandle(h)
	WriteFile(h, make([]byte, 64))

	if err := LockFile(h, 0, 0, 32, 0); err != nil {
		t.Fatalf("LockFile: %v", err)
	}
	if err := UnlockFile(h, 0, 0, 32, 0); err != nil {
		t.Fatalf("UnlockFile: %v", err)
	}
	if err := LockFileEx(h, LockExclusive|LockfailImmediately, 0, 0, 32, 0); err != nil {
		t.Fatalf("LockFileEx: %v", err)
	}
	if err := UnlockFileEx(h, 0, 0, 32, 0); err != nil {
		t.Fatalf("UnlockFileEx: %v", err)
	}
}

func TestFindFirstFile(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"a.txt", "b.txt", "c.log"} {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0644); err != nil {
			t.Fatal(err)
		}
	}

	var fd FindData
	s, err := FindFirstFile(filepath.Join(dir, "*.txt"), &fd)
	if err != nil {
		t.Fatal(err)
	}

	names := map[string]bool{fd.Name: true}
	for {
		err := FindNextFile(s, &fd)
		if ErrorCode(err) == fileerr.NoMoreFiles {
			break
		}
		if err != nil {
			t.Fatal(err)
		}
		names[fd.Name] = true
	}
	if err := FindClose(s); err != nil {
		t.Fatal(err)
	}

	if len(names) != 2 || !names["a.txt"] || !names["b.txt"] {
		t.Errorf("enumerated %v, want a.txt and b.txt", names)
	}
}

func TestFindFirstFileZeroesRecordOnFailure(t *testing.T) {
	dir := t.TempDir()

	fd := FindData{Name: "stale", Attributes: AttrArchive, SizeLow: 99}
	s, err := FindFirstFile(filepath.Join(dir, "nomatch-*"), &fd)
	if s != nil {
		t.Fatal("search handle returned on failure")
	}
	if ErrorCode(err) != fileerr.NoMoreFiles {
		t.Fatalf("empty match: %v, want no-more-files", err)
	}
	if fd != (FindData{}) {
		t.Errorf("record not zeroed on failure: %+v", fd)
	}
}

func TestFindFirstFileNilRecord(t *testing.T) {
	_, err := FindFirstFile("/tmp/*", nil)
	if ErrorCode(err) != fileerr.InvalidParameter {
		t.Errorf("nil record: %v, want invalid-parameter", err)
	}
}

func TestFindCloseNil(t *testing.T) {
	if err := FindClose(nil); ErrorCode(err) != fileerr.InvalidHandle {
		t.Errorf("FindClose(nil) = %v, want invalid-handle", err)
	}
}
