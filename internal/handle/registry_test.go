package handle

import (
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"winfile/internal/fileerr"
)

type fakeCreator struct {
	prefix string
}

func (c *fakeCreator) Claims(path string) bool {
	return c.prefix == "" || strings.HasPrefix(path, c.prefix)
}

func (c *fakeCreator) Open(path string, opts OpenOptions) (Handle, error) {
	return nil, errors.New("not opened in tests")
}

func TestRegistryInitRunsBuildOnce(t *testing.T) {
	var r Registry
	var builds atomic.Int32

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Init(func() ([]Creator, error) {
				builds.Add(1)
				return []Creator{&fakeCreator{}}, nil
			})
			if _, err := r.Resolve("/anything"); err != nil {
				t.Errorf("Resolve after Init: %v", err)
			}
		}()
	}
	wg.Wait()

	if n := builds.Load(); n != 1 {
		t.Errorf("build ran %d times, want 1", n)
	}
}

func TestRegistryResolveFirstClaimWins(t *testing.T) {
	special := &fakeCreator{prefix: "net:"}
	catchAll := &fakeCreator{}

	var r Registry
	r.Init(func() ([]Creator, error) {
		return []Creator{special, catchAll}, nil
	})

	c, err := r.Resolve("net:host/share")
	if err != nil {
		t.Fatal(err)
	}
	if c != Creator(special) {
		t.Error("special path resolved past the claiming creator")
	}

	c, err = r.Resolve("/local/file")
	if err != nil {
		t.Fatal(err)
	}
	if c != Creator(catchAll) {
		t.Error("local path should fall through to the catch-all creator")
	}
}

func TestRegistryResolveNoClaim(t *testing.T) {
	var r Registry
	r.Init(func() ([]Creator, error) {
		return []Creator{&fakeCreator{prefix: "net:"}}, nil
	})

	_, err := r.Resolve("/unclaimed")
	if fileerr.CodeOf(err) != fileerr.FileNotFound {
		t.Errorf("unclaimed path: got %v, want file-not-found", err)
	}
}

func TestRegistryPoisonedInit(t *testing.T) {
	var r Registry
	boom := errors.New("config unreadable")
	r.Init(func() ([]Creator, error) {
		return nil, boom
	})

	// A failed build poisons every later resolution, and the build does
	// not get a second chance.
	for i := 0; i < 3; i++ {
		_, err := r.Resolve("/any")
		if fileerr.CodeOf(err) != fileerr.InitFailed {
			t.Fatalf("resolve %d: got %v, want init-failed", i, err)
		}
		if !errors.Is(err, boom) {
			t.Fatalf("resolve %d: build error not carried: %v", i, err)
		}
	}

	r.Init(func() ([]Creator, error) {
		t.Error("build ran again after failure")
		return nil, nil
	})
}
