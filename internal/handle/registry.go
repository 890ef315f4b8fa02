package handle

import (
	"sync"

	"winfile/internal/fileerr"
)

// Creator recognizes a path's addressing scheme and opens it into a
// concrete handle. Creators are registered once in a fixed order; the
// first creator whose Claims predicate accepts a path wins.
type Creator interface {
	Claims(path string) bool
	Open(path string, opts OpenOptions) (Handle, error)
}

// Registry holds the ordered creator list behind a one-time
// initialization guard. Many goroutines may call Resolve concurrently on
// first use; exactly one runs the build function and all of them observe
// either the fully populated list or a consistent failure.
type Registry struct {
	once     sync.Once
	creators []Creator
	err      error
}

// Init installs the creator list. The build function runs at most once
// for the lifetime of the registry; later calls are no-ops.
func (r *Registry) Init(build func() ([]Creator, error)) {
	r.once.Do(func() {
		r.creators, r.err = build()
	})
}

// Resolve returns the first creator claiming the path. The registry must
// have been initialized; a failed initialization poisons every
// resolution with an init-failure condition.
func (r *Registry) Resolve(path string) (Creator, error) {
	if r.err != nil {
		return nil, fileerr.New(fileerr.InitFailed, "Resolve", path, r.err)
	}
	for _, c := range r.creators {
		if c.Claims(path) {
			return c, nil
		}
	}
	return nil, fileerr.New(fileerr.FileNotFound, "Resolve", path, nil)
}
