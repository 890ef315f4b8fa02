package winfile

import (
	"winfile/internal/fattr"
	"winfile/internal/fenum"
	"winfile/internal/fileerr"
)

// FindFirstFile opens a wildcard search and fills fd with the first
// matching entry. The record is zeroed before anything else, so on
// failure the caller never sees stale contents. A search that matches
// nothing fails with no-more-files and returns no search handle.
func FindFirstFile(path string, fd *FindData) (*Search, error) {
	const op = "FindFirstFile"

	if fd == nil {
		return nil, fileerr.New(fileerr.InvalidParameter, op, path, nil)
	}
	*fd = fattr.FindData{}
	if path == "" {
		return nil, fileerr.New(fileerr.BadArguments, op, path, nil)
	}

	s, err := fenum.NewSearch(path)
	if err != nil {
		return nil, err
	}
	if err := s.Next(fd); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// FindNextFile advances the search and fills fd with the next matching
// entry. Exhaustion reports no-more-files and stays that way.
func FindNextFile(s *Search, fd *FindData) error {
	return s.Next(fd)
}

// FindClose releases a search. A nil, foreign, or already-closed search
// is rejected as an invalid handle.
func FindClose(s *Search) error {
	return s.Close()
}
