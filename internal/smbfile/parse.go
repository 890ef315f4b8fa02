package smbfile

import (
	"strings"

	"winfile/internal/secret"
)

// Location is the parsed form of an SMB path.
type Location struct {
	Host  string
	Share string
	Inner string // path below the share, slash-separated, no leading slash
	Creds secret.Credentials
}

// Parse recognizes the two accepted addressing forms:
//
//	smb://[domain;user[:pass]@]host/share/seg...
//	\\host\share\seg...
//
// Claiming is purely syntactic: a path in either form is an SMB path
// whether or not the host answers.
func Parse(path string) (Location, bool) {
	s := strings.TrimSpace(path)
	switch {
	case strings.HasPrefix(strings.ToLower(s), "smb://"):
		return parseURL(s)
	case strings.HasPrefix(s, `\\`):
		return parseUNC(s)
	default:
		return Location{}, false
	}
}

func parseURL(s string) (Location, bool) {
	rest := s[len("smb://"):]

	var loc Location
	if at := strings.LastIndexByte(rest, '@'); at >= 0 {
		cred := rest[:at]
		rest = rest[at+1:]
		if colon := strings.IndexByte(cred, ':'); colon >= 0 {
			loc.Creds.Password = cred[colon+1:]
			cred = cred[:colon]
		}
		// "domain;user" or "domain\user", else just the user
		if sep := strings.IndexAny(cred, `;\`); sep >= 0 {
			loc.Creds.Domain = cred[:sep]
			loc.Creds.Username = cred[sep+1:]
		} else {
			loc.Creds.Username = cred
		}
	}

	parts := strings.Split(rest, "/")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Location{}, false
	}
	loc.Host = parts[0]
	loc.Share = parts[1]
	loc.Inner = strings.Join(parts[2:], "/")
	return loc, true
}

func parseUNC(s string) (Location, bool) {
	parts := strings.Split(strings.TrimPrefix(s, `\\`), `\`)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Location{}, false
	}
	return Location{
		Host:  parts[0],
		Share: parts[1],
		Inner: strings.Join(parts[2:], "/"),
	}, true
}
