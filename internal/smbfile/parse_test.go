package smbfile

import (
	"testing"

	"winfile/internal/secret"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name string
		path string
		want Location
		ok   bool
	}{
		{
			"url bare",
			"smb://server/share/dir/file.txt",
			Location{Host: "server", Share: "share", Inner: "dir/file.txt"},
			true,
		},
		{
			"url share root",
			"smb://server/share",
			Location{Host: "server", Share: "share"},
			true,
		},
		{
			"url with user",
			"smb://alice@server/share/f",
			Location{Host: "server", Share: "share", Inner: "f",
				Creds: secret.Credentials{Username: "alice"}},
			true,
		},
		{
			"url with domain and password",
			"smb://CORP;alice:pw@server/share/f",
			Location{Host: "server", Share: "share", Inner: "f",
				Creds: secret.Credentials{Domain: "CORP", Username: "alice", Password: "pw"}},
			true,
		},
		{
			"url with backslash domain",
			`smb://CORP\alice@server/share/f`,
			Location{Host: "server", Share: "share", Inner: "f",
				Creds: secret.Credentials{Domain: "CORP", Username: "alice"}},
			true,
		},
		{
			"url password containing at sign",
			"smb://alice:p@ss@server/share/f",
			Location{Host: "server", Share: "share", Inner: "f",
				Creds: secret.Credentials{Username: "alice", Password: "p@ss"}},
			true,
		},
		{
			"unc",
			`\\server\share\dir\file.txt`,
			Location{Host: "server", Share: "share", Inner: "dir/file.txt"},
			true,
		},
		{
			"unc share root",
			`\\server\share`,
			Location{Host: "server", Share: "share"},
			true,
		},
		{"url missing share", "smb://server", Location{}, false},
		{"unc missing share", `\\server`, Location{}, false},
		{"plain path", "/var/log/syslog", Location{}, false},
		{"relative path", "docs/readme.md", Location{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Parse(tt.path)
			if ok != tt.ok {
				t.Fatalf("Parse(%q) ok = %v, want %v", tt.path, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("Parse(%q) = %+v, want %+v", tt.path, got, tt.want)
			}
		})
	}
}
