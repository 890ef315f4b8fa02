// Package secret stores SMB credentials in the OS keyring, keyed by
// host/share. The SMB handle creator consults it when a path carries no
// inline credentials.
package secret

// Credentials are SMB authentication parameters.
type Credentials struct {
	Domain   string
	Username string
	Password string
}

// Store abstracts a secure credentials store. Implementations must be
// safe for concurrent use.
type Store interface {
	Get(host, share string) (Credentials, bool, error)
	Set(host, share string, c Credentials) error
	Delete(host, share string) error
}
