package secret

import (
	"strings"

	"github.com/99designs/keyring"
)

const serviceName = "winfile.smb"

type keyringStore struct {
	ring keyring.Keyring
}

// NewKeyringStore opens the OS keyring. Callers fall back to running
// without stored credentials when this fails (headless hosts).
func NewKeyringStore() (Store, error) {
	r, err := keyring.Open(keyring.Config{ServiceName: serviceName})
	if err != nil {
		return nil, err
	}
	return &keyringStore{ring: r}, nil
}

// NewStoreFrom wraps an existing keyring backend. Tests use this with an
// in-memory array keyring.
func NewStoreFrom(r keyring.Keyring) Store {
	return &keyringStore{ring: r}
}

func storeKey(host, share string) string {
	return host + "|" + share
}

// Get returns stored credentials for host/share. The item's Description
// holds "domain\user" (or just "user"); Data holds the password.
func (s *keyringStore) Get(host, share string) (Credentials, bool, error) {
	item, err := s.ring.Get(storeKey(host, share))
	if err != nil {
		if err == keyring.ErrKeyNotFound {
			return Credentials{}, false, nil
		}
		return Credentials{}, false, err
	}

	var c Credentials
	if i := strings.IndexByte(item.Description, '\\'); i >= 0 {
		c.Domain = item.Description[:i]
		c.Username = item.Description[i+1:]
	} else {
		c.Username = item.Description
	}
	c.Password = string(item.Data)
	return c, true, nil
}

func (s *keyringStore) Set(host, share string, c Credentials) error {
	desc := c.Username
	if c.Domain != "" {
		desc = c.Domain + "\\" + c.Username
	}
	return s.ring.Set(keyring.Item{
		Key:         storeKey(host, share),
		Data:        []byte(c.Password),
		Description: desc,
		Label:       serviceName,
	})
}

func (s *keyringStore) Delete(host, share string) error {
	return s.ring.Remove(storeKey(host, share))
}
