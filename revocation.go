package licensekey

import "time"

// RevocationStore persists revoked seeds so that a Verifier's revocation
// set survives restarts. Adding a seed twice is not an error.
type RevocationStore interface {
	// Add records seed as revoked at the given time.
	Add(seed uint64, at time.Time) error
	// List returns every revoked seed once, in no particular order.
	List() ([]uint64, error)
	// Close releases the underlying resources.
	Close() error
}
