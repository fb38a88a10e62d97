// Package storage is the terminal client's durable key-value store, the
// counterpart of a browser's local storage. Values are opaque strings and
// every store is scoped to one API origin.
package storage

import "errors"

// ErrNotFound is returned by Get for a key that was never set or has been
// deleted.
var ErrNotFound = errors.New("storage: key not found")

// Keys used by the storefront client.
const (
	KeyLoggedIn = "isLoggedIn"
	KeyUser     = "user"
	KeyToken    = "token"
	KeyCart     = "cart"
)

type Store interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(keys ...string) error
}
