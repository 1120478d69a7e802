// Package storage provides the key-value slots the task list persists into.
//
// The contract mirrors browser local storage: string keys map to string
// values, a missing key is not an error, and writes replace the previous
// value wholesale. All backends must implement the StorageBackend interface
// to be usable by the task list controller.
package storage

// StorageBackend defines the contract for key-value persistence.
//
// Implementations should make SetItem atomic so a crash mid-write never
// leaves a half-written value behind.
type StorageBackend interface {
	// GetItem returns the value stored under key.
	//
	// Returns ok=false with a nil error when the key has never been set.
	// Returns an error only if the underlying store cannot be read.
	GetItem(key string) (value string, ok bool, err error)

	// SetItem stores value under key, replacing any previous value.
	//
	// Returns an error if the value could not be written durably.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error
}

// Closer is implemented by backends that hold resources (connection pools,
// client sessions) which should be released on shutdown.
type Closer interface {
	Close() error
}

// Close releases backend resources if the backend holds any.
func Close(b StorageBackend) error {
	if c, ok := b.(Closer); ok {
		return c.Close()
	}
	return nil
}
