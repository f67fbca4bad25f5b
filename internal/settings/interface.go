package settings

import (
	"context"
	"errors"
)

// ErrInvalidKey is returned for keys a backend cannot address.
var ErrInvalidKey = errors.New("invalid settings key")

// Store is the read/write surface the stores need. Get returns (nil, nil)
// when the key is absent.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Repository is a Store that can also enumerate and drop keys.
type Repository interface {
	Store
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
	Clear(ctx context.Context) error
}

// ChangeFunc is told which key changed outside this process.
type ChangeFunc func(key string)

// Watcher is implemented by backends that can detect external writes.
type Watcher interface {
	Watch(ctx context.Context, fn ChangeFunc) error
}

// ErrUnsupportedBackend is returned for a storage backend name that no
// repository implements.
var ErrUnsupportedBackend = errors.New("unsupported settings backend")
