// Package store keeps encoded games on disk.
package store

import (
	"context"
	"fmt"
)

// Store is a save backend bound to one slot. ReadSave returns an error
// wrapping fs.ErrNotExist when nothing has been saved yet.
type Store interface {
	ReadSave(ctx context.Context) ([]byte, error)
	WriteSave(ctx context.Context, data []byte) error
	DeleteSave(ctx context.Context) error
	// Slots lists every save reachable from the same path.
	Slots(ctx context.Context) ([]SlotInfo, error)
	Close() error
}

// Open returns the backend named by kind ("json" or "sqlite") at path,
// bound to slot. An empty slot means DefaultSlot.
func Open(kind, path, slot string) (Store, error) {
	switch kind {
	case "", "json":
		return NewFile(path, slot), nil
	case "sqlite":
		return OpenSQLite(path, slot)
	default:
		return nil, fmt.Errorf("unknown save backend %q", kind)
	}
}
