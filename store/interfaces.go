package store

import (
	"context"

	"cyberlearn/remote"
)

// RemoteCatalog is the document backend the store syncs against. Its
// unavailability is expected and never fatal.
type RemoteCatalog interface {
	ListAll(ctx context.Context) ([]remote.Record, error)
	UpsertMany(ctx context.Context, records []remote.Record) error
	DeleteOne(ctx context.Context, id string) error
}

// Mirror is the on-device persisted cache of the merged catalog plus the
// delete tombstones.
type Mirror interface {
	Read() (string, bool)
	Write(blob string) error
	Tombstones() map[string]bool
	AddTombstone(id string) error
	ClearTombstone(id string) error
}
