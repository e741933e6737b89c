package store

import (
	"context"
	"sync"

	"cyberlearn/remote"
)

// fakeRemote is an in-memory RemoteCatalog for store tests.
type fakeRemote struct {
	mu sync.Mutex

	records   []remote.Record
	listErr   error
	upsertErr error
	deleteErr error

	upserts [][]remote.Record
	deletes []string
}

func (f *fakeRemote) ListAll(_ context.Context) ([]remote.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]remote.Record, len(f.records))
	copy(out, f.records)
	return out, nil
}

func (f *fakeRemote) UpsertMany(_ context.Context, records []remote.Record) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.upsertErr != nil {
		return f.upsertErr
	}
	f.upserts = append(f.upserts, records)
	return nil
}

func (f *fakeRemote) DeleteOne(_ context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deletes = append(f.deletes, id)
	return nil
}

func (f *fakeRemote) upsertCalls() [][]remote.Record {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([][]remote.Record, len(f.upserts))
	copy(out, f.upserts)
	return out
}

func (f *fakeRemote) deleteCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.deletes))
	copy(out, f.deletes)
	return out
}

// fakeMirror is an in-memory Mirror for store tests.
type fakeMirror struct {
	mu sync.Mutex

	blob   string
	hasOne bool
	tombs  map[string]bool

	writeErr error
	writes   int
}

func newFakeMirror() *fakeMirror {
	return &fakeMirror{tombs: map[string]bool{}}
}

func (f *fakeMirror) Read() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.blob, f.hasOne
}

func (f *fakeMirror) Write(blob string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.blob = blob
	f.hasOne = true
	f.writes++
	return nil
}

func (f *fakeMirror) Tombstones() map[string]bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make(map[string]bool, len(f.tombs))
	for k, v := range f.tombs {
		out[k] = v
	}
	return out
}

func (f *fakeMirror) AddTombstone(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.tombs[id] = true
	return nil
}

func (f *fakeMirror) ClearTombstone(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tombs, id)
	return nil
}
