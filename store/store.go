// Package store is the reconciliation core of the platform: it merges the
// remote catalog, the local mirror and the baked-in seed into one
// authoritative in-memory collection and keeps that collection usable when
// every backend is down.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"sync"
	"time"

	"cyberlearn/catalog"
	"cyberlearn/gating"
	"cyberlearn/models/content"
	"cyberlearn/remote"
)

var (
	// ErrForbidden is returned when a non-admin caller attempts a mutation.
	// Authorization is enforced here, before any local state changes, not
	// just at the backend.
	ErrForbidden = errors.New("admin role required")

	// ErrNotFound is returned by Delete for an unknown id.
	ErrNotFound = errors.New("content item not found")
)

// SyncStatus reports the remote phase of a mutation's two-phase commit. The
// local phase always succeeds and is authoritative for callers; the remote
// phase is best-effort.
type SyncStatus string

const (
	SyncPending SyncStatus = "pending"
	SyncSynced  SyncStatus = "synced"
	SyncFailed  SyncStatus = "failed"
	// SyncUnknown marks entries sourced from the mirror or the seed during a
	// load: the remote never confirmed them, so they are neither synced nor
	// failed.
	SyncUnknown SyncStatus = "unknown"
)

// Store owns the canonical in-memory collection. One instance per process;
// construct with New, seed with Load, drain with Close.
type Store struct {
	remote   RemoteCatalog
	mirror   Mirror
	defaults []content.ContentItem

	mu        sync.Mutex
	items     []content.ContentItem
	syncState map[string]SyncStatus
	loading   bool
	lastErr   string

	wg sync.WaitGroup
}

func New(rc RemoteCatalog, m Mirror, defaults []content.ContentItem) *Store {
	return &Store{
		remote:    rc,
		mirror:    m,
		defaults:  defaults,
		syncState: make(map[string]SyncStatus),
	}
}

// Load builds the reconciled collection. It tries the remote catalog first;
// on any remote failure it falls back to the local mirror, and a missing or
// unparseable mirror falls back to the seed alone. Every branch applies the
// same merge policy, so the result is non-empty whenever the seed is.
// Re-invocable at any time; the in-flight flag is observable via Loading.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	s.loading = true
	s.mu.Unlock()

	tombs := s.mirror.Tombstones()
	defaults := s.liveDefaults(tombs)

	var candidates []content.ContentItem
	fromRemote := false

	records, err := s.remote.ListAll(ctx)
	if err == nil {
		candidates = make([]content.ContentItem, 0, len(records))
		for _, rec := range records {
			candidates = append(candidates, rec.ToItem())
		}
		fromRemote = true
	} else {
		if blob, ok := s.mirror.Read(); ok {
			var mirrored []content.ContentItem
			if jsonErr := json.Unmarshal([]byte(blob), &mirrored); jsonErr == nil {
				candidates = mirrored
			}
			// A malformed blob is treated as absent.
		}
	}

	merged := Merge(candidates, defaults)

	// Only entries the remote listing actually returned count as synced;
	// mirror- and seed-sourced entries have no confirmed remote state.
	confirmed := make(map[string]bool, len(records))
	if fromRemote {
		for _, rec := range records {
			confirmed[rec.ID] = true
		}
	}

	s.mu.Lock()
	s.items = merged
	for _, it := range merged {
		st, tracked := s.syncState[it.ID]
		switch {
		case confirmed[it.ID] && (!tracked || st == SyncUnknown):
			// A pending or failed mutation keeps its state: the listing may
			// predate the write it reports on.
			s.syncState[it.ID] = SyncSynced
		case !tracked:
			s.syncState[it.ID] = SyncUnknown
		}
	}
	if fromRemote {
		s.lastErr = ""
		s.writeMirrorLocked()
	} else if err != nil {
		s.lastErr = "remote catalog unavailable: " + err.Error()
	}
	s.loading = false
	s.mu.Unlock()

	if fromRemote {
		s.pushMissingDefaults(records, defaults)
	}
}

// liveDefaults returns the seed minus tombstoned ids.
func (s *Store) liveDefaults(tombs map[string]bool) []content.ContentItem {
	out := make([]content.ContentItem, 0, len(s.defaults))
	for _, it := range s.defaults {
		if tombs[it.ID] {
			continue
		}
		out = append(out, it.Clone())
	}
	return out
}

// pushMissingDefaults self-heals an unpopulated backend by writing back any
// seed entries the remote set lacked. Failures are ignored; the next Load
// tries again.
func (s *Store) pushMissingDefaults(records []remote.Record, defaults []content.ContentItem) {
	present := make(map[string]bool, len(records))
	for _, rec := range records {
		present[rec.ID] = true
	}

	var missing []remote.Record
	for _, it := range defaults {
		if !present[it.ID] {
			missing = append(missing, remote.FromItem(it))
		}
	}
	if len(missing) == 0 {
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.remote.UpsertMany(context.Background(), missing); err != nil {
			log.Printf("Seeding remote catalog failed (will retry on next load): %v", err)
			return
		}
		s.mu.Lock()
		for _, rec := range missing {
			if s.syncState[rec.ID] == SyncUnknown {
				s.syncState[rec.ID] = SyncSynced
			}
		}
		s.mu.Unlock()
	}()
}

// Upsert commits a working copy. The local phase (in-memory collection and
// mirror) completes before this returns; the remote phase runs in the
// background and reports through SyncStatus. No rollback on remote failure,
// no automatic retry.
func (s *Store) Upsert(role string, item content.ContentItem) (content.ContentItem, error) {
	if role != gating.RoleAdmin {
		return content.ContentItem{}, ErrForbidden
	}

	// Detach from the caller's backing arrays: the committed item must not
	// change when the caller keeps editing its working copy.
	item = item.Clone()

	if item.ID == "" {
		item.ID = catalog.NewID(string(item.Type))
	}
	if item.Slug == "" {
		item.Slug = catalog.Slugify(item.Title)
	}
	item.NormalizeStyle()
	item.Renumber()

	now := time.Now().UTC()
	item.UpdatedAt = now

	s.mu.Lock()
	idx := s.indexOfLocked(item.ID)
	if idx >= 0 {
		// createdAt is set once and survives every edit.
		item.CreatedAt = s.items[idx].CreatedAt
		s.items[idx] = item
	} else {
		if item.CreatedAt.IsZero() {
			item.CreatedAt = now
		}
		s.items = append(s.items, item)
	}
	s.syncState[item.ID] = SyncPending
	s.writeMirrorLocked()
	saved := item.Clone()
	s.mu.Unlock()

	if err := s.mirror.ClearTombstone(item.ID); err != nil {
		log.Printf("Clearing tombstone for %s failed: %v", item.ID, err)
	}

	s.wg.Add(1)
	go func(rec remote.Record, id string) {
		defer s.wg.Done()
		err := s.remote.UpsertMany(context.Background(), []remote.Record{rec})
		s.mu.Lock()
		if err != nil {
			s.syncState[id] = SyncFailed
			s.lastErr = "remote save failed for " + id + ": " + err.Error()
		} else {
			s.syncState[id] = SyncSynced
		}
		s.mu.Unlock()
	}(remote.FromItem(item), item.ID)

	return saved, nil
}

// Delete removes an item. Same two-phase shape as Upsert: memory, mirror and
// tombstone synchronously, remote deletion in the background.
func (s *Store) Delete(role, id string) error {
	if role != gating.RoleAdmin {
		return ErrForbidden
	}

	s.mu.Lock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		s.mu.Unlock()
		return ErrNotFound
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	delete(s.syncState, id)
	s.writeMirrorLocked()
	s.mu.Unlock()

	if err := s.mirror.AddTombstone(id); err != nil {
		log.Printf("Recording tombstone for %s failed: %v", id, err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.remote.DeleteOne(context.Background(), id); err != nil {
			s.mu.Lock()
			s.lastErr = "remote delete failed for " + id + ": " + err.Error()
			s.mu.Unlock()
		}
	}()

	return nil
}

// Items returns a deep copy of the whole collection in canonical order.
func (s *Store) Items() []content.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]content.ContentItem, len(s.items))
	for i, it := range s.items {
		out[i] = it.Clone()
	}
	return out
}

// ByType is the derived read-only projection restricted to one type. Always
// consistent with the canonical collection; no separate fetch.
func (s *Store) ByType(t content.ItemType) []content.ContentItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []content.ContentItem
	for _, it := range s.items {
		if it.Type == t {
			out = append(out, it.Clone())
		}
	}
	return out
}

// BySlug resolves an item by type and slug, the lookup key reader surfaces
// use.
func (s *Store) BySlug(t content.ItemType, slug string) (content.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range s.items {
		if it.Type == t && it.Slug == slug {
			return it.Clone(), true
		}
	}
	return content.ContentItem{}, false
}

// ByID resolves an item by id.
func (s *Store) ByID(id string) (content.ContentItem, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOfLocked(id)
	if idx < 0 {
		return content.ContentItem{}, false
	}
	return s.items[idx].Clone(), true
}

// SyncStatus reports the remote phase for the given id.
func (s *Store) SyncStatus(id string) (SyncStatus, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.syncState[id]
	return st, ok
}

// LastError returns the most recent non-fatal error string, blank when the
// last remote interaction succeeded.
func (s *Store) LastError() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

// Loading reports whether a Load is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Close waits for in-flight remote writes to finish.
func (s *Store) Close() {
	s.wg.Wait()
}

func (s *Store) indexOfLocked(id string) int {
	for i, it := range s.items {
		if it.ID == id {
			return i
		}
	}
	return -1
}

func (s *Store) writeMirrorLocked() {
	blob, err := json.Marshal(s.items)
	if err != nil {
		log.Printf("Serializing catalog for mirror failed: %v", err)
		return
	}
	if err := s.mirror.Write(string(blob)); err != nil {
		log.Printf("Writing local mirror failed: %v", err)
	}
}
