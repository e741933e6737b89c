package store

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cyberlearn/catalog"
	"cyberlearn/gating"
	"cyberlearn/models/content"
	"cyberlearn/remote"
)

func newTestStore(rc *fakeRemote, m *fakeMirror) *Store {
	return New(rc, m, catalog.Defaults())
}

func TestLoad_RemoteSuccessMergesAndMirrors(t *testing.T) {
	edited := catalog.Defaults()[0]
	edited.Title = "Remote Edit"
	rc := &fakeRemote{records: []remote.Record{remote.FromItem(edited)}}
	m := newFakeMirror()
	s := newTestStore(rc, m)

	s.Load(context.Background())
	s.Close()

	items := s.Items()
	require.Len(t, items, len(catalog.Defaults()))
	assert.Equal(t, "Remote Edit", items[0].Title)
	assert.False(t, s.Loading())
	assert.Empty(t, s.LastError())

	// Merged set got mirrored.
	blob, ok := m.Read()
	require.True(t, ok)
	assert.Contains(t, blob, "Remote Edit")

	// Self-healing seed: the ten defaults missing from the remote set were
	// pushed back in one batch.
	calls := rc.upsertCalls()
	require.Len(t, calls, 1)
	assert.Len(t, calls[0], len(catalog.Defaults())-1)
}

func TestLoad_RemoteFailureFallsBackToMirror(t *testing.T) {
	rc := &fakeRemote{listErr: errors.New("connection refused")}
	m := newFakeMirror()

	// Warm mirror from a previous successful load that carried an edit.
	warm := &fakeRemote{}
	edited := catalog.Defaults()[0]
	edited.Title = "Mirrored Edit"
	warm.records = []remote.Record{remote.FromItem(edited)}
	s0 := newTestStore(warm, m)
	s0.Load(context.Background())
	s0.Close()

	s := newTestStore(rc, m)
	s.Load(context.Background())
	s.Close()

	items := s.Items()
	require.Len(t, items, len(catalog.Defaults()))
	assert.Equal(t, "Mirrored Edit", items[0].Title)
	assert.Contains(t, s.LastError(), "remote catalog unavailable")
	assert.False(t, s.Loading())
}

func TestLoad_MalformedMirrorFallsBackToDefaults(t *testing.T) {
	rc := &fakeRemote{listErr: errors.New("timeout")}
	m := newFakeMirror()
	require.NoError(t, m.Write("{not json"))

	s := newTestStore(rc, m)
	s.Load(context.Background())
	s.Close()

	items := s.Items()
	require.Len(t, items, len(catalog.Defaults()))
	assert.Equal(t, catalog.Defaults()[0].ID, items[0].ID)
}

func TestLoad_EverythingDownStillServesSeed(t *testing.T) {
	rc := &fakeRemote{listErr: errors.New("down")}
	s := newTestStore(rc, newFakeMirror())

	s.Load(context.Background())
	s.Close()

	assert.Len(t, s.Items(), len(catalog.Defaults()))
}

func TestUpsert_LocalFirstDurability(t *testing.T) {
	rc := &fakeRemote{}
	m := newFakeMirror()
	s := newTestStore(rc, m)
	s.Load(context.Background())

	item := content.ContentItem{
		ID:    "course_x",
		Type:  content.TypeCourse,
		Title: "X",
		Slug:  "x",
	}
	_, err := s.Upsert(gating.RoleAdmin, item)
	require.NoError(t, err)

	// Visible immediately, before any remote callback.
	got, found := s.ByID("course_x")
	require.True(t, found)
	assert.Equal(t, "X", got.Title)

	// And already on the mirror.
	blob, ok := m.Read()
	require.True(t, ok)
	assert.Contains(t, blob, "course_x")

	s.Close()
	status, _ := s.SyncStatus("course_x")
	assert.Equal(t, SyncSynced, status)
}

func TestUpsert_NewCourseScenario(t *testing.T) {
	s := newTestStore(&fakeRemote{}, newFakeMirror())
	s.Load(context.Background())
	require.Len(t, s.Items(), 11)

	_, err := s.Upsert(gating.RoleAdmin, content.ContentItem{
		ID:         "course_x",
		Type:       content.TypeCourse,
		Title:      "X",
		Slug:       "x",
		Visibility: content.VisibilityPublic,
	})
	require.NoError(t, err)

	assert.Len(t, s.Items(), 12)

	courses := s.ByType(content.TypeCourse)
	ids := make([]string, 0, len(courses))
	for _, c := range courses {
		ids = append(ids, c.ID)
	}
	assert.Contains(t, ids, "course_x")
	s.Close()
}

func TestUpsert_NonAdminRejectedBeforeLocalState(t *testing.T) {
	m := newFakeMirror()
	s := newTestStore(&fakeRemote{}, m)
	s.Load(context.Background())
	s.Close()
	writesBefore := m.writes

	_, err := s.Upsert(gating.RoleUser, content.ContentItem{ID: "nope", Type: content.TypeCourse, Title: "Nope"})
	require.ErrorIs(t, err, ErrForbidden)

	_, found := s.ByID("nope")
	assert.False(t, found)
	assert.Equal(t, writesBefore, m.writes)
}

func TestUpsert_ReplacesInPlaceAndRenumbers(t *testing.T) {
	s := newTestStore(&fakeRemote{}, newFakeMirror())
	s.Load(context.Background())

	item := content.ContentItem{
		ID:    "course_y",
		Type:  content.TypeCourse,
		Title: "Y",
		Modules: []content.Module{
			{ID: "m2", Title: "Second", Order: 99, Lessons: []content.Lesson{
				{ID: "l1", Title: "A", Order: 7},
				{ID: "l2", Title: "B", Order: 7},
			}},
			{ID: "m1", Title: "First", Order: 0},
		},
	}
	saved, err := s.Upsert(gating.RoleAdmin, item)
	require.NoError(t, err)

	require.Len(t, saved.Modules, 2)
	assert.Equal(t, 1, saved.Modules[0].Order)
	assert.Equal(t, 2, saved.Modules[1].Order)
	assert.Equal(t, 1, saved.Modules[0].Lessons[0].Order)
	assert.Equal(t, 2, saved.Modules[0].Lessons[1].Order)

	// Replace keeps collection position and createdAt, rewrites updatedAt.
	posBefore := indexOf(t, s.Items(), "course_y")
	created := saved.CreatedAt

	saved.Title = "Y2"
	resaved, err := s.Upsert(gating.RoleAdmin, saved)
	require.NoError(t, err)

	assert.Equal(t, posBefore, indexOf(t, s.Items(), "course_y"))
	assert.Equal(t, created, resaved.CreatedAt)
	assert.True(t, resaved.UpdatedAt.After(created) || resaved.UpdatedAt.Equal(created))
	assert.Len(t, s.Items(), 12)
	s.Close()
}

func TestUpsert_DerivesSlugAndID(t *testing.T) {
	s := newTestStore(&fakeRemote{}, newFakeMirror())
	s.Load(context.Background())

	saved, err := s.Upsert(gating.RoleAdmin, content.ContentItem{
		Type:  content.TypeNote,
		Title: "Buffer Overflows 101!",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "buffer-overflows-101", saved.Slug)
	s.Close()
}

func TestUpsert_RemoteFailureKeepsLocalStateAndReportsSync(t *testing.T) {
	rc := &fakeRemote{upsertErr: errors.New("permission denied")}
	s := newTestStore(rc, newFakeMirror())
	s.loadWithoutSeedPush(t)

	_, err := s.Upsert(gating.RoleAdmin, content.ContentItem{
		ID: "course_z", Type: content.TypeCourse, Title: "Z", Slug: "z",
	})
	require.NoError(t, err)
	s.Close()

	// No rollback: the item is still there.
	_, found := s.ByID("course_z")
	assert.True(t, found)

	status, ok := s.SyncStatus("course_z")
	require.True(t, ok)
	assert.Equal(t, SyncFailed, status)
	assert.Contains(t, s.LastError(), "course_z")
}

// loadWithoutSeedPush primes the store from an erroring remote so the
// self-healing push never runs and upsert errors are the only remote calls.
func (s *Store) loadWithoutSeedPush(t *testing.T) {
	t.Helper()
	rc, ok := s.remote.(*fakeRemote)
	require.True(t, ok)
	rc.mu.Lock()
	prevList := rc.listErr
	rc.listErr = errors.New("prime offline")
	rc.mu.Unlock()
	s.Load(context.Background())
	s.Close()
	rc.mu.Lock()
	rc.listErr = prevList
	rc.mu.Unlock()
}

func TestDelete_RemovesLocallyAndRemotely(t *testing.T) {
	rc := &fakeRemote{}
	m := newFakeMirror()
	s := newTestStore(rc, m)
	s.Load(context.Background())

	require.NoError(t, s.Delete(gating.RoleAdmin, "note_crypto"))
	s.Close()

	_, found := s.ByID("note_crypto")
	assert.False(t, found)
	assert.Contains(t, rc.deleteCalls(), "note_crypto")

	blob, _ := m.Read()
	assert.NotContains(t, blob, "note_crypto")
}

func TestDelete_NonAdminAndUnknownID(t *testing.T) {
	s := newTestStore(&fakeRemote{}, newFakeMirror())
	s.Load(context.Background())
	s.Close()

	assert.ErrorIs(t, s.Delete(gating.RoleUser, "note_crypto"), ErrForbidden)
	assert.ErrorIs(t, s.Delete(gating.RoleAdmin, "ghost"), ErrNotFound)
}

func TestDelete_SeedTombstoneSurvivesWarmReloadButNotColdStart(t *testing.T) {
	rc := &fakeRemote{listErr: errors.New("offline")}
	m := newFakeMirror()
	s := newTestStore(rc, m)
	s.Load(context.Background())

	require.NoError(t, s.Delete(gating.RoleAdmin, "roadmap_career"))
	s.Close()
	_, found := s.ByID("roadmap_career")
	require.False(t, found)

	// Warm reload on the same device: the tombstone keeps the seed entry out.
	s.Load(context.Background())
	s.Close()
	_, found = s.ByID("roadmap_career")
	assert.False(t, found)

	// Cold start (empty remote, empty mirror, no tombstones): the seed
	// entry comes back. Seed content is not durably deletable without
	// device state.
	cold := newTestStore(&fakeRemote{listErr: errors.New("offline")}, newFakeMirror())
	cold.Load(context.Background())
	cold.Close()
	_, found = cold.ByID("roadmap_career")
	assert.True(t, found)
}

func TestUpsert_ClearsTombstone(t *testing.T) {
	m := newFakeMirror()
	s := newTestStore(&fakeRemote{}, m)
	s.Load(context.Background())

	require.NoError(t, s.Delete(gating.RoleAdmin, "lab_sqli"))
	require.True(t, m.Tombstones()["lab_sqli"])

	_, err := s.Upsert(gating.RoleAdmin, content.ContentItem{
		ID: "lab_sqli", Type: content.TypeLab, Title: "SQL Injection Lab v2", Slug: "sql-injection-lab",
	})
	require.NoError(t, err)
	assert.False(t, m.Tombstones()["lab_sqli"])
	s.Close()
}

func TestItems_ReturnsDeepCopies(t *testing.T) {
	s := newTestStore(&fakeRemote{}, newFakeMirror())
	s.Load(context.Background())
	s.Close()

	items := s.Items()
	require.NotEmpty(t, items[0].Modules)
	items[0].Modules[0].Title = "tampered"

	fresh := s.Items()
	assert.NotEqual(t, "tampered", fresh[0].Modules[0].Title)
}

func TestUpsert_DetachesFromCallerArrays(t *testing.T) {
	s := newTestStore(&fakeRemote{}, newFakeMirror())
	s.Load(context.Background())

	item := content.ContentItem{
		ID:    "course_w",
		Type:  content.TypeCourse,
		Title: "W",
		Slug:  "w",
		Tags:  []string{"blue-team"},
		Modules: []content.Module{
			{ID: "m1", Title: "Original", Lessons: []content.Lesson{
				{ID: "l1", Title: "Intro"},
			}},
		},
	}
	_, err := s.Upsert(gating.RoleAdmin, item)
	require.NoError(t, err)

	// The caller keeps editing its working copy after the commit. The
	// committed item must not follow.
	item.Modules[0].Title = "edited after save"
	item.Modules[0].Lessons[0].Title = "edited after save"
	item.Tags[0] = "edited after save"

	got, found := s.ByID("course_w")
	require.True(t, found)
	assert.Equal(t, "Original", got.Modules[0].Title)
	assert.Equal(t, "Intro", got.Modules[0].Lessons[0].Title)
	assert.Equal(t, "blue-team", got.Tags[0])

	// Renumbering happened on the stored copy, not on the caller's.
	assert.Equal(t, 0, item.Modules[0].Order)
	assert.Equal(t, 1, got.Modules[0].Order)
	s.Close()
}

func TestLoad_FallbackEntriesAreNotReportedSynced(t *testing.T) {
	rc := &fakeRemote{listErr: errors.New("connection refused")}
	s := newTestStore(rc, newFakeMirror())
	s.Load(context.Background())
	s.Close()

	// Every item came from the seed; the remote confirmed none of them.
	status, ok := s.SyncStatus(catalog.Defaults()[0].ID)
	require.True(t, ok)
	assert.Equal(t, SyncUnknown, status)

	// Once the remote comes back and lists the item, a reload confirms it.
	rc.mu.Lock()
	rc.listErr = nil
	rc.records = []remote.Record{remote.FromItem(catalog.Defaults()[0])}
	rc.mu.Unlock()

	s.Load(context.Background())
	s.Close()

	status, ok = s.SyncStatus(catalog.Defaults()[0].ID)
	require.True(t, ok)
	assert.Equal(t, SyncSynced, status)
}

func indexOf(t *testing.T, items []content.ContentItem, id string) int {
	t.Helper()
	for i, it := range items {
		if it.ID == id {
			return i
		}
	}
	t.Fatalf("id %s not found", id)
	return -1
}
