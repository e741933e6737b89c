// Package mirror persists the merged catalog on the local database so the
// platform keeps working across restarts when the remote backend is
// unreachable. One key, whole-collection blobs, no partial writes.
package mirror

import (
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"cyberlearn/models/content"
)

const catalogKey = "catalog"

// Store wraps the local database behind the mirror contract.
type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// Read returns the stored catalog blob. The second return is false when no
// blob has ever been written; a present-but-malformed blob is the caller's
// problem and is treated the same as absent there.
func (s *Store) Read() (string, bool) {
	var row content.MirrorBlob
	if err := s.db.Where("cache_key = ?", catalogKey).First(&row).Error; err != nil {
		return "", false
	}
	if len(row.Blob) == 0 {
		return "", false
	}
	return string(row.Blob), true
}

// Write replaces the stored catalog blob.
func (s *Store) Write(blob string) error {
	var row content.MirrorBlob
	err := s.db.Where("cache_key = ?", catalogKey).First(&row).Error
	if err != nil {
		if err != gorm.ErrRecordNotFound {
			return err
		}
		row = content.MirrorBlob{CacheKey: catalogKey, Blob: datatypes.JSON(blob)}
		return s.db.Create(&row).Error
	}
	row.Blob = datatypes.JSON(blob)
	return s.db.Save(&row).Error
}

// Tombstones returns the set of catalog ids an admin has deleted on this
// device. Seed entries in the set stay out of the merged view on reload.
func (s *Store) Tombstones() map[string]bool {
	var rows []content.Tombstone
	if err := s.db.Find(&rows).Error; err != nil {
		return map[string]bool{}
	}
	out := make(map[string]bool, len(rows))
	for _, r := range rows {
		out[r.ItemID] = true
	}
	return out
}

// AddTombstone records a delete. Idempotent.
func (s *Store) AddTombstone(id string) error {
	var row content.Tombstone
	if err := s.db.Where("item_id = ?", id).First(&row).Error; err == nil {
		return nil
	}
	return s.db.Create(&content.Tombstone{ItemID: id}).Error
}

// ClearTombstone lifts a delete, used when an item with a tombstoned id is
// created again.
func (s *Store) ClearTombstone(id string) error {
	return s.db.Unscoped().Where("item_id = ?", id).Delete(&content.Tombstone{}).Error
}
