package content

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// MirrorBlob stores the whole merged catalog as one serialized blob under a
// single key. Whole-collection granularity, no partial writes.
type MirrorBlob struct {
	gorm.Model
	CacheKey string         `json:"cache_key" gorm:"uniqueIndex;not null"`
	Blob     datatypes.JSON `json:"blob"`
}

// Tombstone records an admin delete of a catalog id so seed entries stay
// suppressed across reloads on this device.
type Tombstone struct {
	gorm.Model
	ItemID string `json:"item_id" gorm:"uniqueIndex;not null"`
}

// LessonProgress is one completion mark in the flat per-lesson ledger,
// independent of which item or module the lesson belongs to.
type LessonProgress struct {
	gorm.Model
	UserID      uint      `json:"user_id" gorm:"index:idx_user_lesson,unique;not null"`
	LessonID    string    `json:"lesson_id" gorm:"index:idx_user_lesson,unique;not null"`
	CompletedAt time.Time `json:"completed_at"`
}
