// Package progress is the flat per-lesson completion ledger. It is keyed by
// (user, lesson) only, independent of which item or module a lesson belongs
// to, so content restructuring never loses completions.
package progress

import (
	"log"
	"time"

	"gorm.io/gorm"

	"cyberlearn/models/content"
)

// Summary is a derived aggregate, never stored.
type Summary struct {
	Completed int `json:"completed"`
	Total     int `json:"total"`
}

type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// MarkComplete records a completion. Idempotent; persistence failures are
// logged but never surfaced, since losing a mark only degrades a progress
// display.
func (l *Ledger) MarkComplete(userID uint, lessonID string) {
	var existing content.LessonProgress
	err := l.db.Where("user_id = ? AND lesson_id = ?", userID, lessonID).First(&existing).Error
	if err == nil {
		return
	}

	row := content.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		CompletedAt: time.Now().UTC(),
	}
	if err := l.db.Create(&row).Error; err != nil {
		log.Printf("Recording lesson completion failed (user %d, lesson %s): %v", userID, lessonID, err)
	}
}

// Completed returns which of the given lesson ids the user has finished.
func (l *Ledger) Completed(userID uint, lessonIDs []string) map[string]bool {
	out := make(map[string]bool, len(lessonIDs))
	if len(lessonIDs) == 0 {
		return out
	}

	var rows []content.LessonProgress
	if err := l.db.Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&rows).Error; err != nil {
		return out
	}
	for _, r := range rows {
		out[r.LessonID] = true
	}
	return out
}

// Aggregate derives completed/total for one item by walking its modules and
// counting ledger hits.
func (l *Ledger) Aggregate(userID uint, item content.ContentItem) Summary {
	var ids []string
	for _, m := range item.Modules {
		for _, lesson := range m.Lessons {
			ids = append(ids, lesson.ID)
		}
	}

	done := l.Completed(userID, ids)
	count := 0
	for _, id := range ids {
		if done[id] {
			count++
		}
	}
	return Summary{Completed: count, Total: len(ids)}
}
