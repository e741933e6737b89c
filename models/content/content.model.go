package content

import (
	"strings"
	"time"
)

// ItemType partitions the catalog; fixed at creation.
type ItemType string

const (
	TypeCourse    ItemType = "course"
	TypeLab       ItemType = "lab"
	TypeNote      ItemType = "note"
	TypeRoadmap   ItemType = "roadmap"
	TypeChallenge ItemType = "challenge"
)

// Visibility controls whether non-admin callers can resolve an item at all.
type Visibility string

const (
	VisibilityPublic     Visibility = "public"
	VisibilityPrivate    Visibility = "private"
	VisibilityComingSoon Visibility = "coming_soon"
)

type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// StylePrefix is the legacy tag convention older clients used to encode the
// presentation style inside the tag list. It is folded into the Style field
// on decode and never written back.
const StylePrefix = "style:"

// Lesson is the leaf unit of content
type Lesson struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Order     int    `json:"order"`
	Duration  string `json:"duration,omitempty"`
	VideoURL  string `json:"videoUrl,omitempty"`
	NotesText string `json:"notesText,omitempty"`
	PDFURL    string `json:"pdfUrl,omitempty"`
	Locked    bool   `json:"locked"`
}

// Module is an ordered grouping of lessons within a ContentItem
type Module struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Order       int      `json:"order"`
	Description string   `json:"description,omitempty"`
	Lessons     []Lesson `json:"lessons"`
}

// ContentItem is the top-level catalog entry
type ContentItem struct {
	ID           string     `json:"id"`
	Slug         string     `json:"slug"`
	Type         ItemType   `json:"type"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     string     `json:"category"`
	Level        Level      `json:"level,omitempty"`
	Duration     string     `json:"duration,omitempty"`
	ThumbnailURL string     `json:"thumbnailUrl,omitempty"`
	Visibility   Visibility `json:"visibility"`
	Locked       bool       `json:"locked"`
	Modules      []Module   `json:"modules"`
	Tags         []string   `json:"tags,omitempty"`
	Style        string     `json:"style,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// ValidType reports whether t is one of the five catalog types.
func ValidType(t ItemType) bool {
	switch t {
	case TypeCourse, TypeLab, TypeNote, TypeRoadmap, TypeChallenge:
		return true
	}
	return false
}

// ValidVisibility reports whether v is a known visibility state.
func ValidVisibility(v Visibility) bool {
	switch v {
	case VisibilityPublic, VisibilityPrivate, VisibilityComingSoon:
		return true
	}
	return false
}

// ValidLevel reports whether l is a known level. Blank is allowed (optional field).
func ValidLevel(l Level) bool {
	switch l {
	case "", LevelBeginner, LevelIntermediate, LevelAdvanced:
		return true
	}
	return false
}

// Clone returns a deep copy so callers can mutate a working copy freely
// without touching the canonical collection.
func (c ContentItem) Clone() ContentItem {
	out := c
	if c.Modules != nil {
		out.Modules = make([]Module, len(c.Modules))
		for i, m := range c.Modules {
			out.Modules[i] = m
			if m.Lessons != nil {
				out.Modules[i].Lessons = make([]Lesson, len(m.Lessons))
				copy(out.Modules[i].Lessons, m.Lessons)
			}
		}
	}
	if c.Tags != nil {
		out.Tags = make([]string, len(c.Tags))
		copy(out.Tags, c.Tags)
	}
	return out
}

// Renumber rewrites module and lesson order fields to their 1-based position
// in the current sequence. Called on every save; the slice order is the
// sequencing authority.
func (c *ContentItem) Renumber() {
	for i := range c.Modules {
		c.Modules[i].Order = i + 1
		for j := range c.Modules[i].Lessons {
			c.Modules[i].Lessons[j].Order = j + 1
		}
	}
}

// SetStyle sets the presentation style and strips any legacy style: tags
// from the tag list. An empty name clears the style.
func (c *ContentItem) SetStyle(name string) {
	c.Style = name
	c.stripStyleTags()
}

// NormalizeStyle folds a legacy style:<name> tag into the Style field. The
// last such tag wins when older data carries more than one; an already-set
// Style field takes precedence over tags.
func (c *ContentItem) NormalizeStyle() {
	if c.Style == "" {
		for _, t := range c.Tags {
			if strings.HasPrefix(t, StylePrefix) {
				c.Style = strings.TrimPrefix(t, StylePrefix)
			}
		}
	}
	c.stripStyleTags()
}

func (c *ContentItem) stripStyleTags() {
	if len(c.Tags) == 0 {
		return
	}
	kept := c.Tags[:0]
	for _, t := range c.Tags {
		if !strings.HasPrefix(t, StylePrefix) {
			kept = append(kept, t)
		}
	}
	c.Tags = kept
}

// LessonByID walks modules for a lesson id. Returns false when absent.
func (c ContentItem) LessonByID(lessonID string) (Lesson, bool) {
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			if l.ID == lessonID {
				return l, true
			}
		}
	}
	return Lesson{}, false
}

// LessonCount returns the total number of lessons across all modules.
func (c ContentItem) LessonCount() int {
	n := 0
	for _, m := range c.Modules {
		n += len(m.Lessons)
	}
	return n
}
