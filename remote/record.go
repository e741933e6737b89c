package remote

import (
	"time"

	"cyberlearn/models/content"
)

// Record is the storage shape of a ContentItem. Optional fields are pointers
// so an absent value serializes to an explicit null rather than being
// omitted; thumbnail_url, created_at and updated_at are the only renamed
// columns, everything else is identity-mapped.
type Record struct {
	ID           string           `json:"id"`
	Slug         string           `json:"slug"`
	Type         string           `json:"type"`
	Title        string           `json:"title"`
	Description  *string          `json:"description"`
	Category     *string          `json:"category"`
	Level        *string          `json:"level"`
	Duration     *string          `json:"duration"`
	ThumbnailURL *string          `json:"thumbnail_url"`
	Visibility   string           `json:"visibility"`
	Locked       bool             `json:"locked"`
	Modules      []content.Module `json:"modules"`
	Tags         []string         `json:"tags"`
	Style        *string          `json:"style"`
	CreatedAt    *time.Time       `json:"created_at"`
	UpdatedAt    *time.Time       `json:"updated_at"`
}

func strPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func strVal(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

// FromItem translates the in-memory shape to the storage shape.
func FromItem(it content.ContentItem) Record {
	rec := Record{
		ID:           it.ID,
		Slug:         it.Slug,
		Type:         string(it.Type),
		Title:        it.Title,
		Description:  strPtr(it.Description),
		Category:     strPtr(it.Category),
		Level:        strPtr(string(it.Level)),
		Duration:     strPtr(it.Duration),
		ThumbnailURL: strPtr(it.ThumbnailURL),
		Visibility:   string(it.Visibility),
		Locked:       it.Locked,
		Modules:      it.Modules,
		Tags:         it.Tags,
		Style:        strPtr(it.Style),
	}
	if !it.CreatedAt.IsZero() {
		t := it.CreatedAt
		rec.CreatedAt = &t
	}
	if !it.UpdatedAt.IsZero() {
		t := it.UpdatedAt
		rec.UpdatedAt = &t
	}
	return rec
}

// ToItem translates a storage record back to the in-memory shape. Legacy
// style:<name> tags written by older clients are folded into the Style field.
func (r Record) ToItem() content.ContentItem {
	it := content.ContentItem{
		ID:           r.ID,
		Slug:         r.Slug,
		Type:         content.ItemType(r.Type),
		Title:        r.Title,
		Description:  strVal(r.Description),
		Category:     strVal(r.Category),
		Level:        content.Level(strVal(r.Level)),
		Duration:     strVal(r.Duration),
		ThumbnailURL: strVal(r.ThumbnailURL),
		Visibility:   content.Visibility(r.Visibility),
		Locked:       r.Locked,
		Modules:      r.Modules,
		Tags:         r.Tags,
		Style:        strVal(r.Style),
	}
	if r.CreatedAt != nil {
		it.CreatedAt = *r.CreatedAt
	}
	if r.UpdatedAt != nil {
		it.UpdatedAt = *r.UpdatedAt
	}
	it.NormalizeStyle()
	return it
}
