// Package gating decides what a caller may see of a resolved content item.
// Visibility controls discoverability (does the item appear to exist),
// locked controls accessibility (the item exists but its payload is
// withheld). The two are orthogonal: a public locked item is a valid
// "coming later" state distinct from a private one.
package gating

import "cyberlearn/models/content"

// Caller roles. An absent session is treated as RoleUser.
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Access is the presentation state for an (item, role) pair.
type Access int

const (
	NotFound Access = iota
	// ForbiddenPrivate must render identically to NotFound so private
	// items do not leak their existence.
	ForbiddenPrivate
	Locked
	Open
)

// Evaluate runs the transition rules in strict order: existence, then
// privacy, then lock state. Privacy is checked before lock status, so a
// private locked item reads as not found to non-admins, never as locked.
func Evaluate(item *content.ContentItem, role string) Access {
	if item == nil {
		return NotFound
	}
	if item.Visibility == content.VisibilityPrivate && role != RoleAdmin {
		return ForbiddenPrivate
	}
	if (item.Visibility == content.VisibilityComingSoon || item.Locked) && role != RoleAdmin {
		return Locked
	}
	return Open
}

// LessonOpen applies the per-lesson gate inside an Open item: a non-admin
// needs both the item and the lesson unlocked. Admins bypass both.
func LessonOpen(item content.ContentItem, lesson content.Lesson, role string) bool {
	if role == RoleAdmin {
		return true
	}
	return !item.Locked && !lesson.Locked
}
