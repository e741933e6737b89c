package controllers

import (
	"cyberlearn/gating"
	"cyberlearn/middleware"
	"cyberlearn/models/content"
	"cyberlearn/progress"
	"cyberlearn/store"

	"github.com/gofiber/fiber/v2"
)

// UserContentController is the learner-facing reader surface: listing,
// detail with visibility and lock gating, and lesson completion.
type UserContentController struct {
	Store  *store.Store
	Ledger *progress.Ledger
}

func NewUserContentController(s *store.Store, l *progress.Ledger) *UserContentController {
	return &UserContentController{Store: s, Ledger: l}
}

// LessonView is a lesson annotated with the caller-specific gate and
// completion state.
type LessonView struct {
	content.Lesson
	Openable  bool `json:"openable"`
	Completed bool `json:"completed"`
}

// ModuleView replaces raw lessons with annotated ones.
type ModuleView struct {
	content.Module
	Lessons []LessonView `json:"lessons"`
}

// ListByType lists the catalog partition for one type. Private items are
// omitted entirely for non-admins; coming-soon and locked items appear as
// teasers with their module payload withheld.
func (uc *UserContentController) ListByType(c *fiber.Ctx) error {
	role := middleware.RoleFromCtx(c)
	items := uc.Store.ByType(content.ItemType(c.Params("type")))

	result := make([]content.ContentItem, 0, len(items))
	for _, item := range items {
		switch gating.Evaluate(&item, role) {
		case gating.ForbiddenPrivate:
			continue
		case gating.Locked:
			item.Modules = nil
		}
		result = append(result, item)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"items":   result,
		"loading": uc.Store.Loading(),
	})
}

// GetDetail resolves one item by type and slug and applies the gating state
// machine. Private items answer exactly like missing ones.
func (uc *UserContentController) GetDetail(c *fiber.Ctx) error {
	role := middleware.RoleFromCtx(c)
	userID := middleware.UserIDFromCtx(c)

	item, found := uc.Store.BySlug(content.ItemType(c.Params("type")), c.Params("slug"))
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	switch gating.Evaluate(&item, role) {
	case gating.NotFound, gating.ForbiddenPrivate:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	case gating.Locked:
		item.Modules = nil
		return middleware.JsonResponse(c, fiber.StatusLocked, false, "This content is not available yet!", fiber.Map{
			"item": item,
		})
	}

	completed := map[string]bool{}
	if userID != 0 {
		var ids []string
		for _, m := range item.Modules {
			for _, l := range m.Lessons {
				ids = append(ids, l.ID)
			}
		}
		completed = uc.Ledger.Completed(userID, ids)
	}

	modules := make([]ModuleView, len(item.Modules))
	for i, m := range item.Modules {
		lessons := make([]LessonView, len(m.Lessons))
		for j, l := range m.Lessons {
			lessons[j] = LessonView{
				Lesson:    l,
				Openable:  gating.LessonOpen(item, l, role),
				Completed: completed[l.ID],
			}
		}
		modules[i] = ModuleView{Module: m, Lessons: lessons}
	}

	var summary *progress.Summary
	if userID != 0 {
		s := uc.Ledger.Aggregate(userID, item)
		summary = &s
	}

	item.Modules = nil
	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content fetched successfully!", fiber.Map{
		"item":     item,
		"modules":  modules,
		"progress": summary,
	})
}

// MarkLessonComplete records a completion for the calling user. The trigger
// is a finished video or the learner's explicit action for non-playable
// content; both land here.
func (uc *UserContentController) MarkLessonComplete(c *fiber.Ctx) error {
	role := middleware.RoleFromCtx(c)
	userID := middleware.UserIDFromCtx(c)

	item, found := uc.Store.BySlug(content.ItemType(c.Params("type")), c.Params("slug"))
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	switch gating.Evaluate(&item, role) {
	case gating.NotFound, gating.ForbiddenPrivate:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	case gating.Locked:
		return middleware.JsonResponse(c, fiber.StatusLocked, false, "This content is not available yet!", nil)
	}

	lesson, found := item.LessonByID(c.Params("lesson_id"))
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Lesson not found!", nil)
	}

	if !gating.LessonOpen(item, lesson, role) {
		return middleware.JsonResponse(c, fiber.StatusLocked, false, "This lesson is locked!", nil)
	}

	uc.Ledger.MarkComplete(userID, lesson.ID)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Lesson marked as complete!", uc.Ledger.Aggregate(userID, item))
}

// GetProgress returns the caller's derived completed/total for one item.
func (uc *UserContentController) GetProgress(c *fiber.Ctx) error {
	role := middleware.RoleFromCtx(c)
	userID := middleware.UserIDFromCtx(c)

	item, found := uc.Store.BySlug(content.ItemType(c.Params("type")), c.Params("slug"))
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	switch gating.Evaluate(&item, role) {
	case gating.NotFound, gating.ForbiddenPrivate:
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	case gating.Locked:
		return middleware.JsonResponse(c, fiber.StatusLocked, false, "This content is not available yet!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Progress fetched successfully!", uc.Ledger.Aggregate(userID, item))
}
