package controllers

import (
	"errors"

	"cyberlearn/catalog"
	"cyberlearn/config"
	"cyberlearn/gating"
	"cyberlearn/middleware"
	"cyberlearn/models/content"
	"cyberlearn/store"
	"cyberlearn/utils"
	contentValidator "cyberlearn/validators/content"

	"github.com/gofiber/fiber/v2"
)

// AdminContentController exposes the editor surface over the content store.
// The store enforces the admin role itself before touching any state; the
// controller only maps its errors onto HTTP.
type AdminContentController struct {
	Store *store.Store
}

func NewAdminContentController(s *store.Store) *AdminContentController {
	return &AdminContentController{Store: s}
}

// CreateItem creates a new catalog item with a generated id and zero or more
// modules.
func (ac *AdminContentController) CreateItem(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedItem").(*contentValidator.ItemPayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	item := content.ContentItem{
		Title:        reqData.Title,
		Type:         content.ItemType(reqData.Type),
		Slug:         reqData.Slug,
		Description:  reqData.Description,
		Category:     reqData.Category,
		Level:        content.Level(reqData.Level),
		Duration:     reqData.Duration,
		ThumbnailURL: reqData.ThumbnailURL,
		Visibility:   content.Visibility(reqData.Visibility),
		Locked:       reqData.Locked,
		Modules:      reqData.Modules,
		Tags:         reqData.Tags,
	}
	item.SetStyle(reqData.Style)
	fillNestedIDs(&item)

	saved, err := ac.Store.Upsert(middleware.RoleFromCtx(c), item)
	if err != nil {
		if errors.Is(err, store.ErrForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Content created successfully!", saved)
}

// UpdateItem commits an edited working copy over the existing entry. Nested
// module and lesson edits ride the same save; the store renumbers both.
func (ac *AdminContentController) UpdateItem(c *fiber.Ctx) error {
	itemID := c.Params("id")

	existing, found := ac.Store.ByID(itemID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	reqData, ok := c.Locals("validatedItemUpdate").(*contentValidator.ItemUpdatePayload)
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	// Update only provided fields
	if reqData.Title != nil {
		existing.Title = *reqData.Title
	}
	if reqData.Slug != nil {
		existing.Slug = *reqData.Slug
	}
	if reqData.Description != nil {
		existing.Description = *reqData.Description
	}
	if reqData.Category != nil {
		existing.Category = *reqData.Category
	}
	if reqData.Level != nil {
		existing.Level = content.Level(*reqData.Level)
	}
	if reqData.Duration != nil {
		existing.Duration = *reqData.Duration
	}
	if reqData.ThumbnailURL != nil {
		existing.ThumbnailURL = *reqData.ThumbnailURL
	}
	if reqData.Visibility != nil {
		existing.Visibility = content.Visibility(*reqData.Visibility)
	}
	if reqData.Locked != nil {
		existing.Locked = *reqData.Locked
	}
	if reqData.Modules != nil {
		existing.Modules = *reqData.Modules
		fillNestedIDs(&existing)
	}
	if reqData.Tags != nil {
		existing.Tags = *reqData.Tags
	}
	if reqData.Style != nil {
		existing.SetStyle(*reqData.Style)
	}

	saved, err := ac.Store.Upsert(middleware.RoleFromCtx(c), existing)
	if err != nil {
		if errors.Is(err, store.ErrForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content updated successfully!", saved)
}

// DeleteItem removes an item from the collection, the mirror and, best
// effort, the remote catalog.
func (ac *AdminContentController) DeleteItem(c *fiber.Ctx) error {
	err := ac.Store.Delete(middleware.RoleFromCtx(c), c.Params("id"))
	if err != nil {
		if errors.Is(err, store.ErrForbidden) {
			return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
		}
		if errors.Is(err, store.ErrNotFound) {
			return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
		}
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete content!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Content deleted successfully!", nil)
}

// GetSyncStatus reports the remote phase of an item's last save, so the
// editor can warn when changes may not have reached the backend.
func (ac *AdminContentController) GetSyncStatus(c *fiber.Ctx) error {
	itemID := c.Params("id")

	status, found := ac.Store.SyncStatus(itemID)
	if !found {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Content not found!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Sync status fetched successfully!", fiber.Map{
		"id":         itemID,
		"sync":       status,
		"last_error": ac.Store.LastError(),
	})
}

// ReloadCatalog re-runs the load/merge cycle on demand, picking up a backend
// that has come back since startup.
func (ac *AdminContentController) ReloadCatalog(c *fiber.Ctx) error {
	if middleware.RoleFromCtx(c) != gating.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	ac.Store.Load(c.Context())

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Catalog reloaded successfully!", fiber.Map{
		"items":      len(ac.Store.Items()),
		"last_error": ac.Store.LastError(),
	})
}

// UploadThumbnail saves an uploaded image and returns the URL to store on an
// item's thumbnailUrl field.
func (ac *AdminContentController) UploadThumbnail(c *fiber.Ctx) error {
	if middleware.RoleFromCtx(c) != gating.RoleAdmin {
		return middleware.JsonResponse(c, fiber.StatusForbidden, false, "Access denied! Admin only.", nil)
	}

	file, err := c.FormFile("thumbnail")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Thumbnail file is required!", nil)
	}

	path, err := utils.SaveUploadedFile(file, config.AppConfig.UploadDir)
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to save thumbnail!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusCreated, true, "Thumbnail uploaded successfully!", fiber.Map{
		"thumbnail_url": utils.GetFileURL(path),
	})
}

// fillNestedIDs assigns ids to modules and lessons the editor created
// client-side without one.
func fillNestedIDs(item *content.ContentItem) {
	for i := range item.Modules {
		if item.Modules[i].ID == "" {
			item.Modules[i].ID = catalog.NewID("mod")
		}
		for j := range item.Modules[i].Lessons {
			if item.Modules[i].Lessons[j].ID == "" {
				item.Modules[i].Lessons[j].ID = catalog.NewID("les")
			}
		}
	}
}
