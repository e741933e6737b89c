package contentValidator

import (
	"strings"

	"cyberlearn/middleware"
	"cyberlearn/models/content"

	"github.com/gofiber/fiber/v2"
)

// ItemPayload is the admin editor's working copy of a catalog item. Modules
// and lessons ride along wholesale; the save replaces the whole entry
// (last write wins, no per-field merging).
type ItemPayload struct {
	Title        string           `json:"title"`
	Type         string           `json:"type"`
	Slug         string           `json:"slug"`
	Description  string           `json:"description"`
	Category     string           `json:"category"`
	Level        string           `json:"level"`
	Duration     string           `json:"duration"`
	ThumbnailURL string           `json:"thumbnailUrl"`
	Visibility   string           `json:"visibility"`
	Locked       bool             `json:"locked"`
	Modules      []content.Module `json:"modules"`
	Tags         []string         `json:"tags"`
	Style        string           `json:"style"`
}

// ItemUpdatePayload uses pointers so "field absent" and "field cleared" stay
// distinguishable on partial updates.
type ItemUpdatePayload struct {
	Title        *string           `json:"title"`
	Slug         *string           `json:"slug"`
	Description  *string           `json:"description"`
	Category     *string           `json:"category"`
	Level        *string           `json:"level"`
	Duration     *string           `json:"duration"`
	ThumbnailURL *string           `json:"thumbnailUrl"`
	Visibility   *string           `json:"visibility"`
	Locked       *bool             `json:"locked"`
	Modules      *[]content.Module `json:"modules"`
	Tags         *[]string         `json:"tags"`
	Style        *string           `json:"style"`
}

func CreateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(ItemPayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		// Validate Title
		if strings.TrimSpace(reqData.Title) == "" {
			errors["title"] = "Title is required!"
		} else if len(strings.TrimSpace(reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		// Validate Type
		if !content.ValidType(content.ItemType(reqData.Type)) {
			errors["type"] = "Type must be one of course, lab, note, roadmap, challenge!"
		}

		// Visibility defaults to public
		if reqData.Visibility == "" {
			reqData.Visibility = string(content.VisibilityPublic)
		}
		if !content.ValidVisibility(content.Visibility(reqData.Visibility)) {
			errors["visibility"] = "Visibility must be one of public, private, coming_soon!"
		}

		if !content.ValidLevel(content.Level(reqData.Level)) {
			errors["level"] = "Level must be one of beginner, intermediate, advanced!"
		}

		// Respond with validation errors if any exist
		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedItem", reqData)
		return c.Next()
	}
}

func UpdateItem() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("id")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Item id is required!", nil)
		}

		reqData := new(ItemUpdatePayload)

		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		errors := make(map[string]string)

		if reqData.Title != nil && len(strings.TrimSpace(*reqData.Title)) < 3 {
			errors["title"] = "Title must be at least 3 characters long!"
		}

		if reqData.Visibility != nil && !content.ValidVisibility(content.Visibility(*reqData.Visibility)) {
			errors["visibility"] = "Visibility must be one of public, private, coming_soon!"
		}

		if reqData.Level != nil && !content.ValidLevel(content.Level(*reqData.Level)) {
			errors["level"] = "Level must be one of beginner, intermediate, advanced!"
		}

		if len(errors) > 0 {
			return middleware.ValidationErrorResponse(c, errors)
		}

		c.Locals("validatedItemUpdate", reqData)
		return c.Next()
	}
}

func ItemID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if strings.TrimSpace(c.Params("id")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Item id is required!", nil)
		}
		return c.Next()
	}
}

// TypeParam validates the :type catalog partition on reader routes.
func TypeParam() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !content.ValidType(content.ItemType(c.Params("type"))) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown content type!", nil)
		}
		return c.Next()
	}
}

func DetailParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !content.ValidType(content.ItemType(c.Params("type"))) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown content type!", nil)
		}
		if strings.TrimSpace(c.Params("slug")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Slug is required!", nil)
		}
		return c.Next()
	}
}

func CompleteLesson() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !content.ValidType(content.ItemType(c.Params("type"))) {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Unknown content type!", nil)
		}
		if strings.TrimSpace(c.Params("slug")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Slug is required!", nil)
		}
		if strings.TrimSpace(c.Params("lesson_id")) == "" {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Lesson id is required!", nil)
		}
		return c.Next()
	}
}
