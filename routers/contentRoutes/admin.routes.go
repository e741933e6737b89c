package contentRoutes

import (
	controllers "cyberlearn/controllers/content"
	"cyberlearn/middleware"
	validators "cyberlearn/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupAdminContentRoutes sets up the admin CMS routes. Every route requires
// a valid token; the content store rejects mutations from non-admin roles.
func SetupAdminContentRoutes(app *fiber.App, ac *controllers.AdminContentController) {
	adminGroup := app.Group("/admin/content", middleware.JWTMiddleware)

	// Item CRUD
	adminGroup.Post("/", validators.CreateItem(), ac.CreateItem)
	adminGroup.Put("/:id", validators.UpdateItem(), ac.UpdateItem)
	adminGroup.Delete("/:id", validators.ItemID(), ac.DeleteItem)

	// Sync observability and manual reload
	adminGroup.Get("/:id/sync", validators.ItemID(), ac.GetSyncStatus)
	adminGroup.Post("/reload", ac.ReloadCatalog)

	// Thumbnail upload
	adminGroup.Post("/thumbnail", ac.UploadThumbnail)
}
