package contentRoutes

import (
	controllers "cyberlearn/controllers/content"
	"cyberlearn/middleware"
	validators "cyberlearn/validators/content"

	"github.com/gofiber/fiber/v2"
)

// SetupContentRoutes sets up all learner-facing content routes. Reads work
// without a session (anonymous callers gate like non-admin users); progress
// routes need an identity to key the ledger.
func SetupContentRoutes(app *fiber.App, uc *controllers.UserContentController) {
	userGroup := app.Group("/content")

	// Catalog browsing
	userGroup.Get("/:type", middleware.OptionalJWT, validators.TypeParam(), uc.ListByType)
	userGroup.Get("/:type/:slug", middleware.OptionalJWT, validators.DetailParams(), uc.GetDetail)

	// Progress tracking
	userGroup.Get("/:type/:slug/progress", middleware.JWTMiddleware, validators.DetailParams(), uc.GetProgress)
	userGroup.Post("/:type/:slug/lesson/:lesson_id/complete", middleware.JWTMiddleware, validators.CompleteLesson(), uc.MarkLessonComplete)
}
