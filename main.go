package main

import (
	"context"
	"log"

	"cyberlearn/catalog"
	"cyberlearn/config"
	contentControllers "cyberlearn/controllers/content"
	"cyberlearn/database"
	"cyberlearn/mirror"
	"cyberlearn/progress"
	"cyberlearn/remote"
	contentRoutes "cyberlearn/routers/contentRoutes"
	"cyberlearn/store"
	"cyberlearn/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func main() {
	config.LoadConfig()
	database.ConnectDb()

	// Content store: remote catalog + local mirror + seed, reconciled once
	// at startup and on demand afterwards.
	remoteClient := remote.NewClient(config.AppConfig.RemoteCatalogURL, config.AppConfig.RemoteCatalogKey)
	localMirror := mirror.New(database.Database.Db)
	contentStore := store.New(remoteClient, localMirror, catalog.Defaults())
	contentStore.Load(context.Background())
	defer contentStore.Close()

	ledger := progress.NewLedger(database.Database.Db)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,PUT,DELETE",        // Allowed HTTP methods
		AllowHeaders: "Content-Type,Authorization", // Allowed headers
	}))

	// Enable the built-in logger middleware to log all requests
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${ip} ${method} ${path} ${status} ${latency}\n",
	}))

	// Serve admin-uploaded thumbnails
	app.Static("/uploads", config.AppConfig.UploadDir)

	contentRoutes.SetupContentRoutes(app, contentControllers.NewUserContentController(contentStore, ledger))
	contentRoutes.SetupAdminContentRoutes(app, contentControllers.NewAdminContentController(contentStore))

	// Periodic catalog refresh (optional)
	if c := utils.StartCatalogRefresh(contentStore, config.AppConfig.CatalogRefreshCron); c != nil {
		defer c.Stop()
	}

	log.Printf("Server is running on port %s", config.AppConfig.Port)
	log.Fatal(app.Listen(":" + config.AppConfig.Port))
}
