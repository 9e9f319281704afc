// main.go
//
// Document version lifecycle service for the RyR back-office
// Copyright (c) 2026 N. Rodriguez
//
// This file is part of ryr-documentos.
// ryr-documentos is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// ryr-documentos is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with ryr-documentos.
// If not, see <https://www.gnu.org/licenses/>.

package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	swagger "github.com/gofiber/swagger"

	"github.com/NRodriguezT98/ryr-documentos/internal/config"
	"github.com/NRodriguezT98/ryr-documentos/internal/database"
	"github.com/NRodriguezT98/ryr-documentos/internal/handlers"
	"github.com/NRodriguezT98/ryr-documentos/internal/middleware"
	"github.com/NRodriguezT98/ryr-documentos/internal/services"
	"github.com/NRodriguezT98/ryr-documentos/internal/storage"
	"github.com/NRodriguezT98/ryr-documentos/internal/types"

	_ "github.com/NRodriguezT98/ryr-documentos/docs/api" // Swagger docs
)

// @title RyR Documentos API
// @version 1.0.0
// @description Document version lifecycle service for housing unit records
// @termsOfService http://swagger.io/terms/

// @contact.name API Support
// @contact.url https://github.com/NRodriguezT98/ryr-documentos

// @license.name AGPL-3.0
// @license.url https://www.gnu.org/licenses/agpl-3.0.html

// @host localhost:3000
// @BasePath /api
// @schemes http https

// @securityDefinitions.apikey CookieAuth
// @in cookie
// @name cookie_session

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Connect to database
	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(db)

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Connect to object storage
	store, err := storage.NewMinioStore(context.Background(), cfg)
	if err != nil {
		log.Fatalf("Failed to connect to object storage: %v", err)
	}

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler:          customErrorHandler,
		DisableStartupMessage: false,
		BodyLimit:             50 * 1024 * 1024,
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(logger.New())
	app.Use(compress.New())

	// Prometheus metrics
	prometheus := fiberprometheus.New("ryr_documentos")
	prometheus.RegisterAt(app, "/metrics")
	app.Use(prometheus.Middleware)

	// Swagger documentation
	app.Get("/swagger/*", swagger.HandlerDefault)

	// Health endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		result := services.HealthCheck(c.Context(), cfg, db, store)
		status := fiber.StatusOK
		if result.Status != "healthy" {
			status = fiber.StatusServiceUnavailable
		}
		return c.Status(status).JSON(result)
	})

	// API routes under /api
	api := app.Group("/api")

	// Version middleware
	api.Use(middleware.VersionMiddleware())

	// Authorizer client is initialized lazily from the first request's
	// protocol and host
	api.Use(func(c *fiber.Ctx) error {
		if !services.IsAuthorizerInitialized() {
			if err := services.InitAuthorizer(cfg, c.Protocol(), c.Hostname()); err != nil {
				log.Printf("Authorizer initialization failed: %v", err)
			}
		}
		return c.Next()
	})

	// Create handlers
	docsHandler := &handlers.DocumentsHandler{DB: db, Store: store}
	lifecycleHandler := &handlers.LifecycleHandler{DB: db}
	trashHandler := &handlers.TrashHandler{DB: db, Store: store}
	foldersHandler := &handlers.FoldersHandler{DB: db}

	// Document version routes
	docs := api.Group("/docs")
	docs.Post("/versions", middleware.AuthUser(), docsHandler.CreateVersion)
	docs.Get("/versions/:id/url", middleware.AuthUser(), docsHandler.GetDownloadURL)
	docs.Put("/versions/:id/file", middleware.AuthAdmin(), docsHandler.ReplaceFile)

	// Lifecycle state routes
	docs.Post("/versions/:id/erroneous", middleware.AuthUser(), lifecycleHandler.MarkErroneous)
	docs.Post("/versions/:id/obsolete", middleware.AuthUser(), lifecycleHandler.MarkObsolete)
	docs.Post("/versions/:id/valid", middleware.AuthUser(), lifecycleHandler.RestoreToValid)

	// Trash routes (destructive ops are admin-only)
	docs.Get("/trash", middleware.AuthUser(), trashHandler.ListTrash)
	docs.Post("/trash/restore", middleware.AuthUser(), trashHandler.RestoreVersions)
	docs.Delete("/versions/:id", middleware.AuthAdmin(), trashHandler.DeleteVersion)
	docs.Post("/versions/:id/purge", middleware.AuthAdmin(), trashHandler.RequestPurge)
	docs.Post("/purge/confirm", middleware.AuthAdmin(), trashHandler.ConfirmPurge)

	// Folder routes
	docs.Put("/folders/:id", middleware.AuthUser(), foldersHandler.UpdateFolder)
	docs.Patch("/folders/:id/parent", middleware.AuthUser(), foldersHandler.MoveFolder)
	docs.Delete("/folders/:id", middleware.AuthUser(), foldersHandler.DeleteFolder)

	// Chain-level routes (registered after the static segments above)
	docs.Get("/:chainRoot/versions", middleware.AuthUser(), docsHandler.GetChain)
	docs.Get("/:chainRoot/audit", middleware.AuthUser(), docsHandler.GetAudit)
	docs.Patch("/:chainRoot/folder", middleware.AuthUser(), foldersHandler.AssignChainFolder)
	docs.Delete("/:chainRoot", middleware.AuthAdmin(), trashHandler.DeleteChain)

	// Housing unit folder routes
	units := api.Group("/units")
	units.Post("/:unit/folders", middleware.AuthUser(), foldersHandler.CreateFolder)
	units.Get("/:unit/folders", middleware.AuthUser(), foldersHandler.GetFolderTree)

	// 404 handler
	app.Use(func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"status":    fiber.StatusNotFound,
			"message":   "[404] Resource Not Found",
			"ok":        false,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"url":       c.OriginalURL(),
		})
	})

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-c
		log.Println("Gracefully shutting down...")
		_ = app.Shutdown()
	}()

	// Start server
	port := cfg.Port
	log.Printf("Starting server on port %s", port)
	if err := app.Listen(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}

	log.Println("Server stopped")
}

// customErrorHandler handles errors globally
func customErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := err.Error()
	errorType := "unknown"

	// Engine errors carry their own classification
	if kind := types.KindOf(err); kind != "" {
		code = types.StatusCode(err)
		errorType = string(kind)
	} else if e, ok := err.(*fiber.Error); ok {
		code = e.Code
		message = e.Message
	}

	body := fiber.Map{
		"status":    code,
		"message":   message,
		"ok":        false,
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"url":       c.OriginalURL(),
		"type":      errorType,
	}
	if code == fiber.StatusConflict {
		body["conflictError"] = true
	}

	return c.Status(code).JSON(body)
}
