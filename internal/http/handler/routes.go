package handler

import (
	"database/sql"
	"log/slog"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/service"
)

// RegisterRoutes attaches all HTTP routes to the provided Fiber app.
// Handlers stay thin: parse, call the service, translate errors.
func RegisterRoutes(app *fiber.App, db *sql.DB, log *slog.Logger, docSvc service.DocumentService, libSvc service.LibraryService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	app.Get("/recents", ListRecents(libSvc))
	app.Post("/recents", AddRecent(libSvc))
	app.Delete("/recents", ClearRecents(libSvc))

	app.Get("/bookmarks", ListBookmarks(libSvc))
	app.Post("/bookmarks", AddBookmark(libSvc))
	app.Delete("/bookmarks", RemoveBookmark(libSvc))
	app.Get("/bookmarks/status", BookmarkStatus(libSvc))

	app.Get("/search", SearchDocuments(libSvc))

	app.Get("/documents", ListDocuments(docSvc))
	app.Post("/documents", UploadDocument(docSvc, log))
	app.Get("/documents/open", OpenDocument(docSvc))
	app.Delete("/documents", DeleteDocument(docSvc))
}
