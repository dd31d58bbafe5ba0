package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/model"
	"docshelf/internal/service"
)

// ListRecents returns the recently opened documents, most recent first.
func ListRecents(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": svc.Recent(c.UserContext())})
	}
}

// AddRecent records a document as most recently opened and returns the
// stored record with its access time stamped.
func AddRecent(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rec model.DocumentRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		stored, err := svc.AddRecent(c.UserContext(), rec)
		if err != nil {
			if errors.Is(err, service.ErrURIRequired) || errors.Is(err, service.ErrNameRequired) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_RECORD", "uri and name are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_WRITE_FAILED", "recent entry was not saved")
		}
		return c.Status(fiber.StatusCreated).JSON(stored)
	}
}

// ClearRecents empties the recents list.
func ClearRecents(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if err := svc.ClearRecent(c.UserContext()); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_WRITE_FAILED", "recent list was not cleared")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// ListBookmarks returns the bookmarked documents, newest first.
func ListBookmarks(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": svc.Bookmarks(c.UserContext())})
	}
}

// AddBookmark bookmarks a document. Re-bookmarking an existing uri is a
// silent success.
func AddBookmark(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var rec model.DocumentRecord
		if err := c.BodyParser(&rec); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		if err := svc.AddBookmark(c.UserContext(), rec); err != nil {
			if errors.Is(err, service.ErrURIRequired) || errors.Is(err, service.ErrNameRequired) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_RECORD", "uri and name are required")
			}
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_WRITE_FAILED", "bookmark was not saved")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// RemoveBookmark drops the bookmark named by the uri query parameter.
// Removing an absent uri still succeeds.
func RemoveBookmark(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uri := c.Query("uri")
		if uri == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri query parameter is required")
		}
		if err := svc.RemoveBookmark(c.UserContext(), uri); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "STORAGE_WRITE_FAILED", "bookmark was not removed")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// BookmarkStatus reports whether the uri query parameter is bookmarked.
func BookmarkStatus(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uri := c.Query("uri")
		if uri == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri query parameter is required")
		}
		return c.JSON(fiber.Map{
			"uri":        uri,
			"bookmarked": svc.Bookmarked(c.UserContext(), uri),
		})
	}
}

// SearchDocuments matches the q query parameter against the library. A
// missing or blank q yields an empty result set.
func SearchDocuments(svc service.LibraryService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"data": svc.Search(c.UserContext(), c.Query("q"))})
	}
}
