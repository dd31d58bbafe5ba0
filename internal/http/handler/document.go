package handler

import (
	"bytes"
	"errors"
	"io"
	"log/slog"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"docshelf/internal/files"
	"docshelf/internal/service"
)

// ListDocuments returns the shelf newest first with limit & offset.
func ListDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.Atoi(c.Query("limit", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.Atoi(c.Query("offset", "0"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		res, err := svc.List(c.UserContext(), limit, offset)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// UploadDocument accepts a multipart upload (field name: file), sniffs the
// content type, counts pages for PDFs, and stores the document.
func UploadDocument(svc service.DocumentService, log *slog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		// Buffer the upload so the bytes can be sniffed and, for PDFs,
		// page-counted before they go to storage.
		data, err := io.ReadAll(f)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_READ_ERROR", "cannot read uploaded file")
		}

		ct := files.DetectContentType(fh.Header.Get("Content-Type"), data)

		var pages *int
		if ct == "application/pdf" {
			n, err := files.PDFPageCount(data)
			if err != nil {
				// Page count is an enrichment; a malformed PDF still uploads.
				log.Warn("pdf page count failed", "filename", fh.Filename, "error", err.Error())
			} else {
				pages = &n
			}
		}

		rec, err := svc.Upload(c.UserContext(), bytes.NewReader(data), fh.Filename, ct, int64(len(data)), pages)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	}
}

// OpenDocument resolves the uri query parameter into a presigned download
// URL and records the open in the recents list.
func OpenDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uri := c.Query("uri")
		if uri == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri query parameter is required")
		}

		res, err := svc.Open(c.UserContext(), uri)
		if err != nil {
			if errors.Is(err, service.ErrNotFound) {
				return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "document not found")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// DeleteDocument removes the document content named by the uri query
// parameter. Recents and bookmarks entries are left alone.
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uri := c.Query("uri")
		if uri == "" {
			return writeError(c, fiber.StatusBadRequest, "URI_REQUIRED", "uri query parameter is required")
		}
		if err := svc.Delete(c.UserContext(), uri); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}
