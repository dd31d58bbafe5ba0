package files

// Package files derives document metadata from external file facts:
// names, byte counts, object-storage entries, and raw content.
// The library layer stores what this package produces and never
// re-derives it.

import (
	"bytes"
	"fmt"
	"net/http"
	"path"
	"strconv"
	"strings"

	"github.com/docker/go-units"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	pdfmodel "github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"docshelf/internal/model"
	"docshelf/internal/storage"
)

const (
	// MetaOriginalFilename preserves the name a document was uploaded under.
	MetaOriginalFilename = "original-filename"
	// MetaPages carries the page count extracted at upload time.
	MetaPages = "pages"
)

// TypeToken derives the lowercase type token from a file name:
// "Report.PDF" -> "pdf". Empty when the name has no extension.
func TypeToken(name string) string {
	ext := path.Ext(name)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

// FormatSize renders a byte count the way the reader UI shows it ("2.4MB").
// The result is carried opaquely on DocumentRecord.Size and never parsed back.
func FormatSize(size int64) string {
	return units.HumanSize(float64(size))
}

// RecordFromObject builds the library record for an object-storage entry.
// The object key doubles as the record URI. The display name prefers the
// preserved upload filename over the generated key.
func RecordFromObject(info storage.ObjectInfo) model.DocumentRecord {
	name := MetaValue(info.Metadata, MetaOriginalFilename)
	if name == "" {
		name = path.Base(info.Key)
	}
	return model.DocumentRecord{
		URI:          info.Key,
		Name:         name,
		Type:         TypeToken(name),
		Size:         FormatSize(info.Size),
		LastModified: info.LastModified,
	}
}

// DetectContentType prefers the client-declared content type and falls back
// to sniffing the payload when it is missing or generic.
func DetectContentType(header string, data []byte) string {
	if header != "" && header != "application/octet-stream" {
		return header
	}
	return http.DetectContentType(data)
}

// PDFPageCount counts the pages of a PDF held in memory. Callers treat a
// failure as "page count unknown", not as a broken upload.
func PDFPageCount(data []byte) (int, error) {
	count, err := api.PageCount(bytes.NewReader(data), pdfmodel.NewDefaultConfiguration())
	if err != nil {
		return 0, fmt.Errorf("count pdf pages: %w", err)
	}
	return count, nil
}

// PagesFromMetadata reads the stored page count back from object metadata.
// It returns nil when the value is absent or unparseable.
func PagesFromMetadata(meta map[string]string) *int {
	v := MetaValue(meta, MetaPages)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return nil
	}
	return &n
}

// MetaValue does a case-insensitive lookup in object user metadata.
// S3 gateways fold metadata keys into canonical header form, so a key
// stored as "original-filename" can come back as "Original-Filename".
func MetaValue(meta map[string]string, key string) string {
	for k, v := range meta {
		if strings.EqualFold(k, key) {
			return v
		}
	}
	return ""
}
