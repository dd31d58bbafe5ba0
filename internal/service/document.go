package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/google/uuid"

	"docshelf/internal/files"
	"docshelf/internal/model"
	"docshelf/internal/storage"
)

var (
	ErrNotFound  = errors.New("document not found")
	ErrReaderNil = errors.New("reader is nil")
)

// presignExpiry bounds how long an open link stays usable.
const presignExpiry = 15 * time.Minute

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.DocumentRecord `json:"data"`
	Total int                    `json:"total"`
}

// OpenResult carries what a viewer needs to display a document: the record,
// a time-limited download URL, and the page count when one is known.
type OpenResult struct {
	Document model.DocumentRecord `json:"document"`
	URL      string               `json:"url"`
	Pages    *int                 `json:"pages,omitempty"`
}

// DocumentService defines the use cases for handling document content.
type DocumentService interface {
	// Upload uploads the content to object storage under a generated key.
	// - originalFilename is kept as object metadata and used to extract the extension; the stored name is UUID + original extension.
	// - pages, when non-nil, is kept as object metadata for viewers.
	Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, pages *int) (model.DocumentRecord, error)

	// List returns documents newest first using limit/offset and a total count.
	List(ctx context.Context, limit, offset int) (*DocumentListResult, error)

	// Open resolves the document by uri, records the access in the recents
	// list, and returns a presigned download URL.
	Open(ctx context.Context, uri string) (*OpenResult, error)

	// Delete removes the document content by uri. Recents and bookmarks
	// entries pointing at it are left alone.
	Delete(ctx context.Context, uri string) error
}

// documentService is a concrete implementation of DocumentService.
type documentService struct {
	store   storage.Storage
	library LibraryService
}

// NewDocumentService constructs a new DocumentService.
func NewDocumentService(store storage.Storage, library LibraryService) DocumentService {
	return &documentService{store: store, library: library}
}

func (s *documentService) Upload(ctx context.Context, r io.Reader, originalFilename string, contentType string, size int64, pages *int) (model.DocumentRecord, error) {
	if r == nil {
		return model.DocumentRecord{}, ErrReaderNil
	}
	// Generate the object key using UUID + extension
	ext := filepath.Ext(originalFilename)
	genName := uuid.New().String() + ext
	key := filepath.ToSlash(filepath.Join("documents", genName))

	meta := map[string]string{
		files.MetaOriginalFilename: originalFilename,
	}
	if pages != nil {
		meta[files.MetaPages] = strconv.Itoa(*pages)
	}

	objInfo, err := s.store.Put(ctx, key, r, storage.PutObjectOptions{
		Size:        size,
		ContentType: contentType,
		Metadata:    meta,
	})
	if err != nil {
		return model.DocumentRecord{}, fmt.Errorf("upload to storage: %w", err)
	}

	return files.RecordFromObject(objInfo), nil
}

// List returns paginated documents without exposing storage types. The
// window is applied after sorting, so page boundaries stay stable as long
// as nothing is uploaded in between.
func (s *documentService) List(ctx context.Context, limit, offset int) (*DocumentListResult, error) {
	if limit <= 0 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	objs, err := s.store.List(ctx, "documents/")
	if err != nil {
		return nil, fmt.Errorf("list storage: %w", err)
	}

	sort.Slice(objs, func(i, j int) bool {
		return objs[i].LastModified.After(objs[j].LastModified)
	})

	total := len(objs)
	if offset >= total {
		return &DocumentListResult{Items: []model.DocumentRecord{}, Total: total}, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}

	items := make([]model.DocumentRecord, 0, end-offset)
	for _, obj := range objs[offset:end] {
		items = append(items, files.RecordFromObject(obj))
	}
	return &DocumentListResult{Items: items, Total: total}, nil
}

// Open stats the object, presigns a download URL, and pushes the record
// onto the recents list. Recording the open is part of the operation, not
// best-effort: a failed write fails the open.
func (s *documentService) Open(ctx context.Context, uri string) (*OpenResult, error) {
	if uri == "" {
		return nil, ErrURIRequired
	}

	objInfo, err := s.store.Stat(ctx, uri)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("stat storage: %w", err)
	}

	url, err := s.store.PresignGet(ctx, uri, presignExpiry)
	if err != nil {
		return nil, fmt.Errorf("presign: %w", err)
	}

	stored, err := s.library.AddRecent(ctx, files.RecordFromObject(objInfo))
	if err != nil {
		return nil, fmt.Errorf("record open: %w", err)
	}

	return &OpenResult{
		Document: stored,
		URL:      url,
		Pages:    files.PagesFromMetadata(objInfo.Metadata),
	}, nil
}

// Delete removes the content object. Library entries keep their own
// lifecycle; a recents or bookmarks entry whose document is gone simply
// fails to open later.
func (s *documentService) Delete(ctx context.Context, uri string) error {
	if uri == "" {
		return ErrURIRequired
	}
	if err := s.store.Delete(ctx, uri); err != nil {
		return fmt.Errorf("delete storage: %w", err)
	}
	return nil
}
