package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"docshelf/internal/kv"
	"docshelf/internal/model"
)

// Storage keys for the two library collections. The key names are part of
// the persisted state shared with existing clients; do not rename.
const (
	RecentKey    = "recentDocuments"
	BookmarksKey = "bookmarks"
)

// DefaultMaxRecent caps the recents list when the config does not override it.
const DefaultMaxRecent = 20

var (
	ErrURIRequired  = errors.New("record uri is required")
	ErrNameRequired = errors.New("record name is required")
)

// LibraryService maintains the reader's recents and bookmarks lists on top
// of a key-value store. Each list is one JSON array under a fixed key, and
// every mutation rewrites its whole list in a single write. Reads fail open:
// a missing, unreadable, or unparseable value behaves like an empty list.
// Writes fail loud: persistence errors are returned to the caller.
type LibraryService interface {
	// Recent returns the recently opened documents, most recent first.
	Recent(ctx context.Context) []model.DocumentRecord

	// AddRecent records the document as most recently opened: any previous
	// entry with the same uri is replaced, the new entry goes first, and
	// entries beyond the recents cap are evicted from the tail. The stored
	// record, with its access time stamped, is returned.
	AddRecent(ctx context.Context, rec model.DocumentRecord) (model.DocumentRecord, error)

	// ClearRecent empties the recents list.
	ClearRecent(ctx context.Context) error

	// Bookmarks returns the bookmarked documents, newest first.
	Bookmarks(ctx context.Context) []model.DocumentRecord

	// AddBookmark bookmarks the document. Bookmarking an already-bookmarked
	// uri keeps the existing entry untouched.
	AddBookmark(ctx context.Context, rec model.DocumentRecord) error

	// RemoveBookmark drops the bookmark for uri; an absent uri is a no-op.
	RemoveBookmark(ctx context.Context, uri string) error

	// Bookmarked reports whether uri is currently bookmarked.
	Bookmarked(ctx context.Context, uri string) bool

	// Search matches query case-insensitively against name and type over
	// the union of recents and bookmarks. Recents come first and win
	// duplicates. An empty or blank query matches nothing.
	Search(ctx context.Context, query string) []model.DocumentRecord
}

// libraryService is a concrete implementation of LibraryService.
type libraryService struct {
	store     kv.Store
	log       *slog.Logger
	maxRecent int

	// mu serializes read-modify-write cycles so concurrent mutations
	// cannot drop each other's writes.
	mu sync.Mutex
}

// NewLibraryService constructs a LibraryService over the given store.
// maxRecent <= 0 selects DefaultMaxRecent.
func NewLibraryService(store kv.Store, log *slog.Logger, maxRecent int) LibraryService {
	if maxRecent <= 0 {
		maxRecent = DefaultMaxRecent
	}
	return &libraryService{store: store, log: log, maxRecent: maxRecent}
}

func (s *libraryService) Recent(ctx context.Context) []model.DocumentRecord {
	return s.readList(ctx, RecentKey)
}

func (s *libraryService) AddRecent(ctx context.Context, rec model.DocumentRecord) (model.DocumentRecord, error) {
	if err := validateRecord(rec); err != nil {
		return model.DocumentRecord{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec.AccessedAt = time.Now().UTC()

	current := s.readList(ctx, RecentKey)
	next := make([]model.DocumentRecord, 0, len(current)+1)
	next = append(next, rec)
	for _, r := range current {
		if r.URI == rec.URI {
			continue
		}
		next = append(next, r)
	}
	if len(next) > s.maxRecent {
		next = next[:s.maxRecent]
	}

	if err := s.writeList(ctx, RecentKey, next); err != nil {
		return model.DocumentRecord{}, err
	}
	return rec, nil
}

func (s *libraryService) ClearRecent(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.writeList(ctx, RecentKey, []model.DocumentRecord{})
}

func (s *libraryService) Bookmarks(ctx context.Context) []model.DocumentRecord {
	return s.readList(ctx, BookmarksKey)
}

func (s *libraryService) AddBookmark(ctx context.Context, rec model.DocumentRecord) error {
	if err := validateRecord(rec); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.readList(ctx, BookmarksKey)
	for _, r := range current {
		if r.URI == rec.URI {
			// First write wins; the existing entry stays and no
			// storage write happens.
			return nil
		}
	}

	next := append([]model.DocumentRecord{rec}, current...)
	return s.writeList(ctx, BookmarksKey, next)
}

func (s *libraryService) RemoveBookmark(ctx context.Context, uri string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	current := s.readList(ctx, BookmarksKey)
	next := make([]model.DocumentRecord, 0, len(current))
	for _, r := range current {
		if r.URI == uri {
			continue
		}
		next = append(next, r)
	}
	return s.writeList(ctx, BookmarksKey, next)
}

func (s *libraryService) Bookmarked(ctx context.Context, uri string) bool {
	for _, r := range s.readList(ctx, BookmarksKey) {
		if r.URI == uri {
			return true
		}
	}
	return false
}

func (s *libraryService) Search(ctx context.Context, query string) []model.DocumentRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		// A blank query returns no results, not the whole library.
		return []model.DocumentRecord{}
	}

	seen := make(map[string]struct{})
	out := []model.DocumentRecord{}
	for _, r := range append(s.readList(ctx, RecentKey), s.readList(ctx, BookmarksKey)...) {
		if _, dup := seen[r.URI]; dup {
			continue
		}
		seen[r.URI] = struct{}{}
		if strings.Contains(strings.ToLower(r.Name), q) || strings.Contains(strings.ToLower(r.Type), q) {
			out = append(out, r)
		}
	}
	return out
}

func validateRecord(rec model.DocumentRecord) error {
	if rec.URI == "" {
		return ErrURIRequired
	}
	if rec.Name == "" {
		return ErrNameRequired
	}
	return nil
}

// readList loads and parses the JSON list under key. Failures degrade to an
// empty list: a missing key is normal first-run state; anything else is
// logged and treated as absent so one bad value cannot take the library down.
func (s *libraryService) readList(ctx context.Context, key string) []model.DocumentRecord {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn("library read degraded", "key", key, "error", err.Error())
		}
		return []model.DocumentRecord{}
	}

	var recs []model.DocumentRecord
	if err := json.Unmarshal([]byte(raw), &recs); err != nil {
		s.log.Warn("library value unparseable", "key", key, "error", err.Error())
		return []model.DocumentRecord{}
	}
	if recs == nil {
		recs = []model.DocumentRecord{}
	}
	return recs
}

// writeList persists the whole list under key in one write.
func (s *libraryService) writeList(ctx context.Context, key string, recs []model.DocumentRecord) error {
	b, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, string(b)); err != nil {
		return fmt.Errorf("persist %s: %w", key, err)
	}
	return nil
}
