package model

import "time"

// DocumentRecord describes a document as it appears in the reader's library
// lists (recents, bookmarks, search results).
// This is a pure domain model with no storage-specific dependencies or tags.
// It can be used across layers (HTTP, service, key-value store) without coupling to persistence.
//
// The JSON shape is a compatibility surface: records written by older clients
// must round-trip unchanged, so field names and optionality are fixed.
type DocumentRecord struct {
	// URI is the stable identifier of the document. Records are compared
	// by URI everywhere; two records with the same URI are the same document.
	URI string `json:"uri"`
	// Name is the display filename.
	Name string `json:"name"`
	// Type is a lowercase extension-derived token ("pdf", "epub"), empty when unknown.
	Type string `json:"type,omitempty"`
	// Size is a preformatted human-readable size ("2.4MB"). The library treats
	// it as opaque text and never parses it.
	Size         string    `json:"size,omitempty"`
	LastModified time.Time `json:"lastModified,omitzero"`
	// AccessedAt is stamped by the library when the record enters the
	// recents list. Zero for records that were never opened.
	AccessedAt time.Time `json:"accessedAt,omitzero"`
}
