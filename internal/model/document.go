package model

// Document is the plain view of a stored document: its content, the link to
// the source file, and an optional binary blob.
// The same record backs AppDocument, which adds the category and tag references.
type Document struct {
	ID              string `json:"id,omitempty"`
	Content         string `json:"content"`
	DocumentLink    string `json:"document_link"`
	Blob            []byte `json:"blob,omitempty"`
	BlobContentType string `json:"blob_content_type,omitempty"`
	// BlobKey is the object storage key of Blob; it never leaves the server.
	BlobKey string `json:"-"`
}

// Equal reports whether d and o identify the same persisted document.
// Documents without an id are only equal to themselves.
func (d *Document) Equal(o *Document) bool {
	if d == nil || o == nil {
		return false
	}
	if d == o {
		return true
	}
	return sameID(d.ID, o.ID)
}

// AppDocument is a Document with its relationships.
type AppDocument struct {
	Document
	CategoryID *string `json:"category_id"`
	TagIDs     IDSet   `json:"tag_ids"`
}

// Equal reports whether d and o identify the same persisted document.
func (d *AppDocument) Equal(o *AppDocument) bool {
	if d == nil || o == nil {
		return false
	}
	if d == o {
		return true
	}
	return sameID(d.ID, o.ID)
}

func sameID(a, b string) bool {
	return a != "" && b != "" && a == b
}
