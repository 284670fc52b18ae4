package model

// The functions below keep both sides of the Document↔Tag and
// Category↔Document associations in sync. They only touch memory; callers
// persist each side afterwards. Entities without an id cannot be referenced
// and are left untouched. None of them is safe for concurrent use on the
// same entity.

// AddTagToDocument links tag and doc on both sides. Re-adding a linked pair is a no-op.
func AddTagToDocument(tag *Tag, doc *AppDocument) {
	if !linkable(tag, doc) {
		return
	}
	tag.DocumentIDs.Add(doc.ID)
	doc.TagIDs.Add(tag.ID)
}

// RemoveTagFromDocument unlinks tag and doc on both sides. Unlinked pairs are left as they are.
func RemoveTagFromDocument(tag *Tag, doc *AppDocument) {
	if !linkable(tag, doc) {
		return
	}
	tag.DocumentIDs.Remove(doc.ID)
	doc.TagIDs.Remove(tag.ID)
}

// AddDocumentToCategory puts doc into category and points doc at it.
// A previous category reference is overwritten; its document set is not updated.
func AddDocumentToCategory(category *Category, doc *AppDocument) {
	if category == nil || doc == nil || category.ID == "" || doc.ID == "" {
		return
	}
	category.DocumentIDs.Add(doc.ID)
	id := category.ID
	doc.CategoryID = &id
}

// RemoveDocumentFromCategory takes doc out of category. The document's
// category reference is cleared only when it still points at category.
func RemoveDocumentFromCategory(category *Category, doc *AppDocument) {
	if category == nil || doc == nil || category.ID == "" || doc.ID == "" {
		return
	}
	category.DocumentIDs.Remove(doc.ID)
	if doc.CategoryID != nil && *doc.CategoryID == category.ID {
		doc.CategoryID = nil
	}
}

func linkable(tag *Tag, doc *AppDocument) bool {
	return tag != nil && doc != nil && tag.ID != "" && doc.ID != ""
}
