package model

// Tag labels documents. DocumentIDs is the inverse of AppDocument.TagIDs and
// is not serialized; the document side owns the association.
type Tag struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DocumentIDs IDSet  `json:"-"`
}

// Equal reports whether t and o identify the same persisted tag.
func (t *Tag) Equal(o *Tag) bool {
	if t == nil || o == nil {
		return false
	}
	if t == o {
		return true
	}
	return sameID(t.ID, o.ID)
}
