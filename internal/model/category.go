package model

// Category groups documents. DocumentIDs is the inverse of AppDocument.CategoryID.
type Category struct {
	ID          string `json:"id,omitempty"`
	Name        string `json:"name"`
	DocumentIDs IDSet  `json:"document_ids"`
}

// Equal reports whether c and o identify the same persisted category.
func (c *Category) Equal(o *Category) bool {
	if c == nil || o == nil {
		return false
	}
	if c == o {
		return true
	}
	return sameID(c.ID, o.ID)
}
