// Package service holds the use cases behind the REST API. It depends on
// repository and storage abstractions only, never on the delivery layer.
package service

import (
	"errors"
)

var (
	ErrIDRequired      = errors.New("id is required")
	ErrIDExists        = errors.New("a new entity cannot already have an id")
	ErrNotFound        = errors.New("entity not found")
	ErrNameRequired    = errors.New("name is required")
	ErrContentRequired = errors.New("content is required")
	ErrLinkRequired    = errors.New("document link is required")
	ErrReaderNil       = errors.New("reader is nil")
	ErrCodeRequired    = errors.New("authorization code is required")
)

const (
	defaultLimit = 20
	maxLimit     = 100
)

// ListResult is the service-level DTO for a page of entities.
type ListResult[T any] struct {
	Items []T `json:"data"`
	Total int `json:"total"`
}

// clampPage applies the default and upper bound to limit and floors offset at zero.
func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
