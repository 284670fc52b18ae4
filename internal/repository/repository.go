// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.
// Lookups of a missing row return sql.ErrNoRows.
package repository

import "errors"

// ErrInvalidReference is returned when a write points at a category or tag that does not exist.
var ErrInvalidReference = errors.New("referenced entity does not exist")

// PageQuery holds limit/offset pagination parameters.
type PageQuery struct {
	Limit  int
	Offset int
}

// PageResult is a generic pagination result wrapper.
// T is typically a model type.
type PageResult[T any] struct {
	Items []T
	Total int
}
