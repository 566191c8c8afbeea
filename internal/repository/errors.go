package repository

import "errors"

// Common repository errors
var (
	// ErrBoardNotFound is returned when a board is not found
	ErrBoardNotFound = errors.New("board not found")

	// ErrIconNotFound is returned when a library icon is not found
	ErrIconNotFound = errors.New("icon not found")

	// ErrInvalidSortField is returned when a caller asks for a sort order
	// the boards composite indexes do not cover
	ErrInvalidSortField = errors.New("invalid sort field")
)
