package statement

import "github.com/proforma/backend/internal/domain/shared"

var (
	// ErrPathNotFound indicates an addressed node does not exist in the tree
	ErrPathNotFound = shared.NewDomainError("PATH_NOT_FOUND", "statement path does not resolve to a node")
	// ErrInvalidPath indicates a malformed path (empty segment, duplicate segment)
	ErrInvalidPath = shared.NewDomainError("INVALID_PATH", "statement path is malformed")
	// ErrMaxChildren indicates the per-node child capacity is exhausted
	ErrMaxChildren = shared.NewDomainError("MAX_CHILDREN", "node already holds the maximum number of children")
	// ErrPinnedItem indicates an attempt to delete, move, or clone a pinned row
	ErrPinnedItem = shared.NewDomainError("PINNED_ITEM", "pinned rows cannot be deleted, moved, or cloned")
	// ErrSubtotalReadOnly indicates a write against a computed subtotal row
	ErrSubtotalReadOnly = shared.NewDomainError("SUBTOTAL_READ_ONLY", "subtotal rows are computed and cannot be edited")
	// ErrInvalidCloneCount indicates a clone request outside the allowed range
	ErrInvalidCloneCount = shared.NewDomainError("INVALID_CLONE_COUNT", "clone count must be between 1 and 10")
	// ErrUnknownField indicates an edit against a field name the engine does not know
	ErrUnknownField = shared.NewDomainError("UNKNOWN_FIELD", "unknown statement field")
)
