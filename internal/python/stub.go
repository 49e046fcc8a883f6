//go:build !cgo

package python

import (
	"context"
	"errors"
)

// ErrNoCGO is returned when Python parsing is unavailable because the
// binary was built without CGO (tree-sitter).
var ErrNoCGO = errors.New("python parsing requires CGO (tree-sitter)")

// Parser wraps tree-sitter's Python grammar.
// This is a stub implementation for non-CGO builds.
type Parser struct{}

// NewParser creates a new Python parser.
// Returns nil when CGO is disabled.
func NewParser() *Parser {
	return nil
}

// ParseModule parses source into the facade's statement tree.
// Stub implementation returns an error.
func (p *Parser) ParseModule(ctx context.Context, source []byte) ([]Stmt, error) {
	return nil, ErrNoCGO
}

// IsAvailable returns whether Python parsing is available.
// Returns false when CGO is disabled.
func IsAvailable() bool {
	return false
}
