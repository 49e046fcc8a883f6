//go:build cgo

package python

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser wraps tree-sitter's Python grammar. It is not safe for concurrent
// use; create one parser per goroutine.
type Parser struct {
	parser *sitter.Parser
}

// NewParser creates a new Python parser.
func NewParser() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// ParseModule parses source and lowers the concrete syntax tree into the
// facade's statement tree. Malformed input degrades to the statements that
// could be recognized; only a parser-level failure returns an error.
func (p *Parser) ParseModule(ctx context.Context, source []byte) ([]Stmt, error) {
	tree, err := p.parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return lowerModule(tree.RootNode(), source), nil
}

// IsAvailable returns whether Python parsing is available in this build.
func IsAvailable() bool {
	return true
}
