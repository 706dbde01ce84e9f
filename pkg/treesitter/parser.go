// Package treesitter wraps go-tree-sitter for the single target grammar the
// analyzer supports: Python.
package treesitter

import (
	"context"
	"fmt"
	"sync"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/python"
)

// Parser is a goroutine-safe wrapper around a tree-sitter parser configured
// with the Python grammar.
type Parser struct {
	mu     sync.Mutex
	parser *sitter.Parser
}

// New creates a Parser ready to parse Python source.
func New() *Parser {
	p := sitter.NewParser()
	p.SetLanguage(python.GetLanguage())
	return &Parser{parser: p}
}

// Parse parses source code and returns a tree-sitter Tree. The caller owns
// the tree and must Close it.
func (p *Parser) Parse(code []byte) (*sitter.Tree, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	tree, err := p.parser.ParseCtx(context.Background(), nil, code)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	return tree, nil
}
