// Package analyze converts extracted code into a structured, queryable
// representation by parsing it with the Python grammar and walking the
// syntax tree once.
package analyze

import (
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/duyhunghd6/polycode-cli/internal/repair"
	"github.com/duyhunghd6/polycode-cli/internal/types"
	"github.com/duyhunghd6/polycode-cli/internal/util"
	ts "github.com/duyhunghd6/polycode-cli/pkg/treesitter"
)

// Analyzer produces per-language AnalysisRecords from extracted code.
type Analyzer struct {
	parser *ts.Parser
}

// New creates an Analyzer backed by a Python tree-sitter parser.
func New() *Analyzer {
	return &Analyzer{parser: ts.New()}
}

// Analyze repairs and parses extracted code, returning a record in exactly
// one of three states: no code, parse error, or parsed (statistics plus
// elements). The same input always yields identical output.
func (a *Analyzer) Analyze(code, languageCode string) *types.AnalysisRecord {
	rec := &types.AnalysisRecord{Language: languageCode}
	if strings.TrimSpace(code) == "" {
		return rec
	}
	rec.HasCode = true

	repaired := repair.Repair(code)
	src := []byte(repaired)

	tree, err := a.parser.Parse(src)
	if err != nil {
		rec.Error = fmt.Sprintf("parse failed: %v", err)
		rec.RawCode = repaired
		return rec
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		rec.Error = describeSyntaxError(root, src)
		rec.RawCode = repaired
		return rec
	}

	rec.Statistics, rec.Elements = walk(root, src)
	return rec
}

// describeSyntaxError renders a human-readable location and snippet for the
// first error in document order.
func describeSyntaxError(root *sitter.Node, src []byte) string {
	bad := firstErrorNode(root)
	if bad == nil {
		return "syntax error"
	}
	point := bad.StartPoint()
	if bad.IsMissing() {
		return fmt.Sprintf("syntax error at line %d, column %d: missing %s",
			point.Row+1, point.Column+1, bad.Type())
	}
	snippet := util.Truncate(strings.TrimSpace(bad.Content(src)), 40)
	return fmt.Sprintf("syntax error at line %d, column %d near %q",
		point.Row+1, point.Column+1, snippet)
}

func firstErrorNode(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstErrorNode(n.Child(i)); bad != nil {
			return bad
		}
	}
	return nil
}
