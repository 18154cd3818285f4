package syntax

import (
	"bytes"
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/iw2rmb/filigree/buffer"
)

// Parser owns the syntax tree for one document and keeps it synchronized
// with applied edits. The tree is immutable once built; each re-parse
// replaces it wholesale and the previous tree is closed after the new one
// exists.
type Parser struct {
	lang   *Language
	parser *sitter.Parser
	tree   *sitter.Tree
}

// NewParser returns a parser for lang. The first Parse call builds the
// initial tree.
func NewParser(lang *Language) *Parser {
	p := sitter.NewParser()
	p.SetLanguage(lang.grammar)
	return &Parser{lang: lang, parser: p}
}

// Language returns the language this parser was built for.
func (p *Parser) Language() *Language { return p.lang }

// Parse builds the tree from scratch, discarding any previous tree.
func (p *Parser) Parse(ctx context.Context, src []byte) error {
	tree, err := p.parser.ParseCtx(ctx, nil, src)
	if err != nil {
		return fmt.Errorf("syntax: parse: %w", err)
	}
	if p.tree != nil {
		p.tree.Close()
	}
	p.tree = tree
	return nil
}

// Update feeds one applied edit to the current tree, re-parses src with
// subtree reuse, and returns the damage range: the byte span whose
// highlighting may have changed. The span covers the smallest named node
// around the edit, expanded to whole lines, and widened to the end of the
// document when parse errors extend past the edit (the unterminated
// string case). It may exceed the edit's own range but never
// under-reports.
func (p *Parser) Update(ctx context.Context, e buffer.AppliedEdit, src []byte) (buffer.Range, error) {
	if p.tree == nil {
		if err := p.Parse(ctx, src); err != nil {
			return buffer.Range{}, err
		}
		return buffer.Range{Start: 0, End: len(src)}, nil
	}

	p.tree.Edit(sitter.EditInput{
		StartIndex:  uint32(e.RangeBefore.Start),
		OldEndIndex: uint32(e.RangeBefore.End),
		NewEndIndex: uint32(e.RangeAfter.End),
		StartPoint:  sitterPoint(e.StartPoint),
		OldEndPoint: sitterPoint(e.OldEndPoint),
		NewEndPoint: sitterPoint(e.NewEndPoint),
	})

	tree, err := p.parser.ParseCtx(ctx, p.tree, src)
	if err != nil {
		return buffer.Range{}, fmt.Errorf("syntax: reparse: %w", err)
	}
	p.tree.Close()
	p.tree = tree

	return p.damage(e, src), nil
}

// Root returns the current tree's root node, or nil before the first
// Parse.
func (p *Parser) Root() *sitter.Node {
	if p.tree == nil {
		return nil
	}
	return p.tree.RootNode()
}

// Degraded reports whether the current tree contains error nodes. A
// degraded tree still answers highlight queries; callers may surface an
// indicator but must not treat this as an error.
func (p *Parser) Degraded() bool {
	return p.tree != nil && p.tree.RootNode().HasError()
}

// Close releases the tree. The parser must not be used afterwards.
func (p *Parser) Close() {
	if p.tree != nil {
		p.tree.Close()
		p.tree = nil
	}
}

func (p *Parser) damage(e buffer.AppliedEdit, src []byte) buffer.Range {
	root := p.tree.RootNode()
	d := buffer.Range{Start: e.RangeAfter.Start, End: e.RangeAfter.End}
	if d.End > len(src) {
		d.End = len(src)
	}

	cover := smallestNamedCover(root, uint32(d.Start), uint32(d.End))
	if s := int(cover.StartByte()); s < d.Start {
		d.Start = s
	}
	if n := int(cover.EndByte()); n > d.End {
		d.End = n
	}

	d.Start = lineStartBefore(src, d.Start)
	d.End = lineEndAfter(src, d.End)

	if root.HasError() && errorReachesPast(root, uint32(d.End)) {
		d.End = len(src)
	}
	return d
}

// smallestNamedCover descends from root to the deepest named node whose
// span contains [start, end].
func smallestNamedCover(root *sitter.Node, start, end uint32) *sitter.Node {
	node := root
	for {
		var next *sitter.Node
		for i := 0; i < int(node.NamedChildCount()); i++ {
			c := node.NamedChild(i)
			if c.StartByte() <= start && end <= c.EndByte() {
				next = c
				break
			}
		}
		if next == nil {
			return node
		}
		node = next
	}
}

// errorReachesPast reports whether an error or missing node extends past
// the byte offset end.
func errorReachesPast(n *sitter.Node, end uint32) bool {
	if n.IsError() || n.IsMissing() {
		return n.EndByte() > end
	}
	if !n.HasError() {
		return false
	}
	for i := 0; i < int(n.ChildCount()); i++ {
		if errorReachesPast(n.Child(i), end) {
			return true
		}
	}
	return false
}

func sitterPoint(pt buffer.Point) sitter.Point {
	return sitter.Point{Row: uint32(pt.Row), Column: uint32(pt.Col)}
}

func lineStartBefore(src []byte, off int) int {
	if off > len(src) {
		off = len(src)
	}
	if off <= 0 {
		return 0
	}
	return bytes.LastIndexByte(src[:off], '\n') + 1
}

func lineEndAfter(src []byte, off int) int {
	if off >= len(src) {
		return len(src)
	}
	if i := bytes.IndexByte(src[off:], '\n'); i >= 0 {
		return off + i + 1
	}
	return len(src)
}
