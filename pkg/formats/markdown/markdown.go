// Package markdown is the non-core Markdown wrapper spec.md §1
// describes: it walks a Markdown document's AST to find fenced code
// blocks and returns their bodies; it does not parse them itself. The
// CLI's markdown subcommand runs each body through the JSON pipeline the
// same way the JSON core handles a fence embedded in arbitrary text —
// except here the fence boundaries come from a real
// Markdown parser (github.com/yuin/goldmark) instead of the line-scanning
// heuristic pkg/extract uses, since a full Markdown AST already has exact
// fenced-code-block nodes.
package markdown

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// FencedBlock is one fenced code block goldmark found in a document.
type FencedBlock struct {
	Lang string // lowercase language info string, "" if none
	Body string
}

// FencedBlocks parses doc as Markdown and returns every fenced code block
// in document order.
func FencedBlocks(doc string) ([]FencedBlock, error) {
	md := goldmark.New()
	src := []byte(doc)
	reader := text.NewReader(src)
	root := md.Parser().Parse(reader)

	var blocks []FencedBlock
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		lang := ""
		if fcb.Info != nil {
			lang = strings.ToLower(strings.TrimSpace(string(fcb.Info.Text(src))))
		}
		var body bytes.Buffer
		for i := 0; i < fcb.Lines().Len(); i++ {
			line := fcb.Lines().At(i)
			body.Write(line.Value(src))
		}
		blocks = append(blocks, FencedBlock{Lang: lang, Body: body.String()})
		return ast.WalkContinue, nil
	})
	if err != nil {
		return nil, err
	}
	return blocks, nil
}

// JSONBlocks filters FencedBlocks to those tagged "json" (or untagged,
// since LLM output often omits the language tag).
func JSONBlocks(doc string) ([]FencedBlock, error) {
	all, err := FencedBlocks(doc)
	if err != nil {
		return nil, err
	}
	var out []FencedBlock
	for _, b := range all {
		if b.Lang == "json" || b.Lang == "" {
			out = append(out, b)
		}
	}
	return out, nil
}
