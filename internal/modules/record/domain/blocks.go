package domain

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var bodyParser = goldmark.New().Parser()

// Blocks recovers the prompt labels of a record body in order. A label is
// the single top-level node closed by a thematic break and opened by either
// a thematic break or the title heading; the latter is how older notes were
// laid out. The node may be of any kind, so labels that read as lists,
// headings or quotes come back as written.
func Blocks(body string) []string {
	src := []byte(body)
	doc := bodyParser.Parse(text.NewReader(src))

	var (
		labels  []string
		open    bool
		byTitle bool
		nodes   []ast.Node
	)
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		switch {
		case n.Kind() == ast.KindThematicBreak:
			if !open {
				open, byTitle, nodes = true, false, nodes[:0]
				continue
			}
			if len(nodes) == 0 {
				// "# Title" then "***": the break opens the first block.
				byTitle = false
				continue
			}
			if len(nodes) == 1 {
				if label, ok := sourceText(nodes[0], src); ok {
					labels = append(labels, label)
				}
			}
			open, nodes = false, nodes[:0]
		case n.Kind() == ast.KindHeading && (!open || byTitle && len(nodes) == 0):
			open, byTitle, nodes = true, true, nodes[:0]
		case open:
			nodes = append(nodes, n)
		}
	}
	return labels
}

// sourceText returns the raw lines a block node spans, markers included,
// joined by single spaces.
func sourceText(n ast.Node, src []byte) (string, bool) {
	start, stop := -1, -1
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || c.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		lines := c.Lines()
		if lines.Len() == 0 {
			return ast.WalkContinue, nil
		}
		if s := lines.At(0).Start; start < 0 || s < start {
			start = s
		}
		if e := lines.At(lines.Len() - 1).Stop; e > stop {
			stop = e
		}
		return ast.WalkContinue, nil
	})
	if start < 0 {
		return "", false
	}
	for start > 0 && src[start-1] != '\n' {
		start--
	}
	for stop < len(src) && src[stop] != '\n' {
		stop++
	}
	var parts []string
	for _, line := range strings.Split(string(src[start:stop]), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			parts = append(parts, line)
		}
	}
	if len(parts) == 0 {
		return "", false
	}
	return strings.Join(parts, " "), true
}
