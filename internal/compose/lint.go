package compose

import (
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// LintArticle inspects a generated article's Markdown structure and returns
// advisory findings. The model is only asked for this structure, never held
// to it, so findings are warnings for the reviewer rather than errors.
func LintArticle(markdown string) []string {
	var findings []string

	source := []byte(markdown)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings int
	var firstIsTitle bool
	for node := doc.FirstChild(); node != nil; node = node.NextSibling() {
		heading, ok := node.(*ast.Heading)
		if !ok {
			continue
		}
		headings++
		if node == doc.FirstChild() && heading.Level == 1 {
			firstIsTitle = true
		}
	}

	if !firstIsTitle {
		findings = append(findings, "article does not open with a top-level heading")
	}
	if headings < 3 {
		findings = append(findings, fmt.Sprintf("article has %d headings, expected a sectioned document", headings))
	}

	var hasCode bool
	_ = ast.Walk(doc, func(node ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node.(type) {
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			hasCode = true
			return ast.WalkStop, nil
		}
		return ast.WalkContinue, nil
	})
	if !hasCode {
		findings = append(findings, "article carries no code examples")
	}

	return findings
}
