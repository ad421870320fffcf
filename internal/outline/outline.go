// Package outline extracts a heading outline and a short description
// from generated Markdown, for inclusion in the manifest.
package outline

import (
	"bytes"
	"strings"

	"github.com/gomarkdown/markdown/ast"
	"github.com/gomarkdown/markdown/parser"
)

type Outline struct {
	Headings []Heading `json:"headings,omitempty"`
}

type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
	Line  int    `json:"line"`
}

type Result struct {
	Description string
	Outline     *Outline
}

// Extract parses Markdown content and returns its heading outline plus
// a one-line description built from the first heading and the first
// paragraph.
func Extract(content []byte) *Result {
	mdParser := parser.NewWithExtensions(parser.CommonExtensions)
	doc := mdParser.Parse(content)

	var headings []Heading
	var firstHeading string
	var firstParagraph string

	ast.WalkFunc(doc, func(node ast.Node, entering bool) ast.WalkStatus {
		if !entering {
			return ast.GoToNext
		}

		switch n := node.(type) {
		case *ast.Heading:
			text := extractText(n)
			if text == "" {
				return ast.GoToNext
			}

			headings = append(headings, Heading{Level: n.Level, Text: text})
			if firstHeading == "" {
				firstHeading = text
			}
		case *ast.Paragraph:
			if firstParagraph == "" {
				firstParagraph = extractText(n)
			}
		}

		return ast.GoToNext
	})

	assignHeadingLineNumbers(headings, content)

	return &Result{
		Description: buildDescription(firstHeading, firstParagraph),
		Outline:     &Outline{Headings: headings},
	}
}

func extractText(node ast.Node) string {
	var buf strings.Builder
	ast.WalkFunc(node, func(n ast.Node, entering bool) ast.WalkStatus {
		if entering {
			if text, ok := n.(*ast.Text); ok {
				buf.Write(text.Literal)
			}
		}
		return ast.GoToNext
	})

	// Collapse internal whitespace so table cells and soft wraps read
	// as a single line.
	return strings.Join(strings.Fields(buf.String()), " ")
}

// assignHeadingLineNumbers scans content for ATX heading markers and
// assigns the correct line number to each heading in document order.
// gomarkdown's AST does not store source positions.
func assignHeadingLineNumbers(headings []Heading, content []byte) {
	if len(headings) == 0 {
		return
	}

	lines := bytes.Split(content, []byte("\n"))
	hi := 0
	inFenced := false

	for lineIdx := 0; lineIdx < len(lines) && hi < len(headings); lineIdx++ {
		trimmed := bytes.TrimSpace(lines[lineIdx])

		if bytes.HasPrefix(trimmed, []byte("```")) {
			inFenced = !inFenced
			continue
		}
		if inFenced {
			continue
		}

		if level := atxHeadingLevel(lines[lineIdx]); level == headings[hi].Level {
			headings[hi].Line = lineIdx + 1
			hi++
		}
	}
}

// atxHeadingLevel returns the heading level (1-6) for an ATX heading
// line, or 0 if the line is not an ATX heading.
func atxHeadingLevel(line []byte) int {
	spaces := 0
	for spaces < len(line) && spaces < 4 && line[spaces] == ' ' {
		spaces++
	}
	if spaces >= 4 || spaces >= len(line) || line[spaces] != '#' {
		return 0
	}

	level := 0
	for spaces+level < len(line) && level < 7 && line[spaces+level] == '#' {
		level++
	}
	if level >= 1 && level <= 6 && spaces+level < len(line) && line[spaces+level] == ' ' {
		return level
	}
	return 0
}

func buildDescription(firstHeading, firstParagraph string) string {
	if firstHeading != "" {
		if firstParagraph != "" {
			return firstHeading + " - " + firstParagraph
		}
		return firstHeading
	}

	return firstParagraph
}
