// Package render turns a decoded Doxygen document into Markdown. The
// transformation is a single pass over the document with no state
// shared between calls, so identical input always produces identical
// output.
package render

import (
	"regexp"
	"strings"

	"github.com/g5becks/doxmd/internal/doxygen"
)

var nonAlnum = regexp.MustCompile(`[^a-z0-9]+`)

// Slug lowercases text, collapses every run of non-alphanumeric
// characters into a single hyphen, and trims leading and trailing
// hyphens. Empty input yields an empty slug.
func Slug(text string) string {
	s := strings.ToLower(text)
	s = nonAlnum.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Convert parses Doxygen XML content and renders it as Markdown. It
// fails only when the content is not well-formed XML, in which case no
// output is produced.
func Convert(content []byte) (string, error) {
	doc, err := doxygen.Parse(content)
	if err != nil {
		return "", err
	}

	return Markdown(doc), nil
}

// Markdown renders a document: compound sections first, then every
// member definition, all in document order. The result never starts
// with a blank line and ends with exactly one trailing newline.
func Markdown(doc *doxygen.Document) string {
	var blocks []string

	for _, compound := range doc.Compounds {
		blocks = renderCompound(blocks, compound)
	}

	for _, member := range doc.Members {
		blocks = renderMember(blocks, member)
	}

	return strings.TrimSpace(strings.Join(blocks, "\n")) + "\n"
}

func renderCompound(blocks []string, compound doxygen.Compound) []string {
	switch compound.Kind {
	case "class", "struct", "namespace":
		blocks = append(blocks, "## "+compound.Name)

		if text := compound.Brief.Text(); text != "" {
			blocks = append(blocks, text)
		}

		if text := compound.Detailed.Text(); text != "" {
			blocks = append(blocks, text)
		}
	}

	// Enums are emitted for every compound kind, including file-level
	// groupings that get no heading of their own.
	for _, enum := range compound.Enums {
		blocks = append(blocks, "### Enum: "+enum.Name)

		if text := enum.Brief.Text(); text != "" {
			blocks = append(blocks, text)
		}

		for _, value := range enum.Values {
			blocks = append(blocks, "- `"+value.Name+"`: "+value.Brief.Text())
		}
	}

	return blocks
}

func renderMember(blocks []string, member doxygen.Member) []string {
	blocks = append(blocks, "### "+member.Name+member.Args)
	anchor := Slug(member.Name + " " + member.Args)

	if text := member.Brief.Text(); text != "" {
		blocks = append(blocks, "**Brief:** "+text)
	}

	if text := member.Detailed.Text(); text != "" {
		blocks = append(blocks, text)
	}

	for _, code := range member.Listings {
		blocks = append(blocks, "```cpp\n"+code+"\n```")
	}

	for _, returns := range member.Returns {
		blocks = append(blocks, "**Returns:** "+returns)
	}

	if len(member.Params) > 0 {
		blocks = append(blocks,
			"**Parameters:**",
			"| Name | Type | Description |",
			"| --- | --- | --- |",
		)

		for _, param := range member.Params {
			blocks = append(blocks, paramRow(anchor, param))
		}
	}

	if len(member.TemplateParams) > 0 {
		blocks = append(blocks, "**Template parameters:**")
		for _, templateParam := range member.TemplateParams {
			blocks = append(blocks, "- "+templateParam)
		}
	}

	if member.ReturnType != "" && !recentReturnsBlock(blocks) {
		blocks = append(blocks, "**Type:** "+member.ReturnType)
	}

	// Blank separator between members.
	return append(blocks, "")
}

func paramRow(memberAnchor string, param doxygen.Param) string {
	typeCell := "`" + param.Type + "`"
	if typeSlug := Slug(param.Type); typeSlug != "" {
		typeCell = "[`" + param.Type + "`](#type-" + typeSlug + ")"
	}

	nameCell := ""
	if param.Name != "" {
		nameCell = "[`" + param.Name + "`](#" + memberAnchor + "-" + Slug(param.Name) + ")"
	}

	return "| " + nameCell + " | " + typeCell + " | " + param.Brief.Text() + " |"
}

// recentReturnsBlock reports whether any of the last three emitted
// blocks is a Returns annotation, in which case the return-type
// fallback is suppressed.
func recentReturnsBlock(blocks []string) bool {
	start := max(len(blocks)-3, 0)
	for _, block := range blocks[start:] {
		if strings.HasPrefix(block, "**Returns:**") {
			return true
		}
	}

	return false
}
