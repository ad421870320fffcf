package doxygen

import "strings"

// Document is the decoded subset of a Doxygen XML file: every compound
// definition and every member definition, in document order.
type Document struct {
	Compounds []Compound
	Members   []Member
}

// Compound is a compounddef element (class, struct, namespace, file).
type Compound struct {
	Kind     string
	Name     string
	Brief    *Description
	Detailed *Description
	Enums    []Enum
}

// Enum is an enum element nested anywhere under a compound.
type Enum struct {
	Name   string
	Brief  *Description
	Values []EnumValue
}

// EnumValue is a single enumvalue entry.
type EnumValue struct {
	Name  string
	Brief *Description
}

// Member is a memberdef element (function, variable, typedef).
type Member struct {
	Name       string
	Args       string
	ReturnType string
	Brief      *Description
	Detailed   *Description

	// Listings and Returns come from the detailed description: direct
	// programlisting children with leading/trailing newlines stripped,
	// and direct simplesect kind="return" children as extracted text.
	Listings []string
	Returns  []string

	Params         []Param
	TemplateParams []string
}

// Param is a single param entry of a member.
type Param struct {
	Name  string
	Type  string
	Brief *Description
}

// Description is a briefdescription or detaileddescription node.
// Paragraphs holds the trimmed, non-empty text of each direct para
// child. Fallback is the node's raw trimmed text, set only when the
// node has no para children at all.
type Description struct {
	Paragraphs []string
	Fallback   string
}

// Text returns the description as Markdown-ready prose: paragraphs
// joined by a blank line, or the raw fallback text. A nil or empty
// description yields "".
func (d *Description) Text() string {
	if d == nil {
		return ""
	}

	if len(d.Paragraphs) > 0 {
		return strings.Join(d.Paragraphs, "\n\n")
	}

	return d.Fallback
}

// Group returns the output grouping key for the document: a namespace
// compound groups under its own name, a scoped compound name groups
// under the prefix before the first "::", everything else lands in the
// fixed "global" bucket.
func (d *Document) Group() string {
	if len(d.Compounds) == 0 {
		return GlobalGroup
	}

	first := d.Compounds[0]
	if first.Kind == "namespace" && first.Name != "" {
		return first.Name
	}

	if prefix, _, found := strings.Cut(first.Name, "::"); found && prefix != "" {
		return prefix
	}

	return GlobalGroup
}

// GlobalGroup is the bucket for documents without a namespace or
// scoped compound name.
const GlobalGroup = "global"
