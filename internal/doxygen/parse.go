// Package doxygen decodes the subset of Doxygen's XML output schema
// used by the renderer. Missing elements and attributes are tolerated
// via documented fallbacks; only non-well-formed XML is an error.
package doxygen

import (
	"encoding/xml"
	"strings"

	"github.com/samber/oops"
)

// Parse decodes Doxygen XML content into a Document. The only failure
// mode is malformed XML; every structural irregularity (missing names,
// descriptions, attributes) is absorbed by fallback rules.
func Parse(content []byte) (*Document, error) {
	root := &Node{}
	if err := xml.Unmarshal(content, root); err != nil {
		return nil, oops.
			Code("MALFORMED_XML").
			Hint("Input must be well-formed Doxygen XML").
			Wrapf(err, "parsing doxygen xml")
	}

	doc := &Document{}
	for _, compound := range root.Descendants("compounddef") {
		doc.Compounds = append(doc.Compounds, decodeCompound(compound))
	}

	for _, member := range root.Descendants("memberdef") {
		doc.Members = append(doc.Members, decodeMember(member))
	}

	return doc, nil
}

func decodeCompound(n *Node) Compound {
	compound := Compound{
		Kind:     n.Attr("kind"),
		Name:     strings.TrimSpace(n.ChildText("compoundname")),
		Brief:    decodeDescription(n.Child("briefdescription")),
		Detailed: decodeDescription(n.Child("detaileddescription")),
	}

	for _, enum := range n.Descendants("enum") {
		compound.Enums = append(compound.Enums, decodeEnum(enum))
	}

	return compound
}

func decodeEnum(n *Node) Enum {
	name := strings.TrimSpace(n.ChildText("name"))
	if name == "" {
		name = strings.TrimSpace(n.ChildText("definition"))
	}

	enum := Enum{
		Name:  name,
		Brief: decodeDescription(n.Child("briefdescription")),
	}

	for _, value := range n.ChildAll("enumvalue") {
		valueName := strings.TrimSpace(value.ChildText("name"))
		if valueName == "" {
			valueName = strings.TrimSpace(value.ChildText("id"))
		}

		enum.Values = append(enum.Values, EnumValue{
			Name:  valueName,
			Brief: decodeDescription(value.Child("briefdescription")),
		})
	}

	return enum
}

func decodeMember(n *Node) Member {
	member := Member{
		Name:       strings.TrimSpace(n.ChildText("name")),
		Args:       strings.TrimSpace(n.ChildText("argsstring")),
		ReturnType: strings.TrimSpace(n.ChildText("type")),
		Brief:      decodeDescription(n.Child("briefdescription")),
	}

	if detailed := n.Child("detaileddescription"); detailed != nil {
		member.Detailed = decodeDescription(detailed)

		for _, listing := range detailed.ChildAll("programlisting") {
			code := strings.Trim(listing.Text(), "\n")
			if code != "" {
				member.Listings = append(member.Listings, code)
			}
		}

		for _, section := range detailed.ChildAll("simplesect") {
			if section.Attr("kind") != "return" {
				continue
			}

			if text := decodeDescription(section).Text(); text != "" {
				member.Returns = append(member.Returns, text)
			}
		}
	}

	for _, param := range n.ChildAll("param") {
		member.Params = append(member.Params, decodeParam(param))
	}

	// Template parameters attach only at the member's own level, not
	// inherited from an enclosing templated scope.
	if list := n.Child("templateparamlist"); list != nil {
		for _, param := range list.ChildAll("param") {
			text := strings.TrimSpace(param.ChildText("type"))
			if text == "" {
				text = strings.TrimSpace(param.Text())
			}

			member.TemplateParams = append(member.TemplateParams, text)
		}
	}

	return member
}

func decodeParam(n *Node) Param {
	name := strings.TrimSpace(n.ChildText("declname"))
	if name == "" {
		name = strings.TrimSpace(n.ChildText("defname"))
	}

	return Param{
		Name:  name,
		Type:  strings.TrimSpace(n.ChildText("type")),
		Brief: decodeDescription(n.Child("briefdescription")),
	}
}

func decodeDescription(n *Node) *Description {
	if n == nil {
		return nil
	}

	description := &Description{}
	paragraphs := n.ChildAll("para")
	for _, paragraph := range paragraphs {
		if text := strings.TrimSpace(paragraph.Text()); text != "" {
			description.Paragraphs = append(description.Paragraphs, text)
		}
	}

	if len(paragraphs) == 0 {
		description.Fallback = strings.TrimSpace(n.Text())
	}

	return description
}
