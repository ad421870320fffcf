package doxygen

import (
	"encoding/xml"
	"strings"
)

// Node is a generic XML element that preserves child order and the
// character data interleaved between children, so that concatenated
// text reads in document order.
type Node struct {
	Tag    string
	attrs  map[string]string
	chunks []chunk
}

type chunk struct {
	text string
	node *Node
}

func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Tag = start.Name.Local

	if len(start.Attr) > 0 {
		n.attrs = make(map[string]string, len(start.Attr))
		for _, attr := range start.Attr {
			n.attrs[attr.Name.Local] = attr.Value
		}
	}

	for {
		token, err := d.Token()
		if err != nil {
			return err
		}

		switch t := token.(type) {
		case xml.CharData:
			n.chunks = append(n.chunks, chunk{text: string(t)})
		case xml.StartElement:
			child := &Node{}
			if childErr := child.UnmarshalXML(d, t); childErr != nil {
				return childErr
			}
			n.chunks = append(n.chunks, chunk{node: child})
		case xml.EndElement:
			return nil
		}
	}
}

// Attr returns the value of a named attribute, or "" if absent.
func (n *Node) Attr(name string) string {
	if n == nil {
		return ""
	}

	return n.attrs[name]
}

// Children returns the element children in document order.
func (n *Node) Children() []*Node {
	if n == nil {
		return nil
	}

	children := make([]*Node, 0, len(n.chunks))
	for _, c := range n.chunks {
		if c.node != nil {
			children = append(children, c.node)
		}
	}

	return children
}

// Child returns the first direct child with the given tag, or nil.
func (n *Node) Child(tag string) *Node {
	if n == nil {
		return nil
	}

	for _, c := range n.chunks {
		if c.node != nil && c.node.Tag == tag {
			return c.node
		}
	}

	return nil
}

// ChildAll returns all direct children with the given tag, in order.
func (n *Node) ChildAll(tag string) []*Node {
	if n == nil {
		return nil
	}

	var matched []*Node
	for _, c := range n.chunks {
		if c.node != nil && c.node.Tag == tag {
			matched = append(matched, c.node)
		}
	}

	return matched
}

// Descendants returns every descendant with the given tag in document
// order. The receiver itself is excluded.
func (n *Node) Descendants(tag string) []*Node {
	if n == nil {
		return nil
	}

	var matched []*Node
	for _, c := range n.chunks {
		if c.node == nil {
			continue
		}

		if c.node.Tag == tag {
			matched = append(matched, c.node)
		}

		matched = append(matched, c.node.Descendants(tag)...)
	}

	return matched
}

// Text returns the concatenated character data of the node and all of
// its descendants, in document order, without trimming.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}

	var b strings.Builder
	n.writeText(&b)
	return b.String()
}

func (n *Node) writeText(b *strings.Builder) {
	for _, c := range n.chunks {
		if c.node != nil {
			c.node.writeText(b)
			continue
		}

		b.WriteString(c.text)
	}
}

// ChildText returns the full text of the first direct child with the
// given tag, or "" when no such child exists.
func (n *Node) ChildText(tag string) string {
	return n.Child(tag).Text()
}
