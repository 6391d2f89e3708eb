// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pubmed

import (
	"encoding/xml"
	"strings"
)

// Node is a generic XML element tree. A fetched PubmedArticle is kept as a
// Node so that extraction can tolerate any subset of elements being absent.
type Node struct {
	Name     string
	Children []*Node

	// runs holds the element's own character data, each run tagged with the
	// number of children that precede it so Text can restore document order.
	runs []textRun
}

type textRun struct {
	before int
	text   string
}

// UnmarshalXML builds the tree for start and everything below it. A
// whitespace-only run containing a newline is indentation or a line break
// between inline elements and collapses to a single space.
func (n *Node) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	n.Name = start.Name.Local
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			child := &Node{}
			if err := child.UnmarshalXML(d, t); err != nil {
				return err
			}
			n.Children = append(n.Children, child)
		case xml.CharData:
			text := string(t)
			if strings.TrimSpace(text) == "" && strings.ContainsRune(text, '\n') {
				text = " "
			}
			n.runs = append(n.runs, textRun{before: len(n.Children), text: text})
		case xml.EndElement:
			return nil
		}
	}
}

// Child returns the first direct child named name, or nil.
func (n *Node) Child(name string) *Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Find follows path from n, taking the first matching child at each step.
// It reports false if any step is missing.
func (n *Node) Find(path ...string) (*Node, bool) {
	cur := n
	for _, name := range path {
		cur = cur.Child(name)
		if cur == nil {
			return nil, false
		}
	}
	return cur, cur != nil
}

// Lookup returns the text of the element at path and whether it exists.
func (n *Node) Lookup(path ...string) (string, bool) {
	found, ok := n.Find(path...)
	if !ok {
		return "", false
	}
	return found.Text(), true
}

// Text returns the character data of n and all its descendants in document
// order, trimmed. Inline markup such as <i> or <sup> contributes its text.
func (n *Node) Text() string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	n.writeText(&b)
	return strings.TrimSpace(b.String())
}

func (n *Node) writeText(b *strings.Builder) {
	next := 0
	for _, r := range n.runs {
		for ; next < r.before; next++ {
			n.Children[next].writeText(b)
		}
		b.WriteString(r.text)
	}
	for ; next < len(n.Children); next++ {
		n.Children[next].writeText(b)
	}
}
