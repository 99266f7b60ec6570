package poemdata

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// teiNode is a generic element tree. TEI headers vary too much across
// collections for fixed struct tags, so parsing walks the tree and
// searches by element name and attribute, mirroring the descendant
// lookups the catalog needs.
type teiNode struct {
	XMLName  xml.Name
	Attrs    []xml.Attr `xml:",any,attr"`
	Content  string     `xml:",chardata"`
	Children []teiNode  `xml:",any"`
}

// attr returns the value of the named attribute, or "" when absent.
func (n *teiNode) attr(name string) string {
	for _, a := range n.Attrs {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

// text returns the element's own character data, trimmed.
func (n *teiNode) text() string {
	return strings.TrimSpace(n.Content)
}

// findFirst returns the first descendant (depth-first, document order)
// matching the predicate, or nil.
func (n *teiNode) findFirst(match func(*teiNode) bool) *teiNode {
	for i := range n.Children {
		child := &n.Children[i]
		if match(child) {
			return child
		}
		if found := child.findFirst(match); found != nil {
			return found
		}
	}
	return nil
}

// findAll appends every descendant matching the predicate, in document
// order.
func (n *teiNode) findAll(match func(*teiNode) bool, out []*teiNode) []*teiNode {
	for i := range n.Children {
		child := &n.Children[i]
		if match(child) {
			out = append(out, child)
		}
		out = child.findAll(match, out)
	}
	return out
}

func isElement(name string) func(*teiNode) bool {
	return func(n *teiNode) bool {
		return n.XMLName.Local == name
	}
}

// ParseTEI extracts collection metadata from a TEI XML document:
// author, main title (falling back to the first title), publication
// year (the date element's when attribute, falling back to its text)
// and the poem headings.
func ParseTEI(xmlContent []byte) (*Collection, error) {
	var root teiNode
	if err := xml.Unmarshal(xmlContent, &root); err != nil {
		return nil, fmt.Errorf("failed to parse TEI XML: %w", err)
	}

	collection := &Collection{}

	if author := root.findFirst(isElement("author")); author != nil {
		collection.Author = author.text()
	}

	title := root.findFirst(func(n *teiNode) bool {
		return n.XMLName.Local == "title" && n.attr("type") == "main"
	})
	if title == nil {
		title = root.findFirst(isElement("title"))
	}
	if title != nil {
		collection.BookTitle = title.text()
	}

	if date := root.findFirst(isElement("date")); date != nil {
		year := date.attr("when")
		if year == "" {
			year = date.text()
		}
		collection.Year = strings.TrimSpace(year)
	}

	// Poem titles live in the head of each lg[type="poem"] group. Some
	// collections omit the type attribute, so fall back to any lg head.
	poemGroups := root.findAll(func(n *teiNode) bool {
		return n.XMLName.Local == "lg" && n.attr("type") == "poem"
	}, nil)
	for _, lg := range poemGroups {
		for i := range lg.Children {
			child := &lg.Children[i]
			if child.XMLName.Local == "head" && child.text() != "" {
				collection.Poems = append(collection.Poems, child.text())
				break
			}
		}
	}

	if len(collection.Poems) == 0 {
		groups := root.findAll(isElement("lg"), nil)
		for _, lg := range groups {
			for i := range lg.Children {
				child := &lg.Children[i]
				if child.XMLName.Local == "head" && child.text() != "" {
					collection.Poems = append(collection.Poems, child.text())
					break
				}
			}
		}
	}

	return collection, nil
}
