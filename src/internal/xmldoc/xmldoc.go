// Package xmldoc parses XML into a small element tree with lookup by tag
// name. The tracker API identifies fields purely by element name, including
// deployment-configured column names only known at runtime, so responses are
// decoded through name lookups instead of static struct tags.
package xmldoc

import (
	"encoding/xml"
	"errors"
	"io"
)

// Element is one XML element: attributes, direct character data and child
// elements in document order.
type Element struct {
	Name     string
	Attrs    map[string]string
	Text     string
	Children []*Element
}

// Document wraps the root element of a parsed response.
type Document struct {
	Root *Element
}

// Parse reads a complete XML document from r.
func Parse(r io.Reader) (*Document, error) {
	dec := xml.NewDecoder(r)
	var root *Element
	var stack []*Element
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			el := &Element{Name: t.Name.Local, Attrs: make(map[string]string, len(t.Attr))}
			for _, a := range t.Attr {
				el.Attrs[a.Name.Local] = a.Value
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, errors.New("xmldoc: multiple root elements")
				}
				root = el
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, el)
			}
			stack = append(stack, el)
		case xml.EndElement:
			stack = stack[:len(stack)-1]
		case xml.CharData:
			if len(stack) > 0 {
				stack[len(stack)-1].Text += string(t)
			}
		}
	}
	if root == nil {
		return nil, errors.New("xmldoc: empty document")
	}
	return &Document{Root: root}, nil
}

// First returns the first descendant element with the given name in document
// order, or nil.
func (d *Document) First(name string) *Element {
	return d.Root.First(name)
}

// All returns every descendant element with the given name in document order.
func (d *Document) All(name string) []*Element {
	return d.Root.All(name)
}

// Child returns the first direct child of e with the given name, or nil.
func (e *Element) Child(name string) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
	}
	return nil
}

// First searches descendants of e, depth first, for the given name.
func (e *Element) First(name string) *Element {
	for _, child := range e.Children {
		if child.Name == name {
			return child
		}
		if found := child.First(name); found != nil {
			return found
		}
	}
	return nil
}

// All collects descendants of e with the given name, depth first.
func (e *Element) All(name string) []*Element {
	var out []*Element
	for _, child := range e.Children {
		if child.Name == name {
			out = append(out, child)
		}
		out = append(out, child.All(name)...)
	}
	return out
}

// Attr returns the attribute value, or "" when absent.
func (e *Element) Attr(name string) string {
	return e.Attrs[name]
}
