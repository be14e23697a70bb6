package xmltree

import (
	"encoding/xml"
	"io"
	"strings"
)

// Declaration is written by WriteDocument before the root element.
const Declaration = `<?xml version="1.0" encoding="UTF-8"?>`

// Attr is a single attribute. Key may carry a prefix ("xmlns:soap").
type Attr struct {
	Key   string
	Value string
}

// Element is a node of the tree.
type Element struct {
	Tag      string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// NewElement returns a detached element.
func NewElement(tag string) *Element {
	return &Element{Tag: tag}
}

// CreateElement appends a new child element and returns it.
func (e *Element) CreateElement(tag string) *Element {
	child := NewElement(tag)
	e.Children = append(e.Children, child)
	return child
}

// AddChild appends an existing element as the last child.
func (e *Element) AddChild(child *Element) {
	e.Children = append(e.Children, child)
}

// SetAttr sets an attribute. An existing attribute with the same key keeps
// its position and gets the new value.
func (e *Element) SetAttr(key, value string) *Element {
	for i := range e.Attrs {
		if e.Attrs[i].Key == key {
			e.Attrs[i].Value = value
			return e
		}
	}
	e.Attrs = append(e.Attrs, Attr{Key: key, Value: value})
	return e
}

// AttrValue returns the value of the attribute with the given key.
func (e *Element) AttrValue(key string) (string, bool) {
	for _, a := range e.Attrs {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// SetText replaces the element's text.
func (e *Element) SetText(text string) *Element {
	e.Text = text
	return e
}

// FindChild returns the first direct child with the given tag.
func (e *Element) FindChild(tag string) *Element {
	for _, c := range e.Children {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

// Copy returns a deep copy of the element.
func (e *Element) Copy() *Element {
	cp := &Element{Tag: e.Tag, Text: e.Text}
	if len(e.Attrs) > 0 {
		cp.Attrs = make([]Attr, len(e.Attrs))
		copy(cp.Attrs, e.Attrs)
	}
	for _, c := range e.Children {
		cp.Children = append(cp.Children, c.Copy())
	}
	return cp
}

// WriteTo writes the element and its descendants to w.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	cw := &countWriter{w: w}
	e.write(cw)
	return cw.n, cw.err
}

// String returns the serialized element.
func (e *Element) String() string {
	var b strings.Builder
	_, _ = e.WriteTo(&b) // strings.Builder writes do not fail
	return b.String()
}

// WriteDocument writes the XML declaration followed by root.
func WriteDocument(w io.Writer, root *Element) (int64, error) {
	cw := &countWriter{w: w}
	cw.put(Declaration)
	root.write(cw)
	return cw.n, cw.err
}

func (e *Element) write(cw *countWriter) {
	cw.put("<")
	cw.put(e.Tag)
	for _, a := range e.Attrs {
		cw.put(" ")
		cw.put(a.Key)
		cw.put(`="`)
		cw.escape(a.Value)
		cw.put(`"`)
	}
	if len(e.Children) == 0 && e.Text == "" {
		cw.put("/>")
		return
	}
	cw.put(">")
	cw.escape(e.Text)
	for _, c := range e.Children {
		c.write(cw)
	}
	cw.put("</")
	cw.put(e.Tag)
	cw.put(">")
}

// countWriter keeps the first write error and stops writing after it.
type countWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countWriter) Write(p []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(p)
	c.n += int64(n)
	c.err = err
	return n, err
}

func (c *countWriter) put(s string) {
	c.Write([]byte(s))
}

func (c *countWriter) escape(s string) {
	if s == "" || c.err != nil {
		return
	}
	// EscapeText only fails when the underlying writer does.
	_ = xml.EscapeText(c, []byte(s))
}
