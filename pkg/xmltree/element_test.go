package xmltree

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestElement_SelfClosing(t *testing.T) {
	e := NewElement("format").SetAttr("type", "xml")
	assert.Equal(t, `<format type="xml"/>`, e.String())
}

func TestElement_NestedChildrenInOrder(t *testing.T) {
	root := NewElement("a")
	root.CreateElement("b")
	root.CreateElement("c").SetText("x")
	root.AddChild(NewElement("d"))

	assert.Equal(t, `<a><b/><c>x</c><d/></a>`, root.String())
}

func TestElement_TextBeforeChildren(t *testing.T) {
	root := NewElement("m").SetText("hello")
	root.CreateElement("e")

	assert.Equal(t, `<m>hello<e/></m>`, root.String())
}

func TestElement_Escaping(t *testing.T) {
	e := NewElement("q").SetAttr("v", `a"b<c&d`).SetText("1 < 2 & 3 > 2")

	assert.Equal(t, `<q v="a&#34;b&lt;c&amp;d">1 &lt; 2 &amp; 3 &gt; 2</q>`, e.String())
}

func TestElement_SetAttrReplacesInPlace(t *testing.T) {
	e := NewElement("r")
	e.SetAttr("a", "1")
	e.SetAttr("b", "2")
	e.SetAttr("a", "3")

	require.Len(t, e.Attrs, 2)
	assert.Equal(t, Attr{Key: "a", Value: "3"}, e.Attrs[0])
	assert.Equal(t, `<r a="3" b="2"/>`, e.String())

	v, ok := e.AttrValue("b")
	assert.True(t, ok)
	assert.Equal(t, "2", v)

	_, ok = e.AttrValue("missing")
	assert.False(t, ok)
}

func TestElement_FindChild(t *testing.T) {
	root := NewElement("root")
	first := root.CreateElement("x")
	root.CreateElement("x")

	assert.Same(t, first, root.FindChild("x"))
	assert.Nil(t, root.FindChild("y"))
}

func TestElement_CopyIsIndependent(t *testing.T) {
	root := NewElement("root").SetAttr("k", "v")
	root.CreateElement("child").SetText("t")

	cp := root.Copy()
	cp.SetAttr("k", "changed")
	cp.Children[0].SetText("other")
	cp.CreateElement("extra")

	assert.Equal(t, `<root k="v"><child>t</child></root>`, root.String())
	assert.Equal(t, `<root k="changed"><child>other</child><extra/></root>`, cp.String())
}

func TestWriteDocument(t *testing.T) {
	var buf bytes.Buffer
	n, err := WriteDocument(&buf, NewElement("doc"))
	require.NoError(t, err)

	assert.Equal(t, Declaration+"<doc/>", buf.String())
	assert.Equal(t, int64(buf.Len()), n)
}

type failingWriter struct{ after int }

func (f *failingWriter) Write(p []byte) (int, error) {
	if f.after <= 0 {
		return 0, errors.New("disk full")
	}
	f.after--
	return len(p), nil
}

func TestWriteTo_StopsOnError(t *testing.T) {
	root := NewElement("a")
	root.CreateElement("b").SetText("text")

	_, err := root.WriteTo(&failingWriter{after: 2})
	assert.EqualError(t, err, "disk full")
}
