package markup

import (
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sirosfoundation/go-zimbra/pkg/xmltree"
)

func serialize(t *testing.T, value any) string {
	t.Helper()
	node := xmltree.NewElement("n")
	require.NoError(t, Serialize(node, value))
	return node.String()
}

func TestSerialize_AttributesChildrenAndContent(t *testing.T) {
	node := xmltree.NewElement("AuthRequest")
	err := Serialize(node, Pairs{
		KV("account", Pairs{KV("by", "name"), KV(ContentKey, "user@example.com")}),
		KV("password", "secret"),
	})
	require.NoError(t, err)

	assert.Equal(t,
		`<AuthRequest password="secret"><account by="name">user@example.com</account></AuthRequest>`,
		node.String())
}

func TestSerialize_Sequences(t *testing.T) {
	got := serialize(t, Pairs{
		KV("a", []any{Pairs{KV("id", "1")}, Pairs{KV("id", "2")}}),
		KV("b", []string{"x", "y"}),
	})
	assert.Equal(t, `<n><a id="1"/><a id="2"/><b>x</b><b>y</b></n>`, got)
}

func TestSerialize_RepeatedPairKeys(t *testing.T) {
	got := serialize(t, Pairs{
		KV("m", Pairs{KV("id", "1")}),
		KV("m", Pairs{KV("id", "2")}),
	})
	assert.Equal(t, `<n><m id="1"/><m id="2"/></n>`, got)
}

func TestSerialize_PlainMapSortedKeys(t *testing.T) {
	got := serialize(t, map[string]any{"b": "2", "a": 1, "c": map[string]string{"z": "q"}})
	assert.Equal(t, `<n a="1" b="2"><c z="q"/></n>`, got)
}

func TestSerialize_OrderedMapKeepsInsertionOrder(t *testing.T) {
	om := orderedmap.New[string, any]()
	om.Set("z", "1")
	om.Set("a", "2")
	om.Set(ContentKey, "text")

	assert.Equal(t, `<n z="1" a="2">text</n>`, serialize(t, om))
}

type folderSpec struct {
	Path string `mapstructure:"path"`
	View string `mapstructure:"view"`
}

type createFolder struct {
	Folder folderSpec `mapstructure:"folder"`
}

func TestSerialize_Structs(t *testing.T) {
	assert.Equal(t, `<n path="/Inbox" view="message"/>`,
		serialize(t, folderSpec{Path: "/Inbox", View: "message"}))

	assert.Equal(t, `<n><folder path="/Work" view="appointment"/></n>`,
		serialize(t, &createFolder{Folder: folderSpec{Path: "/Work", View: "appointment"}}))
}

func TestSerialize_NilValuesAreSkipped(t *testing.T) {
	var missing *folderSpec
	assert.Equal(t, `<n/>`, serialize(t, nil))
	assert.Equal(t, `<n/>`, serialize(t, missing))
	assert.Equal(t, `<n/>`, serialize(t, Pairs{KV("a", nil), KV("b", missing)}))
}

func TestSerialize_Scalars(t *testing.T) {
	assert.Equal(t, `<n>42</n>`, serialize(t, 42))
	assert.Equal(t, `<n>true</n>`, serialize(t, true))
	assert.Equal(t, `<n>1.5</n>`, serialize(t, 1.5))
	assert.Equal(t, `<n>raw</n>`, serialize(t, []byte("raw")))
}

func TestSerialize_TextMarshaler(t *testing.T) {
	at := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, `<n at="2024-01-02T03:04:05Z"/>`, serialize(t, Pairs{KV("at", at)}))
	assert.Equal(t, `<n at="2024-01-02T03:04:05Z"/>`, serialize(t, Pairs{KV("at", &at)}))
}

func TestSerialize_TopLevelSequence(t *testing.T) {
	got := serialize(t, []any{Pairs{KV("a", "1")}, Pairs{KV("b", "2")}})
	assert.Equal(t, `<n a="1" b="2"/>`, got)
}

func TestSerialize_InvalidName(t *testing.T) {
	node := xmltree.NewElement("n")
	err := Serialize(node, Pairs{KV("1bad", "x")})
	assert.ErrorIs(t, err, ErrInvalidName)

	err = Serialize(node, Pairs{KV("has space", Pairs{})})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestSerialize_UnsupportedValue(t *testing.T) {
	node := xmltree.NewElement("n")
	err := Serialize(node, Pairs{KV("c", make(chan int))})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	err = Serialize(node, Pairs{KV("f", func() {})})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	err = Serialize(node, map[int]string{1: "a"})
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestBuild(t *testing.T) {
	node, err := Build("GetInfoRequest", Pairs{KV("sections", "mbox")})
	require.NoError(t, err)
	assert.Equal(t, `<GetInfoRequest sections="mbox"/>`, node.String())

	_, err = Build("", nil)
	assert.ErrorIs(t, err, ErrInvalidName)

	_, err = Build("ok", Pairs{KV("bad name", "x")})
	assert.ErrorIs(t, err, ErrInvalidName)
}

func TestEntries(t *testing.T) {
	p, err := Entries(map[string]any{"b": 1, "a": 2})
	require.NoError(t, err)
	assert.Equal(t, Pairs{KV("a", 2), KV("b", 1)}, p)

	p, err = Entries(nil)
	require.NoError(t, err)
	assert.Empty(t, p)

	_, err = Entries("scalar")
	assert.ErrorIs(t, err, ErrNotMapping)
}

func TestValidName(t *testing.T) {
	for _, name := range []string{"a", "_a", "soap:Body", "a-b.c1", "authToken"} {
		assert.True(t, ValidName(name), name)
	}
	for _, name := range []string{"", "1a", "a b", "a:b:c", "a:", "-a", "a/b"} {
		assert.False(t, ValidName(name), name)
	}
}

func TestToMap(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(
		`<GetInfoResponse xmlns="urn:zimbraAccount" name="u">`+
			`<attrs><attr n="a">1</attr><attr n="b">2</attr></attrs>`+
			`<version>8.8</version>`+
			`</GetInfoResponse>`))

	got := ToMap(doc.Root())
	assert.Equal(t, map[string]any{
		"name": "u",
		"attrs": map[string]any{
			"attr": []any{
				map[string]any{"n": "a", ContentKey: "1"},
				map[string]any{"n": "b", ContentKey: "2"},
			},
		},
		"version": map[string]any{ContentKey: "8.8"},
	}, got)
}

func TestToMap_PrefixedAttributes(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(
		`<a xmlns:xsi="http://www.w3.org/2001/XMLSchema-instance" type="plain" xsi:type="typed"/>`))

	assert.Equal(t, map[string]any{
		"type":     "plain",
		"xsi:type": "typed",
	}, ToMap(doc.Root()))
}

func TestToMap_RoundTrip(t *testing.T) {
	node, err := Build("CreateFolderRequest", Pairs{
		KV("folder", Pairs{KV("name", "Work"), KV("l", "1")}),
	})
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(node.String()))

	assert.Equal(t, map[string]any{
		"folder": map[string]any{"name": "Work", "l": "1"},
	}, ToMap(doc.Root()))
}
