package reqfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirosfoundation/go-zimbra/pkg/request"
)

const batchFile = `
context:
  authToken: {_content: "0_abc"}
  userAgent: {name: zmsoap, version: "1.0"}
batch:
  namespace: urn:zimbra
  onerror: stop
  firstRequestId: 1
requests:
  - name: GetInfoRequest
    content:
      sections: mbox
      rights: sendAs
  - name: SearchRequest
    namespace: ignored-in-batch
    content:
      types: message
      limit: 10
      query: {_content: "in:inbox"}
  - name: NoOpRequest
`

func TestParse_Batch(t *testing.T) {
	f, err := Parse([]byte(batchFile))
	require.NoError(t, err)
	require.NotNil(t, f.Batch)
	require.Len(t, f.Requests, 3)
	assert.Nil(t, f.Requests[2].Content)

	doc := request.New()
	ids, err := f.Apply(doc)
	require.NoError(t, err)
	require.Len(t, ids, 3)
	for i, id := range ids {
		require.NotNil(t, id)
		assert.Equal(t, i+1, *id)
	}

	out := doc.GetRequest()
	assert.Contains(t, out, `<authToken>0_abc</authToken><userAgent name="zmsoap" version="1.0"/>`)
	assert.Contains(t, out, `<BatchRequest xmlns="urn:zimbra" onerror="stop">`)
	assert.Contains(t, out, `<GetInfoRequest sections="mbox" rights="sendAs" requestId="1"/>`)
	assert.Contains(t, out, `<SearchRequest types="message" limit="10" requestId="2"><query>in:inbox</query></SearchRequest>`)
	assert.Contains(t, out, `<NoOpRequest requestId="3"/>`)
}

func TestParse_RepeatedContextKeys(t *testing.T) {
	f, err := Parse([]byte(`
context:
  via: {_content: a}
  via: {_content: b}
requests:
  - name: GetFolderRequest
    namespace: urn:zimbraMail
    content:
      folder: {path: /Inbox}
      folder: {path: /Sent}
`))
	require.NoError(t, err)

	doc := request.New()
	_, err = f.Apply(doc)
	require.NoError(t, err)

	out := doc.GetRequest()
	assert.Contains(t, out, `<format type="xml"/><via>a</via><via>b</via></context>`)
	assert.Contains(t, out, `<folder path="/Inbox"/><folder path="/Sent"/>`)
}

func TestParse_Direct(t *testing.T) {
	f, err := Parse([]byte(`
requests:
  - name: GetFolderRequest
    namespace: urn:zimbraMail
    content:
      folder: [{path: /Inbox}, {path: /Sent}]
`))
	require.NoError(t, err)
	assert.Nil(t, f.Context)
	assert.Nil(t, f.Batch)

	doc := request.New()
	ids, err := f.Apply(doc)
	require.NoError(t, err)
	assert.Equal(t, []*int{nil}, ids)
	assert.Contains(t, doc.GetRequest(),
		`<GetFolderRequest xmlns="urn:zimbraMail"><folder path="/Inbox"/><folder path="/Sent"/></GetFolderRequest>`)
}

func TestParse_ScalarsKeptAsWritten(t *testing.T) {
	f, err := Parse([]byte(`
requests:
  - name: R
    namespace: urn:x
    content: {a: 1.0, b: true, c: 007, d: ~}
`))
	require.NoError(t, err)

	doc := request.New()
	_, err = f.Apply(doc)
	require.NoError(t, err)
	assert.Contains(t, doc.GetRequest(), `<R a="1.0" b="true" c="007" xmlns="urn:x"/>`)
}

func TestParse_Aliases(t *testing.T) {
	f, err := Parse([]byte(`
requests:
  - name: A
    namespace: urn:x
    content: &shared {id: "42"}
  - name: B
    namespace: urn:x
    content: *shared
`))
	require.NoError(t, err)

	doc := request.New()
	_, err = f.Apply(doc)
	require.NoError(t, err)
	assert.Contains(t, doc.GetRequest(), `<A id="42" xmlns="urn:x"/><B id="42" xmlns="urn:x"/>`)
}

func TestParse_Errors(t *testing.T) {
	tests := map[string]string{
		"not yaml":         "requests: [",
		"missing name":     "requests:\n  - namespace: urn:x\n",
		"context sequence": "context: [a, b]\n",
	}
	for name, data := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Parse([]byte(data))
			assert.Error(t, err)
		})
	}
}

func TestApply_Errors(t *testing.T) {
	f, err := Parse([]byte("requests:\n  - name: R\n"))
	require.NoError(t, err)
	_, err = f.Apply(request.New())
	assert.ErrorIs(t, err, request.ErrMissingNamespace)

	f, err = Parse([]byte("batch: {onerror: ignore}\n"))
	require.NoError(t, err)
	_, err = f.Apply(request.New())
	assert.ErrorIs(t, err, request.ErrInvalidOnError)
}

func TestApply_DefaultBatchPolicy(t *testing.T) {
	f, err := Parse([]byte("batch: {}\nrequests:\n  - name: NoOpRequest\n"))
	require.NoError(t, err)

	doc := request.New()
	ids, err := f.Apply(doc)
	require.NoError(t, err)
	require.NotNil(t, ids[0])
	assert.Equal(t, 0, *ids[0])
	assert.Contains(t, doc.GetRequest(), `<BatchRequest xmlns="urn:zimbra" onerror="continue">`)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "req.yaml")
	require.NoError(t, os.WriteFile(path, []byte(batchFile), 0o600))

	f, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, f.Requests, 3)

	_, err = Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
