package request

import (
	"bytes"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/sirosfoundation/go-zimbra/pkg/markup"
	"github.com/sirosfoundation/go-zimbra/pkg/xmltree"
)

// Request is implemented by request documents.
type Request interface {
	// SetContextParams appends entries to the header context block.
	SetContextParams(params any) error

	// BeginBatch switches the document to batch mode. An empty namespace
	// means NsZimbra.
	BeginBatch(namespace string, onError OnError, opts ...BatchOption) error

	// AddRequest appends a named request and returns its batch id, if any.
	AddRequest(name string, content any, namespace string) (*int, error)

	// GetRequest returns the serialized document.
	GetRequest() string
}

// Document is a Zimbra SOAP request document.
type Document struct {
	root    *xmltree.Element
	header  *xmltree.Element
	context *xmltree.Element
	body    *xmltree.Element
	batch   *xmltree.Element

	format        string
	strictContext bool
	nextID        int
	requests      int
}

var _ Request = (*Document)(nil)

// Option configures a Document
type Option func(*Document)

// WithStrictContext rejects context keys outside ContextParams.
func WithStrictContext() Option {
	return func(d *Document) {
		d.strictContext = true
	}
}

// BatchOption configures BeginBatch
type BatchOption func(*batchConfig)

type batchConfig struct {
	firstID int
}

// WithFirstRequestID sets the id given to the first batched request.
func WithFirstRequestID(id int) BatchOption {
	return func(c *batchConfig) {
		c.firstID = id
	}
}

// New creates a document holding the envelope skeleton.
func New(opts ...Option) *Document {
	d := &Document{format: FormatXML}

	d.root = xmltree.NewElement("soap:Envelope")
	d.root.SetAttr("xmlns:soap", NsSOAPEnv)

	d.header = d.root.CreateElement("soap:Header")
	d.context = d.header.CreateElement("context")
	d.context.SetAttr("xmlns", NsZimbra)
	d.context.CreateElement("format").SetAttr("type", d.format)

	d.body = d.root.CreateElement("soap:Body")

	for _, opt := range opts {
		opt(d)
	}
	return d
}

// SetContextParams appends one context element per mapping entry, in order.
// Repeated keys produce repeated elements. An entry whose value cannot be
// serialized is not attached; entries before it stay in place.
func (d *Document) SetContextParams(params any) error {
	entries, err := markup.Entries(params)
	if err != nil {
		return fmt.Errorf("context params: %w", err)
	}

	if d.strictContext {
		for _, p := range entries {
			if !slices.Contains(ContextParams, p.Key) {
				return fmt.Errorf("%w: %q", ErrInvalidContextParam, p.Key)
			}
		}
	}

	for _, p := range entries {
		node, err := markup.Build(p.Key, p.Value)
		if err != nil {
			return fmt.Errorf("context param %q: %w", p.Key, err)
		}
		d.context.AddChild(node)
	}
	return nil
}

// SetAuthToken adds <authToken>token</authToken> to the context.
func (d *Document) SetAuthToken(token string) error {
	return d.SetContextParams(markup.Pairs{markup.KV("authToken", token)})
}

// SetSession adds a session element. An empty id asks the server for a new
// session.
func (d *Document) SetSession(id string) error {
	session := markup.Pairs{}
	if id != "" {
		session = append(session, markup.KV("id", id))
	}
	return d.SetContextParams(markup.Pairs{markup.KV("session", session)})
}

// SetUserAgent adds <userAgent name="..." version="..."/> to the context.
func (d *Document) SetUserAgent(name, version string) error {
	ua := markup.Pairs{markup.KV("name", name)}
	if version != "" {
		ua = append(ua, markup.KV("version", version))
	}
	return d.SetContextParams(markup.Pairs{markup.KV("userAgent", ua)})
}

// SetAccount adds the account the request is executed for (delegated access).
func (d *Document) SetAccount(account, by string) error {
	return d.SetContextParams(markup.Pairs{markup.KV("account", markup.Pairs{
		markup.KV("by", by),
		markup.KV(markup.ContentKey, account),
	})})
}

// BeginBatch creates the BatchRequest wrapper. An empty namespace means
// NsZimbra. It fails if the document is already in batch mode or requests
// were added directly to the body; the document is unchanged in that case.
func (d *Document) BeginBatch(namespace string, onError OnError, opts ...BatchOption) error {
	if d.batch != nil {
		return ErrBatchAlreadyStarted
	}
	if d.requests > 0 {
		return fmt.Errorf("cannot begin batch: %w", ErrBodyNotEmpty)
	}
	if !onError.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidOnError, onError)
	}
	if namespace == "" {
		namespace = NsZimbra
	}

	var cfg batchConfig
	for _, opt := range opts {
		opt(&cfg)
	}

	batch := xmltree.NewElement("BatchRequest")
	batch.SetAttr("xmlns", namespace)
	batch.SetAttr("onerror", string(onError))
	d.body.AddChild(batch)

	d.batch = batch
	d.nextID = cfg.firstID
	return nil
}

// AddRequest appends a request named name with content serialized into it.
//
// Outside batch mode namespace is required and set as the request's xmlns;
// the returned id is nil. In batch mode namespace is ignored, the request
// gets the next requestId and that id is returned. Nothing is attached and
// no id is consumed when an error is returned.
func (d *Document) AddRequest(name string, content any, namespace string) (*int, error) {
	if d.batch == nil && namespace == "" {
		return nil, ErrMissingNamespace
	}

	node, err := markup.Build(name, content)
	if err != nil {
		return nil, fmt.Errorf("request %q: %w", name, err)
	}

	if d.batch == nil {
		node.SetAttr("xmlns", namespace)
		d.body.AddChild(node)
		d.requests++
		return nil, nil
	}

	id := d.nextID
	node.SetAttr("requestId", strconv.Itoa(id))
	d.batch.AddChild(node)
	d.nextID++
	d.requests++
	return &id, nil
}

// GetRequest returns the serialized document.
func (d *Document) GetRequest() string {
	return string(d.Bytes())
}

// Bytes returns the serialized document.
func (d *Document) Bytes() []byte {
	var buf bytes.Buffer
	_, _ = d.WriteTo(&buf) // bytes.Buffer writes do not fail
	return buf.Bytes()
}

// WriteTo writes the serialized document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	return xmltree.WriteDocument(w, d.root)
}

// InBatch reports whether BeginBatch has been called.
func (d *Document) InBatch() bool {
	return d.batch != nil
}

// NextRequestID returns the id the next batched request will get.
func (d *Document) NextRequestID() (int, bool) {
	if d.batch == nil {
		return 0, false
	}
	return d.nextID, true
}

// Len returns the number of requests added.
func (d *Document) Len() int {
	return d.requests
}

// Format returns the requested response format.
func (d *Document) Format() string {
	return d.format
}

// Root returns the envelope element. Callers must not modify it.
func (d *Document) Root() *xmltree.Element {
	return d.root
}
