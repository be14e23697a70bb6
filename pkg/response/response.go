package response

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/beevik/etree"

	"github.com/sirosfoundation/go-zimbra/pkg/markup"
)

var (
	// ErrMalformed is returned for data that is not a SOAP envelope.
	ErrMalformed = errors.New("malformed SOAP response")

	// ErrNoAuthToken is returned when an AuthResponse carries no token.
	ErrNoAuthToken = errors.New("no auth token in response")
)

// FaultError is a SOAP fault returned by the server.
type FaultError struct {
	// Code is the SOAP fault code, e.g. "soap:Sender".
	Code string
	// Reason is the human readable fault text.
	Reason string
	// Detail is the Zimbra error code, e.g. "account.AUTH_FAILED".
	Detail string
	Trace  string
	// RequestID is set for faults inside a batch response.
	RequestID *int
}

func (e *FaultError) Error() string {
	msg := "zimbra fault"
	if e.Detail != "" {
		msg += " " + e.Detail
	} else if e.Code != "" {
		msg += " " + e.Code
	}
	if e.RequestID != nil {
		msg += fmt.Sprintf(" (request %d)", *e.RequestID)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

// Response is a parsed SOAP response.
type Response struct {
	doc    *etree.Document
	header *etree.Element
	body   *etree.Element
}

// Parse reads a SOAP envelope.
func Parse(data []byte) (*Response, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	env := doc.Root()
	if env == nil || env.Tag != "Envelope" {
		return nil, fmt.Errorf("%w: missing Envelope", ErrMalformed)
	}

	r := &Response{
		doc:    doc,
		header: child(env, "Header"),
		body:   child(env, "Body"),
	}
	if r.body == nil {
		return nil, fmt.Errorf("%w: missing Body", ErrMalformed)
	}
	return r, nil
}

// Body returns the SOAP body element.
func (r *Response) Body() *etree.Element {
	return r.body
}

// Context returns the header context element, if any.
func (r *Response) Context() *etree.Element {
	if r.header == nil {
		return nil
	}
	return child(r.header, "context")
}

// SessionID returns the session id announced in the header context.
func (r *Response) SessionID() string {
	ctx := r.Context()
	if ctx == nil {
		return ""
	}
	session := child(ctx, "session")
	if session == nil {
		return ""
	}
	if id := session.SelectAttrValue("id", ""); id != "" {
		return id
	}
	return strings.TrimSpace(session.Text())
}

// ChangeToken returns the mailbox change token from the header context.
func (r *Response) ChangeToken() string {
	ctx := r.Context()
	if ctx == nil {
		return ""
	}
	if change := child(ctx, "change"); change != nil {
		return change.SelectAttrValue("token", "")
	}
	return ""
}

// First returns the first element of the body.
func (r *Response) First() *etree.Element {
	children := r.body.ChildElements()
	if len(children) == 0 {
		return nil
	}
	return children[0]
}

// IsFault reports whether the body holds a top level fault.
func (r *Response) IsFault() bool {
	first := r.First()
	return first != nil && first.Tag == "Fault"
}

// Fault returns the top level fault, or nil.
func (r *Response) Fault() *FaultError {
	if !r.IsFault() {
		return nil
	}
	return parseFault(r.First())
}

// IsBatch reports whether the body holds a BatchResponse.
func (r *Response) IsBatch() bool {
	return r.batch() != nil
}

// Responses returns the batched responses (faults included) in document order.
func (r *Response) Responses() []*etree.Element {
	batch := r.batch()
	if batch == nil {
		return nil
	}
	return batch.ChildElements()
}

// Get returns the batched response with the given request id.
func (r *Response) Get(requestID int) (*etree.Element, bool) {
	want := strconv.Itoa(requestID)
	for _, e := range r.Responses() {
		if e.SelectAttrValue("requestId", "") == want {
			return e, true
		}
	}
	return nil, false
}

// FaultFor returns the fault reported for a batched request, or nil.
func (r *Response) FaultFor(requestID int) *FaultError {
	e, ok := r.Get(requestID)
	if !ok || e.Tag != "Fault" {
		return nil
	}
	f := parseFault(e)
	id := requestID
	f.RequestID = &id
	return f
}

// AuthToken returns the token of an AuthResponse, batched or not.
func (r *Response) AuthToken() (string, error) {
	candidates := r.body.ChildElements()
	if r.IsBatch() {
		candidates = r.Responses()
	}
	for _, e := range candidates {
		if e.Tag != "AuthResponse" {
			continue
		}
		if tok := child(e, "authToken"); tok != nil && strings.TrimSpace(tok.Text()) != "" {
			return strings.TrimSpace(tok.Text()), nil
		}
	}
	return "", ErrNoAuthToken
}

// Map returns the body as a mapping keyed by response element name.
func (r *Response) Map() map[string]any {
	return markup.ToMap(r.body)
}

// Indented returns the response re-serialized with indentation.
func (r *Response) Indented() (string, error) {
	doc := r.doc.Copy()
	doc.Indent(2)
	return doc.WriteToString()
}

func (r *Response) batch() *etree.Element {
	first := r.First()
	if first == nil || first.Tag != "BatchResponse" {
		return nil
	}
	return first
}

// parseFault handles SOAP 1.2 (Code/Reason/Detail) and SOAP 1.1
// (faultcode/faultstring/detail) faults.
func parseFault(f *etree.Element) *FaultError {
	fe := &FaultError{}

	if code := child(f, "Code"); code != nil {
		fe.Code = text(child(code, "Value"))
	} else {
		fe.Code = text(child(f, "faultcode"))
	}

	if reason := child(f, "Reason"); reason != nil {
		fe.Reason = text(child(reason, "Text"))
	} else {
		fe.Reason = text(child(f, "faultstring"))
	}

	detail := child(f, "Detail")
	if detail == nil {
		detail = child(f, "detail")
	}
	if detail != nil {
		if zerr := child(detail, "Error"); zerr != nil {
			fe.Detail = text(child(zerr, "Code"))
			fe.Trace = text(child(zerr, "Trace"))
		}
	}
	return fe
}

// child returns the first child element with the given local name.
func child(e *etree.Element, tag string) *etree.Element {
	if e == nil {
		return nil
	}
	for _, c := range e.ChildElements() {
		if c.Tag == tag {
			return c
		}
	}
	return nil
}

func text(e *etree.Element) string {
	if e == nil {
		return ""
	}
	return strings.TrimSpace(e.Text())
}
