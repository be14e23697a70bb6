package request

import "fmt"

// Namespace constants for Zimbra SOAP
const (
	NsSOAPEnv       = "http://www.w3.org/2003/05/soap-envelope"
	NsZimbra        = "urn:zimbra"
	NsZimbraAccount = "urn:zimbraAccount"
	NsZimbraAdmin   = "urn:zimbraAdmin"
	NsZimbraMail    = "urn:zimbraMail"
)

// FormatXML is the response format requested in the context block.
const FormatXML = "xml"

// ContextParams lists the context entries accepted with WithStrictContext.
var ContextParams = []string{
	"authToken",
	"authTokenControl",
	"session",
	"account",
	"change",
	"targetServer",
	"userAgent",
	"via",
}

// OnError is the batch error policy.
type OnError string

const (
	// OnErrorStop stops processing the batch at the first failing request
	OnErrorStop OnError = "stop"
	// OnErrorContinue processes every request regardless of failures
	OnErrorContinue OnError = "continue"
)

// Valid reports whether o is a known policy.
func (o OnError) Valid() bool {
	return o == OnErrorStop || o == OnErrorContinue
}

// ParseOnError converts a configuration string into an OnError.
func ParseOnError(s string) (OnError, error) {
	o := OnError(s)
	if !o.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidOnError, s)
	}
	return o, nil
}
