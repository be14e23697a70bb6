package markup

import (
	"strings"

	"github.com/beevik/etree"
)

// ToMap converts a parsed element to a mapping: attributes become entries
// keyed with their prefix ("xsi:type"), non-blank text becomes ContentKey,
// child elements become nested mappings and repeated child names are
// collected into a []any in document order. Namespace declarations are
// dropped.
func ToMap(e *etree.Element) map[string]any {
	out := make(map[string]any)
	for _, a := range e.Attr {
		if a.Space == "xmlns" || (a.Space == "" && a.Key == "xmlns") {
			continue
		}
		out[a.FullKey()] = a.Value
	}
	if text := strings.TrimSpace(e.Text()); text != "" {
		out[ContentKey] = text
	}
	for _, c := range e.ChildElements() {
		v := ToMap(c)
		existing, ok := out[c.Tag]
		if !ok {
			out[c.Tag] = v
			continue
		}
		if list, isList := existing.([]any); isList {
			out[c.Tag] = append(list, v)
		} else {
			out[c.Tag] = []any{existing, v}
		}
	}
	return out
}
