package markup

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"sort"
	"unicode"
	"unicode/utf8"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/cast"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/sirosfoundation/go-zimbra/pkg/xmltree"
)

// ContentKey is the mapping key that carries an element's text.
const ContentKey = "_content"

var (
	// ErrUnsupportedValue is returned for values with no markup form
	// (channels, functions, ...).
	ErrUnsupportedValue = errors.New("unsupported value")

	// ErrInvalidName is returned for keys that are not valid XML names.
	ErrInvalidName = errors.New("invalid XML name")

	// ErrNotMapping is returned by Entries for values that are not mappings.
	ErrNotMapping = errors.New("value is not a mapping")
)

// Pair is one mapping entry.
type Pair struct {
	Key   string
	Value any
}

// Pairs is a mapping that keeps insertion order and allows repeated keys.
type Pairs []Pair

// KV returns a Pair.
func KV(key string, value any) Pair {
	return Pair{Key: key, Value: value}
}

// Build returns a new element named name populated from value.
func Build(name string, value any) (*xmltree.Element, error) {
	if !ValidName(name) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	node := xmltree.NewElement(name)
	if err := Serialize(node, value); err != nil {
		return nil, err
	}
	return node, nil
}

// Serialize populates node from value. On error node may be partially
// populated; callers that need atomicity serialize into a detached element.
func Serialize(node *xmltree.Element, value any) error {
	value = deref(value)
	if value == nil {
		return nil
	}

	entries, isMapping, err := entries(value)
	if err != nil {
		return err
	}
	if isMapping {
		for _, p := range entries {
			if err := serializeEntry(node, p.Key, p.Value); err != nil {
				return err
			}
		}
		return nil
	}

	if items, ok := sequence(value); ok {
		for _, item := range items {
			if err := Serialize(node, item); err != nil {
				return err
			}
		}
		return nil
	}

	text, err := scalar(value)
	if err != nil {
		return err
	}
	node.SetText(text)
	return nil
}

// Entries returns the entries of a mapping value in serialization order.
func Entries(value any) (Pairs, error) {
	value = deref(value)
	if value == nil {
		return nil, nil
	}
	p, ok, err := entries(value)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("%w: %T", ErrNotMapping, value)
	}
	return p, nil
}

func serializeEntry(node *xmltree.Element, key string, value any) error {
	value = deref(value)
	if value == nil {
		return nil
	}

	if key == ContentKey {
		text, err := scalar(value)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		node.SetText(text)
		return nil
	}

	if !ValidName(key) {
		return fmt.Errorf("%w: %q", ErrInvalidName, key)
	}

	if _, isMapping, err := entries(value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	} else if isMapping {
		child := xmltree.NewElement(key)
		if err := Serialize(child, value); err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		node.AddChild(child)
		return nil
	}

	if items, ok := sequence(value); ok {
		for i, item := range items {
			child := xmltree.NewElement(key)
			if err := Serialize(child, item); err != nil {
				return fmt.Errorf("%s[%d]: %w", key, i, err)
			}
			node.AddChild(child)
		}
		return nil
	}

	text, err := scalar(value)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	node.SetAttr(key, text)
	return nil
}

// entries reports whether value is a mapping and, if so, returns its entries.
func entries(value any) (Pairs, bool, error) {
	switch v := value.(type) {
	case Pairs:
		return v, true, nil
	case *orderedmap.OrderedMap[string, any]:
		out := make(Pairs, 0, v.Len())
		for pair := v.Oldest(); pair != nil; pair = pair.Next() {
			out = append(out, KV(pair.Key, pair.Value))
		}
		return out, true, nil
	case map[string]any:
		return sortedPairs(v), true, nil
	}

	if isScalar(value) {
		return nil, false, nil
	}

	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil, false, fmt.Errorf("%w: map key type %s", ErrUnsupportedValue, rv.Type().Key())
		}
		m := make(map[string]any, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			m[iter.Key().String()] = iter.Value().Interface()
		}
		return sortedPairs(m), true, nil
	case reflect.Struct:
		var m map[string]any
		if err := mapstructure.Decode(value, &m); err != nil {
			return nil, false, fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return sortedPairs(m), true, nil
	}
	return nil, false, nil
}

func sequence(value any) ([]any, bool) {
	switch v := value.(type) {
	case []any:
		return v, true
	case []byte:
		return nil, false
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, true
}

func scalar(value any) (string, error) {
	if tm, ok := value.(encoding.TextMarshaler); ok {
		b, err := tm.MarshalText()
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, err)
		}
		return string(b), nil
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return "", fmt.Errorf("%w: %T", ErrUnsupportedValue, value)
	}
	return s, nil
}

// isScalar reports values that must not be taken apart even though their
// underlying kind is a struct or slice.
func isScalar(value any) bool {
	switch value.(type) {
	case []byte, encoding.TextMarshaler, fmt.Stringer, error:
		return true
	}
	return false
}

func sortedPairs(m map[string]any) Pairs {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make(Pairs, 0, len(keys))
	for _, k := range keys {
		out = append(out, KV(k, m[k]))
	}
	return out
}

// deref unwraps pointers so that nil pointers read as nil. Pointers to
// mapping types handled directly by entries are kept.
func deref(value any) any {
	if value == nil {
		return nil
	}
	rv := reflect.ValueOf(value)
	if rv.Kind() != reflect.Pointer {
		return value
	}
	if rv.IsNil() {
		return nil
	}
	switch value.(type) {
	case *orderedmap.OrderedMap[string, any], encoding.TextMarshaler:
		return value
	}
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	return rv.Interface()
}

// ValidName reports whether name is usable as an element or attribute name.
// A single prefix separator is allowed.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	first, _ := utf8.DecodeRuneInString(name)
	if !isNameStart(first) {
		return false
	}
	colons := 0
	for _, r := range name {
		if r == ':' {
			colons++
			continue
		}
		if !isNameStart(r) && !unicode.IsDigit(r) && r != '-' && r != '.' {
			return false
		}
	}
	return colons <= 1 && name[len(name)-1] != ':'
}

func isNameStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
