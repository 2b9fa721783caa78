// Package attr decodes the raw attribute text of a tag into an ordered
// list of key/value pairs.
package attr

import (
	"strings"

	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Attr is a single decoded attribute.
type Attr struct {
	Key   string
	Value string
}

// List is a sequence of attributes in source order.
type List []Attr

// Decode parses raw attribute text of the form
//
//	key="value" key2='value2'
//
// into a List, preserving source order. Entity references in values are
// decoded. A repeated key or text not matching the grammar above is a
// MalformedAttributeValue error.
func Decode(raw string) (List, error) {
	var list List
	s := raw
	for {
		s = strings.TrimLeft(s, " \t\r\n")
		if s == "" {
			return list, nil
		}
		eq := strings.IndexByte(s, '=')
		if eq < 1 {
			return nil, malformed(strings.TrimSpace(s), raw, "attribute without value")
		}
		key := strings.TrimRight(s[:eq], " \t\r\n")
		if strings.ContainsAny(key, " \t\r\n\"'<>/") {
			return nil, malformed(key, raw, "invalid attribute name")
		}
		s = strings.TrimLeft(s[eq+1:], " \t\r\n")
		if s == "" || (s[0] != '"' && s[0] != '\'') {
			return nil, malformed(key, raw, "unquoted attribute value")
		}
		quote := s[0]
		end := strings.IndexByte(s[1:], quote)
		if end < 0 {
			return nil, malformed(key, raw, "unterminated attribute value")
		}
		if list.Has(key) {
			return nil, malformed(key, raw, "duplicate attribute")
		}
		list = append(list, Attr{Key: key, Value: unescape(s[1 : end+1])})
		s = s[end+2:]
		if s != "" && !strings.ContainsAny(s[:1], " \t\r\n") {
			return nil, malformed(key, raw, "missing space between attributes")
		}
	}
}

func malformed(key, raw, msg string) error {
	return errors.WithStack(regerr.MalformedAttributeValue(key, raw, regerr.WithRaw(raw), regerr.WithMessage(msg)))
}

func unescape(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	return html.UnescapeString(s)
}

// Get returns the value of key and whether it was present.
func (l List) Get(key string) (string, bool) {
	for _, a := range l {
		if a.Key == key {
			return a.Value, true
		}
	}
	return "", false
}

// Value returns the value of key, or the empty string.
func (l List) Value(key string) string {
	v, _ := l.Get(key)
	return v
}

// Has reports whether key is present.
func (l List) Has(key string) bool {
	_, ok := l.Get(key)
	return ok
}

// Keys returns the attribute keys in source order.
func (l List) Keys() (keys []string) {
	for _, a := range l {
		keys = append(keys, a.Key)
	}
	return keys
}

// String renders l as attribute text with double-quoted, escaped values.
func (l List) String() string {
	var b strings.Builder
	for i, a := range l {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(a.Key)
		b.WriteString(`="`)
		b.WriteString(html.EscapeString(a.Value))
		b.WriteByte('"')
	}
	return b.String()
}
