package regerr

import (
	"bytes"
	"errors"
	"fmt"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
)

// Kind is the registry parse error classification.
type Kind int

const (
	// KindUnexpectedElement is a tag or text the active state has no
	// transition for.
	KindUnexpectedElement Kind = iota
	// KindUnexpectedAttribute is an attribute key with no mapping for
	// the record being built.
	KindUnexpectedAttribute
	// KindMissingRequiredAttribute is a record closed without a
	// mandatory field.
	KindMissingRequiredAttribute
	// KindMalformedAttributeValue is a value which failed numeric or
	// enumerated parsing, or attribute text which could not be decoded.
	KindMalformedAttributeValue
	// KindUnrecognizedShape is a member or parameter token run outside
	// the type shape grammar.
	KindUnrecognizedShape
	// KindAmbiguousEnumEntry is an enum tag carrying none of the
	// disambiguating attributes.
	KindAmbiguousEnumEntry
)

var kindNames = [...]string{
	KindUnexpectedElement:        "unexpected-element",
	KindUnexpectedAttribute:      "unexpected-attribute",
	KindMissingRequiredAttribute: "missing-required-attribute",
	KindMalformedAttributeValue:  "malformed-attribute-value",
	KindUnrecognizedShape:        "unrecognized-shape",
	KindAmbiguousEnumEntry:       "ambiguous-enum-entry",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	b = bytes.TrimSpace(b)
	for i, name := range kindNames {
		if name == string(b) {
			*k = Kind(i)
			return nil
		}
	}
	return errors.New("unknown value")
}

// Error is a registry parse error.
//
// Only the fields relevant to Kind are populated by the constructors;
// Section and Path are filled in by Annotate as the error unwinds
// through the parser.
type Error struct {
	Kind Kind `json:"kind"`
	// Section is the top-level registry section being parsed.
	Section string `json:"section,omitempty"`
	// Path is the open tag path at the point of failure.
	Path string `json:"path,omitempty"`
	// Tag is the offending token (UnexpectedElement).
	Tag string `json:"tag,omitempty"`
	// Expected describes what the active state would have accepted.
	Expected string `json:"expected,omitempty"`
	// Key is the attribute key (or required field name).
	Key string `json:"key,omitempty"`
	// RecordKind names the record being built.
	RecordKind string `json:"record-kind,omitempty"`
	// Value is the offending raw attribute value.
	Value string `json:"value,omitempty"`
	// Raw is the raw attribute text of the tag.
	Raw string `json:"raw,omitempty"`
	// Tokens is the consumed type shape token run.
	Tokens  []string `json:"tokens,omitempty"`
	Message string   `json:"message,omitempty"`
}

func (e Error) Error() string {
	s := e.Kind.String()
	if e.Tag != "" {
		s += " tag:" + e.Tag
	}
	if e.Key != "" {
		s += " key:" + e.Key
	}
	if e.RecordKind != "" {
		s += " record:" + e.RecordKind
	}
	if e.Value != "" {
		s += " value:" + strconv.Quote(e.Value)
	}
	if len(e.Tokens) > 0 {
		s += " tokens:[" + strings.Join(e.Tokens, " ") + "]"
	}
	if e.Expected != "" {
		s += " expected:" + e.Expected
	}
	if e.Section != "" {
		s += " section:" + e.Section
	}
	if e.Path != "" {
		s += " path:" + e.Path
	}
	if e.Raw != "" && e.Raw != e.Value {
		s += " attrs:" + strconv.Quote(e.Raw)
	}
	if e.Message != "" {
		s += " " + e.Message
	}
	return s
}

func newError(e *Error, opts []Option) *Error {
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// UnexpectedElement returns an error for a token the active state cannot
// accept. expected describes what would have been accepted.
func UnexpectedElement(tag, expected string, opts ...Option) *Error {
	return newError(&Error{Kind: KindUnexpectedElement, Tag: tag, Expected: expected}, opts)
}

// UnexpectedAttribute returns an error for an attribute key recordKind
// does not map.
func UnexpectedAttribute(key, recordKind string, opts ...Option) *Error {
	return newError(&Error{Kind: KindUnexpectedAttribute, Key: key, RecordKind: recordKind}, opts)
}

// MissingRequiredAttribute returns an error for a record closed without
// the mandatory field name, or with it empty.
func MissingRequiredAttribute(name, recordKind string, opts ...Option) *Error {
	return newError(&Error{Kind: KindMissingRequiredAttribute, Key: name, RecordKind: recordKind}, opts)
}

// MalformedAttributeValue returns an error for a value which failed to
// parse.
func MalformedAttributeValue(key, value string, opts ...Option) *Error {
	return newError(&Error{Kind: KindMalformedAttributeValue, Key: key, Value: value}, opts)
}

// UnrecognizedShape returns an error for a declaration token run outside
// the type shape grammar.
func UnrecognizedShape(tokens []string, opts ...Option) *Error {
	return newError(&Error{Kind: KindUnrecognizedShape, Tokens: tokens}, opts)
}

// AmbiguousEnumEntry returns an error for an enum tag carrying none of
// the discriminating attributes.
func AmbiguousEnumEntry(raw string, opts ...Option) *Error {
	return newError(&Error{Kind: KindAmbiguousEnumEntry, Raw: raw}, opts)
}

// As returns the *Error found in err's chain, if any.
func As(err error) (*Error, bool) {
	var e *Error
	if pkgerrors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// Annotate applies opts to the *Error in err's chain, without
// overwriting fields already set closer to the point of failure.
// err is returned unchanged.
func Annotate(err error, opts ...Option) error {
	e, ok := As(err)
	if !ok {
		return err
	}
	var add Error
	for _, opt := range opts {
		opt(&add)
	}
	if e.Section == "" {
		e.Section = add.Section
	}
	if e.Path == "" {
		e.Path = add.Path
	}
	if e.Raw == "" {
		e.Raw = add.Raw
	}
	if e.RecordKind == "" {
		e.RecordKind = add.RecordKind
	}
	return err
}
