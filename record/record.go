// Package record builds typed records from decoded tag attributes.
//
// Every record kind is described by a Table: an ordered list of rules
// mapping an attribute key to a field setter, plus the keys which must be
// present. Building a record makes one pass over the attributes in source
// order. A key without a rule is an UnexpectedAttribute error, a value
// its setter rejects is a MalformedAttributeValue error, and an absent or
// empty required key is a MissingRequiredAttribute error.
package record

import (
	"strconv"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
)

// Setter assigns a raw attribute value to a field of rec.
type Setter[T any] func(rec *T, value string) error

// Rule maps one attribute key to its Setter.
type Rule[T any] struct {
	Key string
	Set Setter[T]
}

// Table is the attribute mapping for one record kind. Tables are
// immutable once constructed and safe to share between parses.
type Table[T any] struct {
	kind     string
	rules    map[string]Setter[T]
	keys     []string
	required []string
}

// New returns the Table for the record kind named kind.
func New[T any](kind string, rules ...Rule[T]) *Table[T] {
	t := &Table[T]{kind: kind, rules: make(map[string]Setter[T], len(rules))}
	for _, r := range rules {
		if _, dup := t.rules[r.Key]; dup {
			panic("record: duplicate rule for key " + strconv.Quote(r.Key) + " in " + kind)
		}
		t.rules[r.Key] = r.Set
		t.keys = append(t.keys, r.Key)
	}
	return t
}

// Require marks keys as mandatory and returns t. A required key whose
// value is empty counts as missing.
func (t *Table[T]) Require(keys ...string) *Table[T] {
	for _, k := range keys {
		if _, ok := t.rules[k]; !ok {
			panic("record: required key " + strconv.Quote(k) + " has no rule in " + t.kind)
		}
	}
	t.required = append(t.required, keys...)
	return t
}

// Kind returns the record kind name.
func (t *Table[T]) Kind() string { return t.kind }

// Keys returns the keys t maps, in rule order.
func (t *Table[T]) Keys() []string { return append([]string(nil), t.keys...) }

// Build returns a new record populated from attrs.
func (t *Table[T]) Build(attrs attr.List) (T, error) {
	var rec T
	err := t.Apply(&rec, attrs)
	return rec, err
}

// Apply populates rec from attrs.
func (t *Table[T]) Apply(rec *T, attrs attr.List) error {
	for _, a := range attrs {
		set, ok := t.rules[a.Key]
		if !ok {
			return errors.WithStack(regerr.UnexpectedAttribute(a.Key, t.kind))
		}
		if err := set(rec, a.Value); err != nil {
			return errors.WithStack(regerr.MalformedAttributeValue(a.Key, a.Value,
				regerr.WithRecordKind(t.kind), regerr.WithMessage(err.Error())))
		}
	}
	for _, k := range t.required {
		if v, ok := attrs.Get(k); !ok || v == "" {
			return errors.WithStack(regerr.MissingRequiredAttribute(k, t.kind))
		}
	}
	return nil
}
