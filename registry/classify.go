package registry

import (
	"fmt"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
)

// Priority is a fixed-priority classifier for a tag whose record kind is
// selected by which discriminating attribute is present.
//
// Classification first rejects any key not in Known, then returns the
// first of Keys present in the attribute list. If none is present the
// result is the empty key when Fallback is set, and an AmbiguousEnumEntry
// error otherwise.
type Priority struct {
	// Tag names the classified tag for error reporting.
	Tag string
	// Keys lists the discriminating keys, highest priority first.
	Keys []string
	// Fallback accepts a tag carrying none of Keys.
	Fallback bool
	// Known is every key legal on the tag, for any record kind.
	Known map[string]bool
}

// Match returns the discriminating key selected for attrs.
func (pr Priority) Match(attrs attr.List) (string, error) {
	for _, a := range attrs {
		if !pr.Known[a.Key] {
			return "", errors.WithStack(regerr.UnexpectedAttribute(a.Key, pr.Tag))
		}
	}
	for _, key := range pr.Keys {
		if attrs.Has(key) {
			return key, nil
		}
	}
	if pr.Fallback {
		return "", nil
	}
	return "", errors.WithStack(regerr.AmbiguousEnumEntry(attrs.String(), regerr.WithRecordKind(pr.Tag)))
}

// knownKeys returns the union of the keys of every table.
func knownKeys(tables ...interface{ Keys() []string }) map[string]bool {
	known := make(map[string]bool)
	for _, t := range tables {
		for _, k := range t.Keys() {
			known[k] = true
		}
	}
	return known
}

// EnumEntryKind is the record kind selected for an <enum> tag.
type EnumEntryKind int

const (
	// EnumEntryPlain is a name-only reference, legal in require blocks.
	EnumEntryPlain EnumEntryKind = iota
	EnumEntryValue
	EnumEntryAlias
	EnumEntryBitpos
	EnumEntryOffset
)

func (k EnumEntryKind) String() string {
	switch k {
	case EnumEntryPlain:
		return "plain"
	case EnumEntryValue:
		return "value"
	case EnumEntryAlias:
		return "alias"
	case EnumEntryBitpos:
		return "bitpos"
	case EnumEntryOffset:
		return "offset"
	}
	return fmt.Sprintf("EnumEntryKind(%d)", int(k))
}

var enumEntryKinds = map[string]EnumEntryKind{
	"":       EnumEntryPlain,
	"value":  EnumEntryValue,
	"alias":  EnumEntryAlias,
	"bitpos": EnumEntryBitpos,
	"offset": EnumEntryOffset,
}

var (
	// GroupPriority classifies <enum> tags inside an <enums> group:
	// value, then alias, then bitpos. A tag with none is ambiguous.
	GroupPriority = Priority{
		Tag:   "enum",
		Keys:  []string{"value", "alias", "bitpos"},
		Known: knownKeys(enumValues, enumAliases, enumBitPositions),
	}
	// ConstantPriority classifies <enum> tags inside the API constants
	// group: value, then alias.
	ConstantPriority = Priority{
		Tag:   "enum",
		Keys:  []string{"value", "alias"},
		Known: knownKeys(apiConstants, apiConstantAliases),
	}
	// RequirePriority classifies <enum> tags inside require blocks:
	// offset, then bitpos, then alias, then value, else a plain
	// reference.
	RequirePriority = Priority{
		Tag:      "enum",
		Keys:     []string{"offset", "bitpos", "alias", "value"},
		Fallback: true,
		Known:    knownKeys(requiredEnumOffsets, requiredEnumBitpos, requiredEnumAliases, requiredEnumValues, requiredEnums),
	}
	// EnablePriority classifies <enable> tags inside a SPIR-V capability:
	// version, then struct, then property, then extension.
	EnablePriority = Priority{
		Tag:   "enable",
		Keys:  []string{"version", "struct", "property", "extension"},
		Known: knownKeys(spirvEnableVersions, spirvEnableStructs, spirvEnableProperties, spirvEnableExtensions),
	}
)

// ClassifyEnumEntry returns the record kind pr selects for an <enum> tag
// with attributes attrs.
func ClassifyEnumEntry(attrs attr.List, pr Priority) (EnumEntryKind, error) {
	key, err := pr.Match(attrs)
	if err != nil {
		return 0, err
	}
	return enumEntryKinds[key], nil
}
