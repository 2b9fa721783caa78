package registry

import (
	"fmt"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
	"github.com/andaru/vkregistry/regerr"
)

// EnumGroupKind is the type attribute of an <enums> group.
type EnumGroupKind int

// EnumGroupKind values. EnumGroupUnspecified is a group with no type
// attribute.
const (
	EnumGroupUnspecified EnumGroupKind = iota
	EnumGroupEnum
	EnumGroupBitmask
	EnumGroupConstants
)

func (k EnumGroupKind) String() string {
	switch k {
	case EnumGroupUnspecified:
		return ""
	case EnumGroupEnum:
		return "enum"
	case EnumGroupBitmask:
		return "bitmask"
	case EnumGroupConstants:
		return "constants"
	}
	return fmt.Sprintf("EnumGroupKind(%d)", int(k))
}

func (k EnumGroupKind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

var enumGroupKinds = map[string]EnumGroupKind{
	"enum":      EnumGroupEnum,
	"bitmask":   EnumGroupBitmask,
	"constants": EnumGroupConstants,
}

// apiConstantsGroup is the name of the group holding API constants in
// registries predating the constants group type.
const apiConstantsGroup = "API Constants"

// EnumGroup is an <enums> group of values for one enumerated type.
type EnumGroup struct {
	Name     string
	Kind     EnumGroupKind
	Comment  *string
	BitWidth *int
	Entries  []EnumEntry
	Unused   []UnusedRange
	Comments []string
}

// EnumEntry is one <enum> of a group: *EnumValue, *EnumAlias or
// *EnumBitPosition.
type EnumEntry interface {
	EntryName() string
	isEnumEntry()
}

// EnumValue is a group entry with an explicit value.
type EnumValue struct {
	Name    string
	Value   string
	Type    *string
	Comment *string
}

// EnumAlias is a group entry naming another entry.
type EnumAlias struct {
	Name       string
	Alias      string
	API        *string
	Deprecated *string
	Comment    *string
}

// EnumBitPosition is a bitmask group entry given by bit position.
type EnumBitPosition struct {
	Name    string
	BitPos  int
	Type    *string
	Comment *string
}

func (e *EnumValue) EntryName() string       { return e.Name }
func (e *EnumAlias) EntryName() string       { return e.Name }
func (e *EnumBitPosition) EntryName() string { return e.Name }

func (*EnumValue) isEnumEntry()       {}
func (*EnumAlias) isEnumEntry()       {}
func (*EnumBitPosition) isEnumEntry() {}

// UnusedRange is a reserved range of values in a group.
type UnusedRange struct {
	Start   string
	End     *string
	Comment *string
}

// ConstantEntry is one API constant: *ApiConstant or *ApiConstantAlias.
type ConstantEntry interface {
	ConstantName() string
	isConstantEntry()
}

// ApiConstant is a named constant with a C literal value.
type ApiConstant struct {
	Name    string
	Value   string
	Type    *string
	Comment *string
}

// ApiConstantAlias is a constant naming another constant.
type ApiConstantAlias struct {
	Name       string
	Alias      string
	Comment    *string
	Deprecated *string
}

func (c *ApiConstant) ConstantName() string      { return c.Name }
func (c *ApiConstantAlias) ConstantName() string { return c.Name }

func (*ApiConstant) isConstantEntry()      {}
func (*ApiConstantAlias) isConstantEntry() {}

var enumGroups = record.New("enums",
	record.Text("name", func(r *EnumGroup) *string { return &r.Name }),
	record.Enum("type", enumGroupKinds, func(r *EnumGroup) *EnumGroupKind { return &r.Kind }),
	record.OptText("comment", func(r *EnumGroup) **string { return &r.Comment }),
	record.OptInt("bitwidth", func(r *EnumGroup) **int { return &r.BitWidth }),
).Require("name")

var enumValues = record.New("enum-value",
	record.Text("name", func(r *EnumValue) *string { return &r.Name }),
	record.Text("value", func(r *EnumValue) *string { return &r.Value }),
	record.OptText("type", func(r *EnumValue) **string { return &r.Type }),
	record.OptText("comment", func(r *EnumValue) **string { return &r.Comment }),
).Require("name", "value")

var enumAliases = record.New("enum-alias",
	record.Text("name", func(r *EnumAlias) *string { return &r.Name }),
	record.Text("alias", func(r *EnumAlias) *string { return &r.Alias }),
	record.OptText("api", func(r *EnumAlias) **string { return &r.API }),
	record.OptText("deprecated", func(r *EnumAlias) **string { return &r.Deprecated }),
	record.OptText("comment", func(r *EnumAlias) **string { return &r.Comment }),
).Require("name", "alias")

var enumBitPositions = record.New("enum-bitpos",
	record.Text("name", func(r *EnumBitPosition) *string { return &r.Name }),
	record.Int("bitpos", func(r *EnumBitPosition) *int { return &r.BitPos }),
	record.OptText("type", func(r *EnumBitPosition) **string { return &r.Type }),
	record.OptText("comment", func(r *EnumBitPosition) **string { return &r.Comment }),
).Require("name", "bitpos")

var unusedRanges = record.New("unused",
	record.Text("start", func(r *UnusedRange) *string { return &r.Start }),
	record.OptText("end", func(r *UnusedRange) **string { return &r.End }),
	record.OptText("comment", func(r *UnusedRange) **string { return &r.Comment }),
).Require("start")

var apiConstants = record.New("api-constant",
	record.Text("name", func(r *ApiConstant) *string { return &r.Name }),
	record.Text("value", func(r *ApiConstant) *string { return &r.Value }),
	record.OptText("type", func(r *ApiConstant) **string { return &r.Type }),
	record.OptText("comment", func(r *ApiConstant) **string { return &r.Comment }),
).Require("name", "value")

var apiConstantAliases = record.New("api-constant-alias",
	record.Text("name", func(r *ApiConstantAlias) *string { return &r.Name }),
	record.Text("alias", func(r *ApiConstantAlias) *string { return &r.Alias }),
	record.OptText("comment", func(r *ApiConstantAlias) **string { return &r.Comment }),
	record.OptText("deprecated", func(r *ApiConstantAlias) **string { return &r.Deprecated }),
).Require("name", "alias")

func (p *parser) enums(tok element.Token) error {
	group, err := build(p, enumGroups, tok)
	if err != nil {
		return err
	}
	if group.Name == apiConstantsGroup || group.Kind == EnumGroupConstants {
		return p.constants(tok)
	}
	err = p.children(tok, func(child element.Token) error {
		switch {
		case child.IsEmpty("enum"):
			e, err := p.enumEntry(child)
			if err != nil {
				return err
			}
			group.Entries = append(group.Entries, e)
		case child.IsEmpty("unused"):
			u, err := build(p, unusedRanges, child)
			if err != nil {
				return err
			}
			group.Unused = append(group.Unused, u)
		case child.IsStart("comment"):
			text, err := p.comment(child)
			if err != nil {
				return err
			}
			group.Comments = append(group.Comments, text)
		default:
			return p.unexpected(child, "<enum/>, <unused/> or <comment>")
		}
		return nil
	})
	if err != nil {
		return err
	}
	p.reg.EnumGroups = append(p.reg.EnumGroups, group)
	p.emit(enumGroups.Kind(), group.Name, false)
	return nil
}

// classify decodes the attributes of tok and classifies them under pr.
func (p *parser) classify(tok element.Token, pr Priority) (attr.List, string, error) {
	attrs, err := p.decode(tok)
	if err != nil {
		return nil, "", err
	}
	key, err := pr.Match(attrs)
	if err != nil {
		return nil, "", regerr.Annotate(err, regerr.WithRaw(tok.Attrs), regerr.WithPath(p.parentPath(tok)))
	}
	return attrs, key, nil
}

func (p *parser) enumEntry(tok element.Token) (EnumEntry, error) {
	attrs, key, err := p.classify(tok, GroupPriority)
	if err != nil {
		return nil, err
	}
	var e EnumEntry
	var kind string
	switch enumEntryKinds[key] {
	case EnumEntryValue:
		rec, err := buildFrom(p, enumValues, tok, attrs)
		if err != nil {
			return nil, err
		}
		e, kind = &rec, enumValues.Kind()
	case EnumEntryAlias:
		rec, err := buildFrom(p, enumAliases, tok, attrs)
		if err != nil {
			return nil, err
		}
		e, kind = &rec, enumAliases.Kind()
	case EnumEntryBitpos:
		rec, err := buildFrom(p, enumBitPositions, tok, attrs)
		if err != nil {
			return nil, err
		}
		e, kind = &rec, enumBitPositions.Kind()
	}
	p.emit(kind, e.EntryName(), true)
	return e, nil
}

func (p *parser) constants(tok element.Token) error {
	return p.children(tok, func(child element.Token) error {
		if child.IsStart("comment") {
			_, err := p.comment(child)
			return err
		}
		if !child.IsEmpty("enum") {
			return p.unexpected(child, "<enum/> or <comment>")
		}
		attrs, key, err := p.classify(child, ConstantPriority)
		if err != nil {
			return err
		}
		var c ConstantEntry
		var kind string
		if key == "value" {
			rec, err := buildFrom(p, apiConstants, child, attrs)
			if err != nil {
				return err
			}
			c, kind = &rec, apiConstants.Kind()
		} else {
			rec, err := buildFrom(p, apiConstantAliases, child, attrs)
			if err != nil {
				return err
			}
			c, kind = &rec, apiConstantAliases.Kind()
		}
		p.reg.Constants = append(p.reg.Constants, c)
		p.emit(kind, c.ConstantName(), false)
		return nil
	})
}
