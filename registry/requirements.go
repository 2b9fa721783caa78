package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
	"github.com/pkg/errors"
)

// Requirement is a <require> block of a feature or extension: the
// types, enums and commands it adds to the API, in document order.
type Requirement struct {
	Comment   *string
	Depends   *string
	API       *string
	Feature   *string
	Extension *string
	Entries   []RequireEntry
	Comments  []string
}

// RequireEntry is one reference inside a Requirement: *RequiredType,
// *RequiredCommand, *RequiredEnum, *RequiredEnumOffset,
// *RequiredEnumBitpos, *RequiredEnumAlias, *RequiredEnumValue or
// *RequiredFeature.
type RequireEntry interface {
	RequiredName() string
	isRequireEntry()
}

// RequiredType names a type the requirement adds.
type RequiredType struct {
	Name    string
	Comment *string
}

// RequiredCommand names a command the requirement adds.
type RequiredCommand struct {
	Name    string
	Comment *string
}

// RequiredEnum is a plain reference to an enum defined elsewhere.
type RequiredEnum struct {
	Name    string
	Comment *string
	API     *string
}

// RequiredEnumOffset extends an enumerated type with a value computed
// from the extension number and offset.
type RequiredEnumOffset struct {
	Name      string
	Extends   string
	Offset    int
	ExtNumber *int
	// Negative is set by dir="-".
	Negative bool
	Comment  *string
	API      *string
	Protect  *string
}

// RequiredEnumBitpos extends a bitmask with a new bit.
type RequiredEnumBitpos struct {
	Name    string
	BitPos  int
	Extends *string
	Comment *string
	API     *string
	Protect *string
}

// RequiredEnumAlias adds an alias of an existing enum value.
type RequiredEnumAlias struct {
	Name       string
	Alias      string
	Extends    *string
	Comment    *string
	API        *string
	Deprecated *string
}

// RequiredEnumValue adds an enum with an explicit value, such as an
// extension name or version constant.
type RequiredEnumValue struct {
	Name    string
	Value   string
	Extends *string
	Type    *string
	Comment *string
	API     *string
}

// RequiredFeature is a device feature the requirement depends on.
type RequiredFeature struct {
	Name    string
	Struct  string
	Comment *string
}

func (r *RequiredType) RequiredName() string       { return r.Name }
func (r *RequiredCommand) RequiredName() string    { return r.Name }
func (r *RequiredEnum) RequiredName() string       { return r.Name }
func (r *RequiredEnumOffset) RequiredName() string { return r.Name }
func (r *RequiredEnumBitpos) RequiredName() string { return r.Name }
func (r *RequiredEnumAlias) RequiredName() string  { return r.Name }
func (r *RequiredEnumValue) RequiredName() string  { return r.Name }
func (r *RequiredFeature) RequiredName() string    { return r.Name }

func (*RequiredType) isRequireEntry()       {}
func (*RequiredCommand) isRequireEntry()    {}
func (*RequiredEnum) isRequireEntry()       {}
func (*RequiredEnumOffset) isRequireEntry() {}
func (*RequiredEnumBitpos) isRequireEntry() {}
func (*RequiredEnumAlias) isRequireEntry()  {}
func (*RequiredEnumValue) isRequireEntry()  {}
func (*RequiredFeature) isRequireEntry()    {}

var requirements = record.New("require",
	record.OptText("comment", func(r *Requirement) **string { return &r.Comment }),
	record.OptText("depends", func(r *Requirement) **string { return &r.Depends }),
	record.OptText("api", func(r *Requirement) **string { return &r.API }),
	record.OptText("feature", func(r *Requirement) **string { return &r.Feature }),
	record.OptText("extension", func(r *Requirement) **string { return &r.Extension }),
)

var requiredTypes = record.New("required-type",
	record.Text("name", func(r *RequiredType) *string { return &r.Name }),
	record.OptText("comment", func(r *RequiredType) **string { return &r.Comment }),
).Require("name")

var requiredCommands = record.New("required-command",
	record.Text("name", func(r *RequiredCommand) *string { return &r.Name }),
	record.OptText("comment", func(r *RequiredCommand) **string { return &r.Comment }),
).Require("name")

var requiredEnums = record.New("required-enum",
	record.Text("name", func(r *RequiredEnum) *string { return &r.Name }),
	record.OptText("comment", func(r *RequiredEnum) **string { return &r.Comment }),
	record.OptText("api", func(r *RequiredEnum) **string { return &r.API }),
).Require("name")

var requiredEnumOffsets = record.New("required-enum-offset",
	record.Text("name", func(r *RequiredEnumOffset) *string { return &r.Name }),
	record.Text("extends", func(r *RequiredEnumOffset) *string { return &r.Extends }),
	record.Int("offset", func(r *RequiredEnumOffset) *int { return &r.Offset }),
	record.OptInt("extnumber", func(r *RequiredEnumOffset) **int { return &r.ExtNumber }),
	record.Func[RequiredEnumOffset]("dir", func(r *RequiredEnumOffset, v string) error {
		if v != "-" {
			return errors.Errorf("want -, got %q", v)
		}
		r.Negative = true
		return nil
	}),
	record.OptText("comment", func(r *RequiredEnumOffset) **string { return &r.Comment }),
	record.OptText("api", func(r *RequiredEnumOffset) **string { return &r.API }),
	record.OptText("protect", func(r *RequiredEnumOffset) **string { return &r.Protect }),
).Require("name", "extends", "offset")

var requiredEnumBitpos = record.New("required-enum-bitpos",
	record.Text("name", func(r *RequiredEnumBitpos) *string { return &r.Name }),
	record.Int("bitpos", func(r *RequiredEnumBitpos) *int { return &r.BitPos }),
	record.OptText("extends", func(r *RequiredEnumBitpos) **string { return &r.Extends }),
	record.OptText("comment", func(r *RequiredEnumBitpos) **string { return &r.Comment }),
	record.OptText("api", func(r *RequiredEnumBitpos) **string { return &r.API }),
	record.OptText("protect", func(r *RequiredEnumBitpos) **string { return &r.Protect }),
).Require("name", "bitpos")

var requiredEnumAliases = record.New("required-enum-alias",
	record.Text("name", func(r *RequiredEnumAlias) *string { return &r.Name }),
	record.Text("alias", func(r *RequiredEnumAlias) *string { return &r.Alias }),
	record.OptText("extends", func(r *RequiredEnumAlias) **string { return &r.Extends }),
	record.OptText("comment", func(r *RequiredEnumAlias) **string { return &r.Comment }),
	record.OptText("api", func(r *RequiredEnumAlias) **string { return &r.API }),
	record.OptText("deprecated", func(r *RequiredEnumAlias) **string { return &r.Deprecated }),
).Require("name", "alias")

var requiredEnumValues = record.New("required-enum-value",
	record.Text("name", func(r *RequiredEnumValue) *string { return &r.Name }),
	record.Text("value", func(r *RequiredEnumValue) *string { return &r.Value }),
	record.OptText("extends", func(r *RequiredEnumValue) **string { return &r.Extends }),
	record.OptText("type", func(r *RequiredEnumValue) **string { return &r.Type }),
	record.OptText("comment", func(r *RequiredEnumValue) **string { return &r.Comment }),
	record.OptText("api", func(r *RequiredEnumValue) **string { return &r.API }),
).Require("name", "value")

var requiredFeatures = record.New("required-feature",
	record.Text("name", func(r *RequiredFeature) *string { return &r.Name }),
	record.Text("struct", func(r *RequiredFeature) *string { return &r.Struct }),
	record.OptText("comment", func(r *RequiredFeature) **string { return &r.Comment }),
).Require("name", "struct")

// requirement parses a <require> block opened by tok.
func (p *parser) requirement(tok element.Token) (Requirement, error) {
	rec, err := build(p, requirements, tok)
	if err != nil {
		return rec, err
	}
	rec.Entries = []RequireEntry{}
	err = p.children(tok, func(child element.Token) error {
		var e RequireEntry
		var kind string
		switch {
		case child.IsEmpty("type"):
			r, err := build(p, requiredTypes, child)
			if err != nil {
				return err
			}
			e, kind = &r, requiredTypes.Kind()
		case child.IsEmpty("command"):
			r, err := build(p, requiredCommands, child)
			if err != nil {
				return err
			}
			e, kind = &r, requiredCommands.Kind()
		case child.IsEmpty("feature"):
			r, err := build(p, requiredFeatures, child)
			if err != nil {
				return err
			}
			e, kind = &r, requiredFeatures.Kind()
		case child.IsEmpty("enum"):
			var err error
			if e, kind, err = p.requiredEnum(child); err != nil {
				return err
			}
		case child.IsStart("comment"):
			text, err := p.comment(child)
			if err != nil {
				return err
			}
			rec.Comments = append(rec.Comments, text)
			return nil
		default:
			return p.unexpected(child, "<type/>, <enum/>, <command/>, <feature/> or <comment>")
		}
		rec.Entries = append(rec.Entries, e)
		p.emit(kind, e.RequiredName(), true)
		return nil
	})
	return rec, err
}

// requiredEnum builds the record RequirePriority selects for tok.
func (p *parser) requiredEnum(tok element.Token) (RequireEntry, string, error) {
	attrs, key, err := p.classify(tok, RequirePriority)
	if err != nil {
		return nil, "", err
	}
	switch enumEntryKinds[key] {
	case EnumEntryOffset:
		r, err := buildFrom(p, requiredEnumOffsets, tok, attrs)
		return &r, requiredEnumOffsets.Kind(), err
	case EnumEntryBitpos:
		r, err := buildFrom(p, requiredEnumBitpos, tok, attrs)
		return &r, requiredEnumBitpos.Kind(), err
	case EnumEntryAlias:
		r, err := buildFrom(p, requiredEnumAliases, tok, attrs)
		return &r, requiredEnumAliases.Kind(), err
	case EnumEntryValue:
		r, err := buildFrom(p, requiredEnumValues, tok, attrs)
		return &r, requiredEnumValues.Kind(), err
	}
	r, err := buildFrom(p, requiredEnums, tok, attrs)
	return &r, requiredEnums.Kind(), err
}
