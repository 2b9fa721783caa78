package registry

import (
	"github.com/andaru/vkregistry/record"
	"github.com/andaru/vkregistry/shape"
)

// TypeEntry is one <type> declaration. It is one of *Include,
// *ExternType, *Define, *BaseType, *Bitmask, *TypeAlias, *Handle,
// *Enumeration, *FuncPointer, *Structure or *Union.
type TypeEntry interface {
	TypeName() string
	isTypeEntry()
}

// Include is a header inclusion.
type Include struct {
	Name string
	// Text is the directive text, absent for bare header names.
	Text *string
}

// ExternType is a type declared by an external header.
type ExternType struct {
	Name     string
	Requires *string
}

// Define is a preprocessor definition.
type Define struct {
	Name       string
	Text       string
	Deprecated bool
	Requires   *string
	API        *string
	Comment    *string
}

// BaseType is a basic typedef or forward declaration.
type BaseType struct {
	Name string
	Text string
}

// Bitmask is a flags type.
type Bitmask struct {
	Name      string
	Requires  *string
	API       *string
	BitValues *string
	// Flags64 is set when the underlying type is VkFlags64.
	Flags64 bool
}

// TypeAlias is an alternative name for another type.
type TypeAlias struct {
	Name       string
	Alias      string
	Category   *string
	API        *string
	Deprecated *string
}

// Handle is an opaque object handle.
type Handle struct {
	Name            string
	ObjTypeEnum     string
	Parent          *string
	NonDispatchable bool
}

// Enumeration is an enumerated type whose values live in an EnumGroup.
type Enumeration struct {
	Name string
}

// FuncPointer is a function pointer typedef. Text is its C rendering.
type FuncPointer struct {
	Name     string
	Text     string
	Requires *string
	API      *string
	Return   shape.Decl
	Params   []shape.Decl
}

// Structure is a struct type.
type Structure struct {
	Name              string
	Comment           *string
	StructExtends     *string
	Deprecated        *string
	ReturnedOnly      bool
	AllowDuplicate    bool
	RequiredLimitType bool
	Members           []Member
	// Comments holds <comment> children in order.
	Comments []string
}

// Union is a union type.
type Union struct {
	Name         string
	Comment      *string
	ReturnedOnly bool
	Members      []Member
	Comments     []string
}

// Member is one structure or union member.
type Member struct {
	shape.Decl
	Values         *string
	Optional       *string
	Len            *string
	AltLen         *string
	ExternSync     *string
	LimitType      *string
	ObjectType     *string
	Selector       *string
	Selection      *string
	Deprecated     *string
	API            *string
	FeatureLink    *string
	NoAutoValidity bool
}

func (t *Include) TypeName() string     { return t.Name }
func (t *ExternType) TypeName() string  { return t.Name }
func (t *Define) TypeName() string      { return t.Name }
func (t *BaseType) TypeName() string    { return t.Name }
func (t *Bitmask) TypeName() string     { return t.Name }
func (t *TypeAlias) TypeName() string   { return t.Name }
func (t *Handle) TypeName() string      { return t.Name }
func (t *Enumeration) TypeName() string { return t.Name }
func (t *FuncPointer) TypeName() string { return t.Name }
func (t *Structure) TypeName() string   { return t.Name }
func (t *Union) TypeName() string       { return t.Name }

func (*Include) isTypeEntry()     {}
func (*ExternType) isTypeEntry()  {}
func (*Define) isTypeEntry()      {}
func (*BaseType) isTypeEntry()    {}
func (*Bitmask) isTypeEntry()     {}
func (*TypeAlias) isTypeEntry()   {}
func (*Handle) isTypeEntry()      {}
func (*Enumeration) isTypeEntry() {}
func (*FuncPointer) isTypeEntry() {}
func (*Structure) isTypeEntry()   {}
func (*Union) isTypeEntry()       {}

var includes = record.New("include",
	record.Fixed[Include]("category", "include"),
	record.Text("name", func(r *Include) *string { return &r.Name }),
).Require("name")

var externTypes = record.New("extern-type",
	record.Text("name", func(r *ExternType) *string { return &r.Name }),
	record.OptText("requires", func(r *ExternType) **string { return &r.Requires }),
).Require("name")

var defines = record.New("define",
	record.Fixed[Define]("category", "define"),
	record.Text("name", func(r *Define) *string { return &r.Name }),
	record.Flag("deprecated", func(r *Define) *bool { return &r.Deprecated }),
	record.OptText("requires", func(r *Define) **string { return &r.Requires }),
	record.OptText("api", func(r *Define) **string { return &r.API }),
	record.OptText("comment", func(r *Define) **string { return &r.Comment }),
)

var baseTypes = record.New("basetype",
	record.Fixed[BaseType]("category", "basetype"),
)

var bitmasks = record.New("bitmask",
	record.Fixed[Bitmask]("category", "bitmask", "enum"),
	record.Text("name", func(r *Bitmask) *string { return &r.Name }),
	record.OptText("requires", func(r *Bitmask) **string { return &r.Requires }),
	record.OptText("api", func(r *Bitmask) **string { return &r.API }),
	record.OptText("bitvalues", func(r *Bitmask) **string { return &r.BitValues }),
)

var typeAliases = record.New("type-alias",
	record.Text("name", func(r *TypeAlias) *string { return &r.Name }),
	record.Text("alias", func(r *TypeAlias) *string { return &r.Alias }),
	record.OptText("category", func(r *TypeAlias) **string { return &r.Category }),
	record.OptText("api", func(r *TypeAlias) **string { return &r.API }),
	record.OptText("deprecated", func(r *TypeAlias) **string { return &r.Deprecated }),
).Require("name", "alias")

var handles = record.New("handle",
	record.Fixed[Handle]("category", "handle"),
	record.Text("name", func(r *Handle) *string { return &r.Name }),
	record.Text("objtypeenum", func(r *Handle) *string { return &r.ObjTypeEnum }),
	record.OptText("parent", func(r *Handle) **string { return &r.Parent }),
).Require("objtypeenum")

var enumerations = record.New("enumeration",
	record.Fixed[Enumeration]("category", "enum"),
	record.Text("name", func(r *Enumeration) *string { return &r.Name }),
).Require("name")

var funcPointers = record.New("funcpointer",
	record.Fixed[FuncPointer]("category", "funcpointer"),
	record.OptText("requires", func(r *FuncPointer) **string { return &r.Requires }),
	record.OptText("api", func(r *FuncPointer) **string { return &r.API }),
)

var structures = record.New("structure",
	record.Fixed[Structure]("category", "struct"),
	record.Text("name", func(r *Structure) *string { return &r.Name }),
	record.OptText("comment", func(r *Structure) **string { return &r.Comment }),
	record.OptText("structextends", func(r *Structure) **string { return &r.StructExtends }),
	record.OptText("deprecated", func(r *Structure) **string { return &r.Deprecated }),
	record.Flag("returnedonly", func(r *Structure) *bool { return &r.ReturnedOnly }),
	record.Flag("allowduplicate", func(r *Structure) *bool { return &r.AllowDuplicate }),
	record.Flag("requiredlimittype", func(r *Structure) *bool { return &r.RequiredLimitType }),
).Require("name")

var unions = record.New("union",
	record.Fixed[Union]("category", "union"),
	record.Text("name", func(r *Union) *string { return &r.Name }),
	record.OptText("comment", func(r *Union) **string { return &r.Comment }),
	record.Flag("returnedonly", func(r *Union) *bool { return &r.ReturnedOnly }),
).Require("name")

var members = record.New("member",
	record.OptText("values", func(r *Member) **string { return &r.Values }),
	record.OptText("optional", func(r *Member) **string { return &r.Optional }),
	record.OptText("len", func(r *Member) **string { return &r.Len }),
	record.OptText("altlen", func(r *Member) **string { return &r.AltLen }),
	record.OptText("externsync", func(r *Member) **string { return &r.ExternSync }),
	record.OptText("limittype", func(r *Member) **string { return &r.LimitType }),
	record.OptText("objecttype", func(r *Member) **string { return &r.ObjectType }),
	record.OptText("selector", func(r *Member) **string { return &r.Selector }),
	record.OptText("selection", func(r *Member) **string { return &r.Selection }),
	record.OptText("deprecated", func(r *Member) **string { return &r.Deprecated }),
	record.OptText("api", func(r *Member) **string { return &r.API }),
	record.OptText("featurelink", func(r *Member) **string { return &r.FeatureLink }),
	record.Flag("noautovalidity", func(r *Member) *bool { return &r.NoAutoValidity }),
)
