// Package shape infers the canonical declared shape of a structure member,
// command parameter or command prototype from its token run.
//
// A declaration such as
//
//	<member>const <type>VkFoo</type>* const* <name>ppFoo</name></member>
//
// is written as loose text around a <type> and a <name> sub-element. Infer
// consumes that run in three phases (qualifiers, declarators, suffixes) and
// returns a Decl. The grammar is closed: any token not listed below is an
// UnrecognizedShape error carrying the tokens consumed so far.
//
//	qualifier:  "const" | "struct" | "const struct"   then <type>T</type>
//	declarator: "*" | "**" | "* const*" | "* const *" then <name>N</name>
//	suffix:     "[" <enum>C</enum> "]" | "[2]" | "[3]" | "[4]" | "[3][4]"
//	            | ":8" | ":24" | <comment>text</comment>
package shape

import (
	"fmt"
)

// Kind is a declared shape classification.
type Kind int

const (
	// Value is a plain T.
	Value Kind = iota
	// ConstPointer is a const T* (or a const-qualified T parameter).
	ConstPointer
	// MutablePointer is a T*.
	MutablePointer
	// ConstPointerToConstPointer is a const T* const*.
	ConstPointerToConstPointer
	// MutablePointerToMutablePointer is a T**.
	MutablePointerToMutablePointer
	// FixedArray is a T[N].
	FixedArray
	// SymbolicArray is a T[C] where C names an API constant.
	SymbolicArray
	// FixedArray2D is a T[N][M].
	FixedArray2D
	// ConstPointerToFixedArray is a const T[N] parameter.
	ConstPointerToFixedArray
)

var kindNames = [...]string{
	Value:                          "value",
	ConstPointer:                   "const-pointer",
	MutablePointer:                 "mutable-pointer",
	ConstPointerToConstPointer:     "const-pointer-to-const-pointer",
	MutablePointerToMutablePointer: "mutable-pointer-to-mutable-pointer",
	FixedArray:                     "fixed-array",
	SymbolicArray:                  "symbolic-array",
	FixedArray2D:                   "fixed-array-2d",
	ConstPointerToFixedArray:       "const-pointer-to-fixed-array",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

func (k Kind) MarshalText() ([]byte, error) { return []byte(k.String()), nil }

// Shape is the inferred shape of a declaration. N and M are the array
// extents of FixedArray, FixedArray2D and ConstPointerToFixedArray;
// Constant names the extent of a SymbolicArray.
type Shape struct {
	Kind     Kind
	N        int
	M        int
	Constant string
}

func (s Shape) String() string {
	switch s.Kind {
	case FixedArray, ConstPointerToFixedArray:
		return fmt.Sprintf("%s(%d)", s.Kind, s.N)
	case FixedArray2D:
		return fmt.Sprintf("%s(%d,%d)", s.Kind, s.N, s.M)
	case SymbolicArray:
		return fmt.Sprintf("%s(%s)", s.Kind, s.Constant)
	}
	return s.Kind.String()
}

// Context selects which shapes are legal at a declaration site.
type Context int

const (
	// Member is a structure or union member.
	Member Context = iota
	// Param is a command or function pointer parameter.
	Param
	// Proto is a command prototype: Value or MutablePointer, no suffix.
	Proto
)

func (c Context) String() string {
	switch c {
	case Member:
		return "member"
	case Param:
		return "param"
	case Proto:
		return "proto"
	}
	return fmt.Sprintf("Context(%d)", int(c))
}

// Decl is a declaration reconstructed from a token run.
type Decl struct {
	Name          string
	BaseType      string
	Shape         Shape
	BitfieldWidth *int // set by a ":8" or ":24" member suffix
	Comment       *string
}
