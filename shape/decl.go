package shape

import (
	"strconv"
	"strings"
)

// TypeString renders the declared type of d in C syntax, without the
// name or any array suffix.
func (d Decl) TypeString() string {
	var b strings.Builder
	switch d.Shape.Kind {
	case ConstPointer, ConstPointerToConstPointer, ConstPointerToFixedArray:
		b.WriteString("const ")
	}
	b.WriteString(d.BaseType)
	switch d.Shape.Kind {
	case ConstPointer, MutablePointer:
		b.WriteString("*")
	case ConstPointerToConstPointer:
		b.WriteString("* const*")
	case MutablePointerToMutablePointer:
		b.WriteString("**")
	}
	return b.String()
}

// String renders d as a C declaration.
func (d Decl) String() string {
	var b strings.Builder
	b.WriteString(d.TypeString())
	if d.Name != "" {
		b.WriteString(" ")
		b.WriteString(d.Name)
	}
	switch d.Shape.Kind {
	case FixedArray, ConstPointerToFixedArray:
		b.WriteString("[" + strconv.Itoa(d.Shape.N) + "]")
	case FixedArray2D:
		b.WriteString("[" + strconv.Itoa(d.Shape.N) + "][" + strconv.Itoa(d.Shape.M) + "]")
	case SymbolicArray:
		b.WriteString("[" + d.Shape.Constant + "]")
	}
	if d.BitfieldWidth != nil {
		b.WriteString(":" + strconv.Itoa(*d.BitfieldWidth))
	}
	return b.String()
}
