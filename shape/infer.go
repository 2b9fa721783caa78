package shape

import (
	"io"

	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
)

// stateFn is one phase of shape inference. It consumes tokens and
// returns the next phase, or nil once the closing tag is consumed.
type stateFn func(*inferrer) (stateFn, error)

type inferrer struct {
	s      element.Stream
	end    string
	ctx    Context
	decl   Decl
	tokens []string
}

// Infer consumes the tokens of one declaration from s, up to and
// including the end tag named end, and returns the reconstructed Decl.
// The open tag must already have been consumed by the caller.
func Infer(s element.Stream, end string, ctx Context) (Decl, error) {
	in := &inferrer{s: s, end: end, ctx: ctx}
	var err error
	for state := qualifierPhase; state != nil; {
		if state, err = state(in); err != nil {
			return Decl{}, err
		}
	}
	return in.decl, nil
}

func (in *inferrer) next() (element.Token, error) {
	tok, err := in.s.Next()
	if err == io.EOF {
		return tok, in.fail("unexpected EOF")
	} else if err != nil {
		return tok, err
	}
	in.tokens = append(in.tokens, tok.String())
	return tok, nil
}

func (in *inferrer) fail(msg string) error {
	return errors.WithStack(regerr.UnrecognizedShape(append([]string(nil), in.tokens...),
		regerr.WithRecordKind(in.ctx.String()), regerr.WithMessage(msg)))
}

// textElement consumes the text content and close tag of the attribute-free
// element name, whose start tag was the last token read.
func (in *inferrer) textElement(name string) (string, error) {
	tok, err := in.next()
	if err != nil {
		return "", err
	}
	if tok.Kind != element.KindText {
		return "", in.fail("want <" + name + "> text")
	}
	text := tok.Text
	if tok, err = in.next(); err != nil {
		return "", err
	} else if !tok.IsEnd(name) {
		return "", in.fail("want </" + name + ">")
	}
	return text, nil
}

func isPlainStart(tok element.Token, name string) bool {
	return tok.IsStart(name) && tok.Attrs == ""
}

func qualifierPhase(in *inferrer) (stateFn, error) {
	tok, err := in.next()
	if err != nil {
		return nil, err
	}
	switch {
	case tok.IsText("const"), tok.IsText("const struct"):
		in.decl.Shape.Kind = ConstPointer
		return qualifierPhase, nil
	case tok.IsText("struct"):
		return qualifierPhase, nil
	case isPlainStart(tok, "type"):
		if in.decl.BaseType, err = in.textElement("type"); err != nil {
			return nil, err
		}
		return declaratorPhase, nil
	}
	return nil, in.fail("in qualifiers")
}

func declaratorPhase(in *inferrer) (stateFn, error) {
	tok, err := in.next()
	if err != nil {
		return nil, err
	}
	if isPlainStart(tok, "name") {
		return in.name()
	}
	k := &in.decl.Shape.Kind
	switch {
	case tok.IsText("*") && *k == Value:
		*k = MutablePointer
	case tok.IsText("*") && *k == ConstPointer:
	case tok.IsText("**") && *k == Value:
		*k = MutablePointerToMutablePointer
	case (tok.IsText("* const*") || tok.IsText("* const *")) && *k == ConstPointer:
		*k = ConstPointerToConstPointer
	default:
		return nil, in.fail("in declarator")
	}
	return namePhase, nil
}

func namePhase(in *inferrer) (stateFn, error) {
	tok, err := in.next()
	if err != nil {
		return nil, err
	}
	if !isPlainStart(tok, "name") {
		return nil, in.fail("want <name>")
	}
	return in.name()
}

func (in *inferrer) name() (stateFn, error) {
	var err error
	if in.decl.Name, err = in.textElement("name"); err != nil {
		return nil, err
	}
	if in.ctx == Proto {
		if k := in.decl.Shape.Kind; k != Value && k != MutablePointer {
			return nil, in.fail("prototype must return a value or a pointer")
		}
		return protoEndPhase, nil
	}
	return suffixPhase, nil
}

func protoEndPhase(in *inferrer) (stateFn, error) {
	tok, err := in.next()
	if err != nil {
		return nil, err
	}
	if !tok.IsEnd(in.end) {
		return nil, in.fail("want </" + in.end + ">")
	}
	return nil, nil
}

var arrayExtents = map[string]int{"[2]": 2, "[3]": 3, "[4]": 4}

var bitfieldWidths = map[string]int{":8": 8, ":24": 24}

func suffixPhase(in *inferrer) (stateFn, error) {
	tok, err := in.next()
	if err != nil {
		return nil, err
	}
	s := &in.decl.Shape
	switch {
	case tok.IsEnd(in.end):
		return nil, nil

	case tok.IsText("[") && s.Kind == Value:
		return symbolicArrayPhase, nil

	case tok.Kind == element.KindText && arrayExtents[tok.Text] > 0:
		n := arrayExtents[tok.Text]
		switch {
		case s.Kind == Value:
			*s = Shape{Kind: FixedArray, N: n}
		case s.Kind == ConstPointer && in.ctx == Param:
			*s = Shape{Kind: ConstPointerToFixedArray, N: n}
		default:
			return nil, in.fail("array extent on " + s.Kind.String())
		}

	case tok.IsText("[3][4]") && s.Kind == Value:
		*s = Shape{Kind: FixedArray2D, N: 3, M: 4}

	case tok.Kind == element.KindText && bitfieldWidths[tok.Text] > 0:
		if in.ctx != Member || in.decl.BitfieldWidth != nil {
			return nil, in.fail("unexpected bitfield width")
		}
		w := bitfieldWidths[tok.Text]
		in.decl.BitfieldWidth = &w

	case isPlainStart(tok, "comment") && in.decl.Comment == nil:
		text, err := in.textElement("comment")
		if err != nil {
			return nil, err
		}
		in.decl.Comment = &text

	default:
		return nil, in.fail("in suffix")
	}
	return suffixPhase, nil
}

// symbolicArrayPhase consumes <enum>C</enum>] after an opening "[".
func symbolicArrayPhase(in *inferrer) (stateFn, error) {
	tok, err := in.next()
	if err != nil {
		return nil, err
	}
	if !isPlainStart(tok, "enum") {
		return nil, in.fail("want <enum> array extent")
	}
	constant, err := in.textElement("enum")
	if err != nil {
		return nil, err
	}
	if tok, err = in.next(); err != nil {
		return nil, err
	} else if !tok.IsText("]") {
		return nil, in.fail("want ]")
	}
	in.decl.Shape = Shape{Kind: SymbolicArray, Constant: constant}
	return suffixPhase, nil
}
