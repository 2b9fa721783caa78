package registry

import (
	"strings"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/regerr"
	"github.com/andaru/vkregistry/shape"
	"github.com/pkg/errors"
)

const (
	funcPointerPrefix = "typedef "
	funcPointerCall   = "(VKAPI_PTR *"
)

// funcPointerBody parses a function pointer typedef in either of its
// two forms. The legacy form is C text around <name> and <type> tags:
//
//	typedef R (VKAPI_PTR *<name>PFN_x</name>)(<type>T</type>* p, ...);
//
// The structured form carries a <proto> and <param> children with the
// same grammar as a command. Legacy declarations are rewritten into
// structured token runs so that both forms share one shape grammar.
func (p *parser) funcPointerBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, funcPointers, tok, attrs)
	if err != nil {
		return err
	}
	first, err := p.Next()
	if err != nil {
		return err
	}
	switch {
	case first.IsStart("proto"):
		err = p.funcPointerStructured(&rec, first)
	case first.Kind == element.KindText:
		err = p.funcPointerLegacy(&rec, first.Text)
	default:
		err = p.unexpected(first, "typedef text or <proto>")
	}
	if err != nil {
		return err
	}
	rec.Name = rec.Return.Name
	rec.Text = funcPointerText(rec.Return, rec.Params)
	p.addType(funcPointers.Kind(), &rec)
	return nil
}

func funcPointerText(ret shape.Decl, params []shape.Decl) string {
	args := "void"
	if len(params) > 0 {
		decls := make([]string, len(params))
		for i, d := range params {
			decls[i] = d.String()
		}
		args = strings.Join(decls, ", ")
	}
	return "typedef " + ret.TypeString() + " (VKAPI_PTR *" + ret.Name + ")(" + args + ");"
}

func (p *parser) funcPointerStructured(rec *FuncPointer, proto element.Token) error {
	if err := p.noAttrs(proto); err != nil {
		return err
	}
	var err error
	if rec.Return, err = shape.Infer(p, "proto", shape.Proto); err != nil {
		return regerr.Annotate(err, regerr.WithPath(p.pathString()))
	}
	// the remaining children of the enclosing <type> are parameters
	return p.children(element.Start("type", ""), func(child element.Token) error {
		if !child.IsStart("param") {
			return p.unexpected(child, "<param>")
		}
		if err := p.noAttrs(child); err != nil {
			return err
		}
		d, err := shape.Infer(p, "param", shape.Param)
		if err != nil {
			return regerr.Annotate(err, regerr.WithPath(p.pathString()))
		}
		rec.Params = append(rec.Params, d)
		p.emit("param", d.Name, true)
		return nil
	})
}

// funcPointerLegacy parses the C text form, given the leading text.
func (p *parser) funcPointerLegacy(rec *FuncPointer, lead string) error {
	lead = normalizeSpace(lead)
	if !strings.HasPrefix(lead, funcPointerPrefix) || !strings.HasSuffix(lead, funcPointerCall) {
		return p.legacyShape([]string{lead}, "want typedef R (VKAPI_PTR *")
	}
	ret := strings.TrimSpace(lead[len(funcPointerPrefix) : len(lead)-len(funcPointerCall)])
	name, err := p.textElement("name")
	if err != nil {
		return err
	}
	qual, base, decl := splitCType(ret)
	if rec.Return, err = inferSynthetic(qual, base, decl, name, "proto", shape.Proto); err != nil {
		return regerr.Annotate(err, regerr.WithPath(p.pathString()))
	}

	open, err := p.expectText(")(")
	if err != nil {
		return err
	}
	open = normalizeSpace(open)
	if !strings.HasPrefix(open, ")(") {
		return p.legacyShape([]string{open}, "want )(")
	}
	qual = strings.TrimSpace(open[2:])
	if qual == "void);" {
		return p.expectEnd("type")
	}
	for {
		tok, err := p.Next()
		if err != nil {
			return err
		}
		if !tok.IsStart("type") {
			return p.unexpected(tok, "<type>")
		}
		base, err := p.text(tok)
		if err != nil {
			return err
		}
		tail, err := p.expectText("parameter name")
		if err != nil {
			return err
		}
		tail = normalizeSpace(tail)
		last := false
		var next string
		if i := strings.IndexByte(tail, ','); i >= 0 {
			tail, next = strings.TrimSpace(tail[:i]), strings.TrimSpace(tail[i+1:])
		} else if strings.HasSuffix(tail, ");") {
			tail, last = strings.TrimSpace(strings.TrimSuffix(tail, ");")), true
		} else {
			return p.legacyShape([]string{qual, base, tail}, "want , or );")
		}
		decl, name := splitDeclarator(tail)
		d, err := inferSynthetic(qual, base, decl, name, "param", shape.Param)
		if err != nil {
			return regerr.Annotate(err, regerr.WithPath(p.pathString()))
		}
		rec.Params = append(rec.Params, d)
		p.emit("param", d.Name, true)
		if last {
			return p.expectEnd("type")
		}
		qual = next
	}
}

func (p *parser) legacyShape(tokens []string, msg string) error {
	return errors.WithStack(regerr.UnrecognizedShape(tokens,
		regerr.WithRecordKind(funcPointers.Kind()), regerr.WithMessage(msg), regerr.WithPath(p.pathString())))
}

// inferSynthetic rewrites a C declaration into the token run of a
// structured <end> element and infers its shape.
func inferSynthetic(qual, base, decl, name, end string, ctx shape.Context) (shape.Decl, error) {
	var run []element.Token
	if qual != "" {
		run = append(run, element.Text(qual))
	}
	run = append(run, element.Start("type", ""), element.Text(base), element.End("type"))
	if decl != "" {
		run = append(run, element.Text(decl))
	}
	run = append(run, element.Start("name", ""), element.Text(name), element.End("name"), element.End(end))
	return shape.Infer(element.NewSlice(run...), end, ctx)
}

// splitCType splits a C type such as "const char*" into its qualifier,
// base type name and pointer declarator.
func splitCType(s string) (qual, base, decl string) {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '*'); i >= 0 {
		s, decl = strings.TrimSpace(s[:i]), strings.TrimSpace(s[i:])
	}
	if i := strings.LastIndexByte(s, ' '); i >= 0 {
		return s[:i], s[i+1:], decl
	}
	return "", s, decl
}

// splitDeclarator splits the text after a parameter's type, such as
// "* const* ppNames", into its declarator and name.
func splitDeclarator(s string) (decl, name string) {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return "", ""
	}
	name = fields[len(fields)-1]
	decl = strings.Join(fields[:len(fields)-1], " ")
	if trimmed := strings.TrimLeft(name, "*"); trimmed != name {
		decl = strings.TrimSpace(decl + " " + name[:len(name)-len(trimmed)])
		name = trimmed
	}
	return decl, name
}

// normalizeSpace collapses runs of white space to one space.
func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
