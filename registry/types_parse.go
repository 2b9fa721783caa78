package registry

import (
	"strings"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/regerr"
	"github.com/andaru/vkregistry/shape"
	"github.com/pkg/errors"
)

func (p *parser) types(tok element.Token) error {
	if _, err := build(p, containers, tok); err != nil {
		return err
	}
	return p.children(tok, func(child element.Token) error {
		switch {
		case child.IsStart("comment"):
			_, err := p.comment(child)
			return err
		case child.IsStart("type"):
			return p.typeStart(child)
		case child.IsEmpty("type"):
			return p.typeEmpty(child)
		}
		return p.unexpected(child, "<type> or <comment>")
	})
}

func (p *parser) addType(kind string, t TypeEntry) {
	p.reg.Types = append(p.reg.Types, t)
	p.emit(kind, t.TypeName(), false)
}

func (p *parser) typeStart(tok element.Token) error {
	attrs, err := p.decode(tok)
	if err != nil {
		return err
	}
	switch category, _ := attrs.Get("category"); category {
	case "include":
		return p.includeBody(tok, attrs)
	case "define":
		return p.defineBody(tok, attrs)
	case "basetype":
		return p.baseTypeBody(tok, attrs)
	case "bitmask":
		return p.bitmaskBody(tok, attrs)
	case "handle":
		return p.handleBody(tok, attrs)
	case "funcpointer":
		return p.funcPointerBody(tok, attrs)
	case "struct":
		return p.structBody(tok, attrs)
	case "union":
		return p.unionBody(tok, attrs)
	}
	return p.unexpected(tok, "type category include, define, basetype, bitmask, handle, funcpointer, struct or union")
}

func (p *parser) typeEmpty(tok element.Token) error {
	attrs, err := p.decode(tok)
	if err != nil {
		return err
	}
	category, categorized := attrs.Get("category")
	switch {
	case !categorized:
		rec, err := buildFrom(p, externTypes, tok, attrs)
		if err != nil {
			return err
		}
		p.addType(externTypes.Kind(), &rec)
		return nil

	case category == "include":
		rec, err := buildFrom(p, includes, tok, attrs)
		if err != nil {
			return err
		}
		p.addType(includes.Kind(), &rec)
		return nil

	case attrs.Has("alias") && aliasCategories[category]:
		rec, err := buildFrom(p, typeAliases, tok, attrs)
		if err != nil {
			return err
		}
		p.addType(typeAliases.Kind(), &rec)
		return nil

	case category == "bitmask",
		category == "enum" && isFlagsName(attrs.Value("name")):
		rec, err := buildFrom(p, bitmasks, tok, attrs)
		if err != nil {
			return err
		}
		if err := p.requireName(rec.Name, bitmasks.Kind(), tok); err != nil {
			return err
		}
		p.addType(bitmasks.Kind(), &rec)
		return nil

	case category == "enum":
		rec, err := buildFrom(p, enumerations, tok, attrs)
		if err != nil {
			return err
		}
		p.addType(enumerations.Kind(), &rec)
		return nil
	}
	return p.unexpected(tok, "empty type category include, bitmask, enum, or an alias")
}

// aliasCategories are the categories whose empty form with an alias
// attribute declares a TypeAlias.
var aliasCategories = map[string]bool{
	"bitmask": true,
	"enum":    true,
	"handle":  true,
	"struct":  true,
	"union":   true,
}

func isFlagsName(name string) bool {
	return strings.Contains(name, "Flags") || strings.Contains(name, "FlagBits")
}

func (p *parser) requireName(name, recordKind string, tok element.Token) error {
	if name != "" {
		return nil
	}
	return errors.WithStack(regerr.MissingRequiredAttribute("name", recordKind,
		regerr.WithRaw(tok.Attrs), regerr.WithPath(p.pathString())))
}

// joinC appends a C source fragment to text, separating tokens with a
// single space except around parentheses and punctuation.
func joinC(text, piece string) string {
	switch {
	case piece == "":
		return text
	case text == "",
		strings.HasSuffix(text, "("),
		strings.ContainsAny(piece[:1], "(),;[]"):
		return text + piece
	}
	return text + " " + piece
}

func (p *parser) includeBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, includes, tok, attrs)
	if err != nil {
		return err
	}
	err = p.children(tok, func(child element.Token) error {
		if child.Kind != element.KindText {
			return p.unexpected(child, "include text")
		}
		text := child.Text
		if rec.Text != nil {
			text = *rec.Text + "\n" + text
		}
		rec.Text = &text
		return nil
	})
	if err != nil {
		return err
	}
	p.addType(includes.Kind(), &rec)
	return nil
}

// cText accumulates the C text of a define or basetype body, returning
// the text and the <name> found in it.
func (p *parser) cText(tok element.Token) (text, name string, err error) {
	err = p.children(tok, func(child element.Token) error {
		switch {
		case child.Kind == element.KindText:
			text = joinC(text, child.Text)
		case child.IsStart("name"):
			s, err := p.text(child)
			if err != nil {
				return err
			}
			name = s
			text = joinC(text, s)
		case child.IsStart("type"):
			s, err := p.text(child)
			if err != nil {
				return err
			}
			text = joinC(text, s)
		default:
			return p.unexpected(child, "C text, <name> or <type>")
		}
		return nil
	})
	return strings.ReplaceAll(text, "\r\n", "\n"), name, err
}

func (p *parser) defineBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, defines, tok, attrs)
	if err != nil {
		return err
	}
	text, name, err := p.cText(tok)
	if err != nil {
		return err
	}
	rec.Text = text
	if name != "" {
		rec.Name = name
	}
	if err := p.requireName(rec.Name, defines.Kind(), tok); err != nil {
		return err
	}
	p.addType(defines.Kind(), &rec)
	return nil
}

func (p *parser) baseTypeBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, baseTypes, tok, attrs)
	if err != nil {
		return err
	}
	if rec.Text, rec.Name, err = p.cText(tok); err != nil {
		return err
	}
	if err := p.requireName(rec.Name, baseTypes.Kind(), tok); err != nil {
		return err
	}
	p.addType(baseTypes.Kind(), &rec)
	return nil
}

// bitmaskBody parses typedef <type>VkFlags</type> <name>N</name>;
func (p *parser) bitmaskBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, bitmasks, tok, attrs)
	if err != nil {
		return err
	}
	if err := p.expectTextIs("typedef"); err != nil {
		return err
	}
	base, err := p.textElement("type")
	if err != nil {
		return err
	}
	switch base {
	case "VkFlags":
	case "VkFlags64":
		rec.Flags64 = true
	default:
		return errors.WithStack(regerr.UnexpectedElement(base, "VkFlags or VkFlags64",
			regerr.WithPath(p.pathString())))
	}
	if rec.Name, err = p.textElement("name"); err != nil {
		return err
	}
	if err := p.expectTextIs(";"); err != nil {
		return err
	}
	if err := p.expectEnd("type"); err != nil {
		return err
	}
	p.addType(bitmasks.Kind(), &rec)
	return nil
}

// handleBody parses <type>VK_DEFINE_HANDLE</type>(<name>N</name>)
func (p *parser) handleBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, handles, tok, attrs)
	if err != nil {
		return err
	}
	macro, err := p.textElement("type")
	if err != nil {
		return err
	}
	switch macro {
	case "VK_DEFINE_HANDLE":
	case "VK_DEFINE_NON_DISPATCHABLE_HANDLE":
		rec.NonDispatchable = true
	default:
		return errors.WithStack(regerr.UnexpectedElement(macro, "VK_DEFINE_HANDLE or VK_DEFINE_NON_DISPATCHABLE_HANDLE",
			regerr.WithPath(p.pathString())))
	}
	if err := p.expectTextIs("("); err != nil {
		return err
	}
	if rec.Name, err = p.textElement("name"); err != nil {
		return err
	}
	if err := p.expectTextIs(")"); err != nil {
		return err
	}
	if err := p.expectEnd("type"); err != nil {
		return err
	}
	p.addType(handles.Kind(), &rec)
	return nil
}

// member parses one <member> opened by tok.
func (p *parser) member(tok element.Token) (Member, error) {
	rec, err := build(p, members, tok)
	if err != nil {
		return rec, err
	}
	if rec.Decl, err = shape.Infer(p, "member", shape.Member); err != nil {
		return rec, regerr.Annotate(err, regerr.WithPath(p.pathString()), regerr.WithRaw(tok.Attrs))
	}
	p.emit(members.Kind(), rec.Name, true)
	return rec, nil
}

// aggregateBody parses the <member> and <comment> children of a struct
// or union.
func (p *parser) aggregateBody(tok element.Token, ms *[]Member, comments *[]string) error {
	return p.children(tok, func(child element.Token) error {
		switch {
		case child.IsStart("member"):
			m, err := p.member(child)
			if err != nil {
				return err
			}
			*ms = append(*ms, m)
		case child.IsStart("comment"):
			text, err := p.comment(child)
			if err != nil {
				return err
			}
			*comments = append(*comments, text)
		default:
			return p.unexpected(child, "<member> or <comment>")
		}
		return nil
	})
}

func (p *parser) structBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, structures, tok, attrs)
	if err != nil {
		return err
	}
	if err := p.aggregateBody(tok, &rec.Members, &rec.Comments); err != nil {
		return err
	}
	p.addType(structures.Kind(), &rec)
	return nil
}

func (p *parser) unionBody(tok element.Token, attrs attr.List) error {
	rec, err := buildFrom(p, unions, tok, attrs)
	if err != nil {
		return err
	}
	if err := p.aggregateBody(tok, &rec.Members, &rec.Comments); err != nil {
		return err
	}
	p.addType(unions.Kind(), &rec)
	return nil
}
