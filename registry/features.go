package registry

import (
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
)

// Feature is a core API version and the interfaces it requires,
// removes or deprecates.
type Feature struct {
	Name         string
	API          string
	Number       string
	Comment      *string
	Depends      *string
	APIType      *string
	Requirements []Requirement
	Removals     []Change
	Deprecations []Change
}

// Change is a <remove> or <deprecate> block naming interfaces defined
// elsewhere.
type Change struct {
	Comment         *string
	API             *string
	ReasonLink      *string
	ExplanationLink *string
	Types           []string
	Enums           []string
	Commands        []string
}

var features = record.New("feature",
	record.Text("name", func(r *Feature) *string { return &r.Name }),
	record.Text("api", func(r *Feature) *string { return &r.API }),
	record.Text("number", func(r *Feature) *string { return &r.Number }),
	record.OptText("comment", func(r *Feature) **string { return &r.Comment }),
	record.OptText("depends", func(r *Feature) **string { return &r.Depends }),
	record.OptText("apitype", func(r *Feature) **string { return &r.APIType }),
).Require("name", "api", "number")

var changes = record.New("change",
	record.OptText("comment", func(r *Change) **string { return &r.Comment }),
	record.OptText("api", func(r *Change) **string { return &r.API }),
	record.OptText("reasonlink", func(r *Change) **string { return &r.ReasonLink }),
	record.OptText("explanationlink", func(r *Change) **string { return &r.ExplanationLink }),
)

// reference is a name-only child of a change block.
type reference struct {
	Name string
}

var references = record.New("reference",
	record.Text("name", func(r *reference) *string { return &r.Name }),
).Require("name")

func (p *parser) feature(tok element.Token) error {
	rec, err := build(p, features, tok)
	if err != nil {
		return err
	}
	rec.Requirements = []Requirement{}
	err = p.children(tok, func(child element.Token) error {
		return p.featureChild(child, &rec.Requirements, &rec.Removals, &rec.Deprecations)
	})
	if err != nil {
		return err
	}
	p.reg.Features = append(p.reg.Features, rec)
	p.emit(features.Kind(), rec.Name, false)
	return nil
}

// featureChild parses a <require>, <remove> or <deprecate> child of a
// feature or extension.
func (p *parser) featureChild(tok element.Token, reqs *[]Requirement, removals, deprecations *[]Change) error {
	switch {
	case tok.Is("require"):
		r, err := p.requirement(tok)
		if err != nil {
			return err
		}
		*reqs = append(*reqs, r)
		p.emit(requirements.Kind(), deref(r.Comment), true)
		return nil
	case tok.Is("remove"):
		c, err := p.change(tok)
		if err != nil {
			return err
		}
		*removals = append(*removals, c)
		p.emit("remove", deref(c.Comment), true)
		return nil
	case tok.Is("deprecate"):
		c, err := p.change(tok)
		if err != nil {
			return err
		}
		*deprecations = append(*deprecations, c)
		p.emit("deprecate", deref(c.Comment), true)
		return nil
	}
	return p.unexpected(tok, "<require>, <remove> or <deprecate>")
}

func (p *parser) change(tok element.Token) (Change, error) {
	rec, err := build(p, changes, tok)
	if err != nil {
		return rec, err
	}
	err = p.children(tok, func(child element.Token) error {
		var names *[]string
		switch {
		case child.IsEmpty("type"):
			names = &rec.Types
		case child.IsEmpty("enum"):
			names = &rec.Enums
		case child.IsEmpty("command"):
			names = &rec.Commands
		case child.IsStart("comment"):
			_, err := p.comment(child)
			return err
		default:
			return p.unexpected(child, "<type/>, <enum/>, <command/> or <comment>")
		}
		ref, err := build(p, references, child)
		if err != nil {
			return err
		}
		*names = append(*names, ref.Name)
		return nil
	})
	return rec, err
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
