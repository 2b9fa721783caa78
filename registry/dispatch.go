package registry

import (
	"io"

	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
)

// sectionFn parses one top-level section opened by tok, consuming
// tokens through its end tag.
type sectionFn func(p *parser, tok element.Token) error

// sections maps top-level tag names to their parsers. <feature> and
// <enums> may repeat; every other section normally appears once, but
// repeats are appended in document order.
var sections = map[string]sectionFn{
	"platforms":         (*parser).platforms,
	"tags":              (*parser).tags,
	"types":             (*parser).types,
	"enums":             (*parser).enums,
	"commands":          (*parser).commands,
	"feature":           (*parser).feature,
	"extensions":        (*parser).extensions,
	"formats":           (*parser).formats,
	"spirvextensions":   (*parser).spirvExtensions,
	"spirvcapabilities": (*parser).spirvCapabilities,
	"sync":              (*parser).sync,
}

const sectionNames = "platforms, tags, types, enums, commands, feature, extensions, formats, spirvextensions, spirvcapabilities, sync or comment"

func (p *parser) parse() error {
	tok, err := p.Next()
	if err != nil {
		return err
	}
	if !tok.IsStart("registry") {
		return p.unexpected(tok, "<registry>")
	}
	if err := p.noAttrs(tok); err != nil {
		return err
	}
	for {
		tok, err := p.Next()
		if err != nil {
			return err
		}
		switch {
		case tok.IsEnd("registry"):
			return p.finish()
		case tok.Is("comment"):
			if err := p.skip(tok); err != nil {
				return err
			}
			continue
		case tok.Kind == element.KindStart, tok.Kind == element.KindEmpty:
			fn, ok := sections[tok.Name]
			if !ok {
				break
			}
			p.section = tok.Name
			path := p.parentPath(tok) + "/" + tok.Name
			if err := fn(p, tok); err != nil {
				return regerr.Annotate(err, regerr.WithSection(p.section), regerr.WithPath(path))
			}
			p.section = ""
			continue
		}
		return p.unexpected(tok, sectionNames)
	}
}

// finish ensures nothing follows the closing registry tag.
func (p *parser) finish() error {
	tok, err := p.s.Next()
	if err == io.EOF {
		return nil
	} else if err != nil {
		return err
	}
	return errors.WithStack(regerr.UnexpectedElement(tok.String(), "EOF", regerr.WithPath("/")))
}
