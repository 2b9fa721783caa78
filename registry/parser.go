package registry

import (
	"io"
	"strings"

	"github.com/andaru/vkregistry/attr"
	"github.com/andaru/vkregistry/element"
	"github.com/andaru/vkregistry/record"
	"github.com/andaru/vkregistry/regerr"
	"github.com/pkg/errors"
)

// parser is the single cursor over the element stream shared by every
// section parser. It tracks the path of open tags for error context.
type parser struct {
	s       element.Stream
	reg     *Registry
	sink    Sink
	section string
	path    []string
}

func newParser(s element.Stream, c *config) *parser {
	return &parser{s: s, reg: newRegistry(), sink: c.sink}
}

// Next returns the next token, implementing element.Stream so that
// nested grammars such as shape inference share the cursor. The end of
// the stream is reported as an UnexpectedElement error.
func (p *parser) Next() (element.Token, error) {
	tok, err := p.s.Next()
	if err == io.EOF {
		return tok, errors.WithStack(regerr.UnexpectedElement("EOF", "</"+p.top()+">",
			regerr.WithPath(p.pathString())))
	} else if err != nil {
		return tok, err
	}
	switch tok.Kind {
	case element.KindStart:
		p.path = append(p.path, tok.Name)
	case element.KindEnd:
		if p.top() == tok.Name {
			p.path = p.path[:len(p.path)-1]
		}
	}
	return tok, nil
}

func (p *parser) top() string {
	if len(p.path) == 0 {
		return ""
	}
	return p.path[len(p.path)-1]
}

func (p *parser) pathString() string { return "/" + strings.Join(p.path, "/") }

// parentPath is the path enclosing tok, which was the last token read.
func (p *parser) parentPath(tok element.Token) string {
	if tok.Kind == element.KindStart && len(p.path) > 0 {
		return "/" + strings.Join(p.path[:len(p.path)-1], "/")
	}
	return p.pathString()
}

func (p *parser) unexpected(tok element.Token, expected string) error {
	return errors.WithStack(regerr.UnexpectedElement(tok.String(), expected,
		regerr.WithPath(p.parentPath(tok))))
}

func (p *parser) emit(recordKind, name string, nested bool) {
	p.sink.Record(Event{Section: p.section, RecordKind: recordKind, Name: name, Nested: nested})
}

// children calls fn for each token inside the element opened by tok,
// stopping at its end tag. An empty element has no children.
func (p *parser) children(tok element.Token, fn func(element.Token) error) error {
	if tok.Kind == element.KindEmpty {
		return nil
	}
	for {
		child, err := p.Next()
		if err != nil {
			return err
		}
		if child.IsEnd(tok.Name) {
			return nil
		}
		if err := fn(child); err != nil {
			return err
		}
	}
}

func (p *parser) expectEnd(name string) error {
	tok, err := p.Next()
	if err != nil {
		return err
	}
	if !tok.IsEnd(name) {
		return p.unexpected(tok, "</"+name+">")
	}
	return nil
}

func (p *parser) expectText(what string) (string, error) {
	tok, err := p.Next()
	if err != nil {
		return "", err
	}
	if tok.Kind != element.KindText {
		return "", p.unexpected(tok, what)
	}
	return tok.Text, nil
}

func (p *parser) expectTextIs(text string) error {
	tok, err := p.Next()
	if err != nil {
		return err
	}
	if !tok.IsText(text) {
		return p.unexpected(tok, `"`+text+`"`)
	}
	return nil
}

// text consumes the text content and end tag of the element opened by
// tok, which must carry no attributes.
func (p *parser) text(tok element.Token) (string, error) {
	if err := p.noAttrs(tok); err != nil {
		return "", err
	}
	s, err := p.expectText("<" + tok.Name + "> text")
	if err != nil {
		return "", err
	}
	return s, p.expectEnd(tok.Name)
}

// textElement consumes <name>text</name> and returns the text.
func (p *parser) textElement(name string) (string, error) {
	tok, err := p.Next()
	if err != nil {
		return "", err
	}
	if !tok.IsStart(name) {
		return "", p.unexpected(tok, "<"+name+">")
	}
	return p.text(tok)
}

// comment consumes the body of a <comment> element opened by tok. An
// empty comment yields the empty string.
func (p *parser) comment(tok element.Token) (string, error) {
	if tok.Kind == element.KindEmpty {
		return "", nil
	}
	var text []string
	err := p.children(tok, func(child element.Token) error {
		if child.Kind != element.KindText {
			return p.unexpected(child, "comment text")
		}
		text = append(text, child.Text)
		return nil
	})
	return strings.Join(text, " "), err
}

// skip consumes the element opened by tok along with any nested markup.
func (p *parser) skip(tok element.Token) error {
	if tok.Kind == element.KindEmpty {
		return nil
	}
	for depth := 1; depth > 0; {
		child, err := p.Next()
		if err != nil {
			return err
		}
		switch child.Kind {
		case element.KindStart:
			depth++
		case element.KindEnd:
			depth--
		}
	}
	return nil
}

// decode decodes the attributes of tok, annotating failures with the
// current path.
func (p *parser) decode(tok element.Token) (attr.List, error) {
	attrs, err := attr.Decode(tok.Attrs)
	if err != nil {
		return nil, regerr.Annotate(err, regerr.WithPath(p.parentPath(tok)))
	}
	return attrs, nil
}

// build constructs a record of table's kind from the attributes of tok.
func build[T any](p *parser, table *record.Table[T], tok element.Token) (T, error) {
	var rec T
	attrs, err := p.decode(tok)
	if err != nil {
		return rec, err
	}
	return buildFrom(p, table, tok, attrs)
}

func buildFrom[T any](p *parser, table *record.Table[T], tok element.Token, attrs attr.List) (T, error) {
	rec, err := table.Build(attrs)
	if err != nil {
		return rec, regerr.Annotate(err, regerr.WithRaw(tok.Attrs), regerr.WithPath(p.parentPath(tok)))
	}
	return rec, nil
}

// container holds the attributes of section container tags, which may
// carry only a comment.
type container struct {
	Comment *string
}

var containers = record.New("container",
	record.OptText("comment", func(c *container) **string { return &c.Comment }),
)

// noAttrs fails unless tok carries no attributes.
func (p *parser) noAttrs(tok element.Token) error {
	attrs, err := p.decode(tok)
	if err != nil {
		return err
	}
	if len(attrs) > 0 {
		return errors.WithStack(regerr.UnexpectedAttribute(attrs[0].Key, tok.Name,
			regerr.WithRaw(tok.Attrs), regerr.WithPath(p.parentPath(tok))))
	}
	return nil
}
