package element

import (
	"io"
	"strconv"
)

// Kind is the kind of markup event carried by a Token.
type Kind int

const (
	// KindStart is an opening tag, <name attrs>
	KindStart Kind = iota
	// KindEnd is a closing tag, </name>
	KindEnd
	// KindEmpty is a self-closing tag, <name attrs/>
	KindEmpty
	// KindText is character data between tags
	KindText
)

func (k Kind) String() string {
	switch k {
	case KindStart:
		return "start"
	case KindEnd:
		return "end"
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Token is a single event of an element stream.
//
// Attrs holds the raw, undecoded attribute text of start and empty
// tags (everything between the tag name and the closing bracket).
type Token struct {
	Kind  Kind
	Name  string
	Attrs string
	Text  string
}

// Start returns a start tag token.
func Start(name, attrs string) Token { return Token{Kind: KindStart, Name: name, Attrs: attrs} }

// End returns an end tag token.
func End(name string) Token { return Token{Kind: KindEnd, Name: name} }

// Empty returns a self-closing tag token.
func Empty(name, attrs string) Token { return Token{Kind: KindEmpty, Name: name, Attrs: attrs} }

// Text returns a character data token.
func Text(text string) Token { return Token{Kind: KindText, Text: text} }

// IsStart reports whether t opens element name.
func (t Token) IsStart(name string) bool { return t.Kind == KindStart && t.Name == name }

// IsEnd reports whether t closes element name.
func (t Token) IsEnd(name string) bool { return t.Kind == KindEnd && t.Name == name }

// IsEmpty reports whether t is a self-closing name element.
func (t Token) IsEmpty(name string) bool { return t.Kind == KindEmpty && t.Name == name }

// Is reports whether t opens a name element, in start or self-closing
// form.
func (t Token) Is(name string) bool { return t.IsStart(name) || t.IsEmpty(name) }

// IsText reports whether t is character data equal to text.
func (t Token) IsText(text string) bool { return t.Kind == KindText && t.Text == text }

// String renders the token roughly as it appeared in the input.
func (t Token) String() string {
	switch t.Kind {
	case KindStart:
		return "<" + t.Name + attrSuffix(t.Attrs) + ">"
	case KindEnd:
		return "</" + t.Name + ">"
	case KindEmpty:
		return "<" + t.Name + attrSuffix(t.Attrs) + "/>"
	case KindText:
		return strconv.Quote(t.Text)
	}
	return t.Kind.String()
}

func attrSuffix(attrs string) string {
	if attrs == "" {
		return ""
	}
	return " " + attrs
}

// Stream is a pull-based source of tokens. Next returns io.EOF once the
// stream is exhausted.
type Stream interface {
	Next() (Token, error)
}

// Slice is a Stream over an in-memory token list.
type Slice struct {
	tokens []Token
	pos    int
}

// NewSlice returns a Stream yielding tokens in order.
func NewSlice(tokens ...Token) *Slice { return &Slice{tokens: tokens} }

// Next returns the next token, implementing Stream.
func (s *Slice) Next() (Token, error) {
	if s.pos >= len(s.tokens) {
		return Token{}, io.EOF
	}
	t := s.tokens[s.pos]
	s.pos++
	return t, nil
}

// ReadAll drains s, returning every token up to io.EOF.
func ReadAll(s Stream) (tokens []Token, err error) {
	for {
		var t Token
		if t, err = s.Next(); err != nil {
			if err == io.EOF {
				err = nil
			}
			return tokens, err
		}
		tokens = append(tokens, t)
	}
}
