package markup

import (
	"bufio"
	"bytes"
	"io"
	"strings"

	"github.com/andaru/vkregistry/element"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

// Reader is a tokenizer producing an element.Stream from raw markup.
//
// Reader applies the preprocessing the registry parser expects of its
// input: markup comments, processing instructions and document type
// declarations are dropped, character data is trimmed of surrounding
// whitespace and dropped when empty, and entity references in character
// data are decoded. Attribute text is passed through raw.
//
// Reader is not safe for concurrent use.
type Reader struct {
	scanner *bufio.Scanner
	maxSize int
	offset  int
}

const (
	// MinTokenSize is the floor for WithMaxTokenSize.
	MinTokenSize = 64

	defaultMaxTokenSize = 1 << 20
	initialBufferSize   = 4096
)

// Option is a constructor option function for the Reader type.
type Option func(*Reader)

// WithMaxTokenSize sets the largest single token (tag or character
// data run) the Reader will accept. Values below MinTokenSize are
// raised to MinTokenSize.
func WithMaxTokenSize(size int) Option {
	return func(r *Reader) {
		if size < MinTokenSize {
			size = MinTokenSize
		}
		r.maxSize = size
	}
}

// NewReader returns a Reader tokenizing src.
func NewReader(src io.Reader, opts ...Option) *Reader {
	if src == nil {
		panic("NewReader: src must be non-nil")
	}
	r := &Reader{maxSize: defaultMaxTokenSize}
	for _, opt := range opts {
		opt(r)
	}
	initial := initialBufferSize
	if initial > r.maxSize {
		initial = r.maxSize
	}
	r.scanner = bufio.NewScanner(src)
	r.scanner.Buffer(make([]byte, initial), r.maxSize)
	r.scanner.Split(SplitMarkup())
	return r
}

// Next returns the next significant token, implementing element.Stream.
func (r *Reader) Next() (element.Token, error) {
	for r.scanner.Scan() {
		raw := r.scanner.Bytes()
		tok, keep, err := classify(raw)
		if err != nil {
			if se, ok := err.(ErrSyntax); ok {
				se.Offset = r.offset
				err = se
			}
			return element.Token{}, errors.WithStack(err)
		}
		r.offset += len(raw)
		if keep {
			return tok, nil
		}
	}
	if err := r.scanner.Err(); err != nil {
		return element.Token{}, errors.WithStack(err)
	}
	return element.Token{}, io.EOF
}

// classify converts one raw token into an element token. keep is false
// for tokens removed by preprocessing.
func classify(raw []byte) (tok element.Token, keep bool, err error) {
	switch {
	case len(raw) == 0:
		return
	case raw[0] != '<':
		text := strings.TrimSpace(string(raw))
		if text == "" {
			return
		}
		return element.Text(unescape(text)), true, nil
	case bytes.HasPrefix(raw, tokenCommentOpen), bytes.HasPrefix(raw, tokenPIOpen):
		return
	case bytes.HasPrefix(raw, tokenCDATAOpen):
		text := strings.TrimSpace(string(raw[len(tokenCDATAOpen) : len(raw)-len(tokenCDATAClose)]))
		if text == "" {
			return
		}
		return element.Text(text), true, nil
	case bytes.HasPrefix(raw, []byte("<!")):
		// document type declaration
		return
	case bytes.HasPrefix(raw, []byte("</")):
		name := strings.TrimSpace(string(raw[2 : len(raw)-1]))
		if !validName(name) {
			return tok, false, ErrSyntax{Message: "invalid end tag " + string(raw)}
		}
		return element.End(name), true, nil
	}

	inner := string(raw[1 : len(raw)-1])
	empty := strings.HasSuffix(inner, "/")
	if empty {
		inner = inner[:len(inner)-1]
	}
	name, attrs := inner, ""
	if idx := strings.IndexAny(inner, " \t\r\n"); idx > -1 {
		name, attrs = inner[:idx], strings.TrimSpace(inner[idx:])
	}
	if !validName(name) {
		return tok, false, ErrSyntax{Message: "invalid tag " + string(raw)}
	}
	if empty {
		return element.Empty(name, attrs), true, nil
	}
	return element.Start(name, attrs), true, nil
}

func validName(name string) bool {
	return name != "" && !strings.ContainsAny(name, " \t\r\n<>/=\"'")
}

func unescape(s string) string {
	if strings.IndexByte(s, '&') < 0 {
		return s
	}
	return html.UnescapeString(s)
}
