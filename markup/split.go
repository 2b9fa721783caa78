package markup

import (
	"bufio"
	"bytes"
	"fmt"
)

// ErrSyntax reports markup which could not be split into tokens.
type ErrSyntax struct {
	Message string
	Offset  int
}

func (e ErrSyntax) Error() string {
	msg := "markup syntax error"
	if e.Message != "" {
		msg = msg + ": " + e.Message
	}
	if e.Offset < 1 {
		return msg
	}
	return fmt.Sprintf("%s at input offset %d", msg, e.Offset)
}

var (
	tokenCommentOpen  = []byte("<!--")
	tokenCommentClose = []byte("-->")
	tokenCDATAOpen    = []byte("<![CDATA[")
	tokenCDATAClose   = []byte("]]>")
	tokenPIOpen       = []byte("<?")
	tokenPIClose      = []byte("?>")
)

// SplitMarkup returns a bufio.SplitFunc which splits a markup document
// into raw tokens: each tag, comment, processing instruction or CDATA
// section is one token, as is each run of character data between them.
//
// Tokens are returned verbatim; no trimming or decoding is performed.
// The returned function tracks its input offset and must not be shared
// between scanners.
func SplitMarkup() bufio.SplitFunc {
	var offset int
	return func(b []byte, atEOF bool) (advance int, token []byte, err error) {
		if atEOF && len(b) == 0 {
			return
		}
		defer func() { offset += advance }()

		if b[0] != '<' {
			// character data runs up to the next tag
			if idx := bytes.IndexByte(b, '<'); idx > -1 {
				return idx, b[:idx], nil
			}
			if atEOF {
				return len(b), b, nil
			}
			return 0, nil, nil
		}

		var end int
		switch {
		case bytes.HasPrefix(b, tokenCommentOpen):
			end = closedBy(b, len(tokenCommentOpen), tokenCommentClose)
		case bytes.HasPrefix(b, tokenCDATAOpen):
			end = closedBy(b, len(tokenCDATAOpen), tokenCDATAClose)
		case bytes.HasPrefix(b, tokenPIOpen):
			end = closedBy(b, len(tokenPIOpen), tokenPIClose)
		default:
			end = tagEnd(b)
		}
		if end < 0 {
			if atEOF {
				err = ErrSyntax{Message: "unterminated markup", Offset: offset}
			}
			return 0, nil, err
		}
		return end, b[:end], nil
	}
}

// closedBy returns the offset just past the first occurrence of
// terminator at or after from, or -1.
func closedBy(b []byte, from int, terminator []byte) int {
	if idx := bytes.Index(b[from:], terminator); idx > -1 {
		return from + idx + len(terminator)
	}
	return -1
}

// tagEnd returns the offset just past the '>' closing the tag at the
// start of b, ignoring any '>' inside quoted attribute values, or -1.
func tagEnd(b []byte) int {
	var quote byte
	for i := 1; i < len(b); i++ {
		switch c := b[i]; {
		case quote != 0:
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == '>':
			return i + 1
		}
	}
	return -1
}
