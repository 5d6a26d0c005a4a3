package grammar

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokLBrack
	tokRBrack
	tokLParen
	tokRParen
	tokComma
)

func (k tokenKind) String() string {
	switch k {
	case tokEOF:
		return "end of input"
	case tokIdent:
		return "identifier"
	case tokLBrack:
		return "'['"
	case tokRBrack:
		return "']'"
	case tokLParen:
		return "'('"
	case tokRParen:
		return "')'"
	case tokComma:
		return "','"
	default:
		return fmt.Sprintf("token(%d)", int(k))
	}
}

type token struct {
	kind tokenKind
	text string
	rng  hcl.Range
}

// scanner turns source bytes into tokens. Positions follow hcl.Pos
// conventions: lines and columns start at 1, Byte at 0.
type scanner struct {
	filename string
	src      []byte
	pos      hcl.Pos
}

func newScanner(filename string, src []byte) *scanner {
	return &scanner{
		filename: filename,
		src:      src,
		pos:      hcl.InitialPos,
	}
}

func (s *scanner) peekByte() (byte, bool) {
	if s.pos.Byte >= len(s.src) {
		return 0, false
	}
	return s.src[s.pos.Byte], true
}

func (s *scanner) advance() byte {
	c := s.src[s.pos.Byte]
	s.pos.Byte++
	if c == '\n' {
		s.pos.Line++
		s.pos.Column = 1
	} else {
		s.pos.Column++
	}
	return c
}

func (s *scanner) rangeFrom(start hcl.Pos) hcl.Range {
	return hcl.Range{Filename: s.filename, Start: start, End: s.pos}
}

func (s *scanner) skipTrivia() {
	for {
		c, ok := s.peekByte()
		if !ok {
			return
		}
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n':
			s.advance()
		case c == '#':
			s.skipLine()
		case c == '/' && s.pos.Byte+1 < len(s.src) && s.src[s.pos.Byte+1] == '/':
			s.skipLine()
		default:
			return
		}
	}
}

func (s *scanner) skipLine() {
	for {
		c, ok := s.peekByte()
		if !ok || c == '\n' {
			return
		}
		s.advance()
	}
}

var punctuation = map[byte]tokenKind{
	'[': tokLBrack,
	']': tokRBrack,
	'(': tokLParen,
	')': tokRParen,
	',': tokComma,
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isIdentPart(c byte) bool {
	return isIdentStart(c) || (c >= '0' && c <= '9')
}

// next returns the next token or a syntax error.
func (s *scanner) next() (token, error) {
	s.skipTrivia()
	start := s.pos
	c, ok := s.peekByte()
	if !ok {
		return token{kind: tokEOF, rng: s.rangeFrom(start)}, nil
	}

	if kind, ok := punctuation[c]; ok {
		s.advance()
		return token{kind: kind, text: string(c), rng: s.rangeFrom(start)}, nil
	}

	if isIdentStart(c) {
		for {
			c, ok := s.peekByte()
			if !ok || !isIdentPart(c) {
				break
			}
			s.advance()
		}
		return token{
			kind: tokIdent,
			text: string(s.src[start.Byte:s.pos.Byte]),
			rng:  s.rangeFrom(start),
		}, nil
	}

	s.advance()
	return token{}, &syntaxError{
		rng: s.rangeFrom(start),
		msg: fmt.Sprintf("unexpected character %q", c),
	}
}

// rawUntilClose reads source text up to the ')' that balances an already
// consumed '('. The closing parenthesis is consumed but not included.
// Quoted strings may contain parentheses.
func (s *scanner) rawUntilClose(open hcl.Range) (string, hcl.Range, error) {
	start := s.pos
	depth := 0
	var quote byte
	for {
		c, ok := s.peekByte()
		if !ok {
			return "", hcl.Range{}, &syntaxError{rng: open, msg: "unclosed '(' in attribute"}
		}
		if quote != 0 {
			s.advance()
			switch c {
			case '\\':
				if _, ok := s.peekByte(); ok {
					s.advance()
				}
			case quote:
				quote = 0
			}
			continue
		}
		switch c {
		case '"', '\'':
			quote = c
		case '(':
			depth++
		case ')':
			if depth == 0 {
				rng := s.rangeFrom(start)
				text := string(s.src[start.Byte:s.pos.Byte])
				s.advance()
				return text, rng, nil
			}
			depth--
		}
		s.advance()
	}
}
