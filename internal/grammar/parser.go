package grammar

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
)

type syntaxError struct {
	rng hcl.Range
	msg string
}

func (e *syntaxError) Error() string {
	return fmt.Sprintf("%s: %s", e.rng, e.msg)
}

type parser struct {
	s    *scanner
	tok  token
	tree *Tree
}

// Parse reads a schedule declaration. On a syntax error it returns a nil
// tree and a single error diagnostic; no partial tree is ever produced.
func Parse(filename string, src []byte) (*Tree, hcl.Diagnostics) {
	p := &parser{
		s:    newScanner(filename, src),
		tree: NewTree(filename),
	}
	if err := p.parseTree(); err != nil {
		return nil, syntaxDiags(err)
	}
	return p.tree, nil
}

// ParseString is a convenience wrapper used by tests and declarations
// written as Go string literals.
func ParseString(src string) (*Tree, hcl.Diagnostics) {
	return Parse("<schedule>", []byte(src))
}

func syntaxDiags(err error) hcl.Diagnostics {
	diag := &hcl.Diagnostic{
		Severity: hcl.DiagError,
		Summary:  "Invalid schedule syntax",
		Detail:   err.Error(),
	}
	if se, ok := err.(*syntaxError); ok {
		diag.Detail = se.msg
		rng := se.rng
		diag.Subject = &rng
	}
	return hcl.Diagnostics{diag}
}

func (p *parser) next() error {
	tok, err := p.s.next()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

func (p *parser) expect(kind tokenKind) (token, error) {
	if p.tok.kind != kind {
		return token{}, p.unexpected(kind.String())
	}
	tok := p.tok
	return tok, p.next()
}

func (p *parser) unexpected(want string) error {
	got := p.tok.kind.String()
	if p.tok.kind == tokIdent {
		got = fmt.Sprintf("identifier %q", p.tok.text)
	}
	return &syntaxError{rng: p.tok.rng, msg: fmt.Sprintf("expected %s, found %s", want, got)}
}

func (p *parser) parseTree() error {
	if err := p.next(); err != nil {
		return err
	}
	if p.tok.kind == tokEOF {
		return &syntaxError{rng: p.tok.rng, msg: "empty schedule declaration"}
	}
	if err := p.parseNode(NoParent); err != nil {
		return err
	}
	if p.tok.kind != tokEOF {
		return p.unexpected(tokEOF.String())
	}
	return nil
}

// parseNode reads `attr* IDENT [ "(" children ")" ]`.
func (p *parser) parseNode(parent NodeID) error {
	var attrs []Attr
	for p.tok.kind == tokLBrack {
		attr, err := p.parseAttr()
		if err != nil {
			return err
		}
		attrs = append(attrs, attr)
	}

	ident, err := p.expect(tokIdent)
	if err != nil {
		return err
	}
	id := p.tree.Add(parent, ident.text, ident.rng, attrs)

	if p.tok.kind != tokLParen {
		return nil
	}
	if err := p.next(); err != nil {
		return err
	}
	for p.tok.kind != tokRParen {
		if err := p.parseNode(id); err != nil {
			return err
		}
		if p.tok.kind == tokComma {
			if err := p.next(); err != nil {
				return err
			}
			continue
		}
		if p.tok.kind != tokRParen {
			return p.unexpected("',' or ')'")
		}
	}
	return p.next()
}

// parseAttr reads `"[" IDENT "(" raw ")" "]"`.
func (p *parser) parseAttr() (Attr, error) {
	if _, err := p.expect(tokLBrack); err != nil {
		return Attr{}, err
	}
	name, err := p.expect(tokIdent)
	if err != nil {
		return Attr{}, err
	}
	if p.tok.kind != tokLParen {
		return Attr{}, p.unexpected(tokLParen.String())
	}
	// The scanner sits right after '(' here, so the raw expression can be
	// read without tokenizing it.
	expr, exprRange, err := p.s.rawUntilClose(p.tok.rng)
	if err != nil {
		return Attr{}, err
	}
	if err := p.next(); err != nil {
		return Attr{}, err
	}
	if _, err := p.expect(tokRBrack); err != nil {
		return Attr{}, err
	}
	return Attr{
		Name:      name.text,
		Expr:      strings.TrimSpace(expr),
		NameRange: name.rng,
		ExprRange: exprRange,
	}, nil
}
