// Package parser implements Lea's recursive-descent, precedence-climbing
// parser (§4.2). Grounded on the teacher's Pratt-parser shape
// (parser/parser.go, parser/parser_precedence.go): a Parser holding
// current/peek tokens plus prefix/infix function tables keyed by token
// kind, and an Errors-collecting (never panicking) design so a single pass
// can report every recoverable ParseError it finds.
package parser

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/lexer"
	"github.com/leadotlang/lea/token"
)

type prefixParseFn func() ast.Expr
type infixParseFn func(left ast.Expr) ast.Expr

// Parser converts a token stream into a Program, collecting Diagnostics
// for every recoverable error along the way.
type Parser struct {
	toks []token.Token
	pos  int
	curr token.Token
	peek token.Token

	Diags []*diagnostic.Diagnostic

	prefixFns map[token.Kind]prefixParseFn
	infixFns  map[token.Kind]infixParseFn
}

// New builds a Parser over already-lexed tokens.
func New(toks []token.Token) *Parser {
	p := &Parser{toks: toks}
	p.prefixFns = make(map[token.Kind]prefixParseFn)
	p.infixFns = make(map[token.Kind]infixParseFn)
	p.registerPrefix()
	p.registerInfix()
	p.next()
	p.next()
	return p
}

// Parse lexes src and parses it in one call, the common case for callers
// that don't need the intermediate token stream.
func Parse(src string) (*ast.Program, []*diagnostic.Diagnostic) {
	toks, lexDiags := lexer.Lex(src)
	p := New(toks)
	prog := p.ParseProgram()
	diags := append(lexDiags, p.Diags...)
	return prog, diags
}

func (p *Parser) next() {
	p.curr = p.peek
	if p.pos < len(p.toks) {
		p.peek = p.toks[p.pos]
		p.pos++
	} else {
		p.peek = token.New(token.EOF, "", p.curr.Line, p.curr.Column)
	}
}

func (p *Parser) errorf(format string, args ...interface{}) {
	p.Diags = append(p.Diags, diagnostic.New(diagnostic.Parse, p.curr.Line, p.curr.Column, format, args...))
}

func (p *Parser) curIs(k token.Kind) bool  { return p.curr.Kind == k }
func (p *Parser) peekIs(k token.Kind) bool { return p.peek.Kind == k }

func (p *Parser) expect(k token.Kind) bool {
	if p.peekIs(k) {
		p.next()
		return true
	}
	p.errorf("expected next token to be %s, got %s (%q) instead", k, p.peek.Kind, p.peek.Lexeme)
	return false
}

// skipNewlines consumes any run of soft statement terminators.
func (p *Parser) skipNewlines() {
	for p.curIs(token.NEWLINE) {
		p.next()
	}
}

// statementBoundaryKinds are the tokens the parser resynchronizes on after
// a parse error (§4.2 Errors): NEWLINE or the start of a new statement
// form.
var statementBoundaryKinds = map[token.Kind]bool{
	token.NEWLINE: true, token.LET: true, token.IF: true, token.RETURN: true,
	token.CONTEXT: true, token.PROVIDE: true, token.MAYBE: true, token.EOF: true,
}

func (p *Parser) synchronize() {
	for !statementBoundaryKinds[p.curr.Kind] {
		p.next()
	}
}

// ParseProgram parses the full token stream into a Program, recovering at
// statement boundaries after each error so multiple diagnostics can
// surface from one pass.
func (p *Parser) ParseProgram() *ast.Program {
	prog := &ast.Program{}
	p.skipNewlines()
	for !p.curIs(token.EOF) {
		startErrs := len(p.Diags)
		stmt := p.parseStatement()
		if stmt != nil {
			prog.Statements = append(prog.Statements, stmt)
		}
		if len(p.Diags) > startErrs {
			p.synchronize()
		}
		p.skipNewlines()
	}
	return prog
}
