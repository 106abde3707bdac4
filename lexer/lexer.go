// Package lexer turns Lea source text into a token stream (§4.1), grounded
// on the teacher's byte-scanning Lexer (lexer/lexer.go): a Current/
// Position/Line/Column cursor advanced one byte at a time, with a
// switch-dispatched NextToken and Peek-based longest-match operator
// scanning generalized here to Lea's six-member pipe family.
package lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/token"
)

// Lexer scans Lea source text into tokens, collecting recoverable Lex
// diagnostics as it goes rather than aborting on the first bad character
// (§4.1 Failure).
type Lexer struct {
	src       string
	current   byte
	pos       int
	srcLen    int
	line      int
	column    int
	Diags     []*diagnostic.Diagnostic
}

// New creates a Lexer positioned at the start of src.
func New(src string) *Lexer {
	l := &Lexer{src: src, srcLen: len(src), line: 1, column: 1}
	if l.srcLen > 0 {
		l.current = src[0]
	}
	return l
}

// Lex scans the whole source and returns the token stream (always
// terminated with EOF) plus any collected diagnostics.
func Lex(src string) ([]token.Token, []*diagnostic.Diagnostic) {
	l := New(src)
	var toks []token.Token
	for {
		t := l.NextToken()
		toks = append(toks, t)
		if t.Kind == token.EOF {
			break
		}
	}
	return toks, l.Diags
}

func (l *Lexer) advance() {
	if l.current == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	l.pos++
	if l.pos >= l.srcLen {
		l.current = 0
	} else {
		l.current = l.src[l.pos]
	}
}

func (l *Lexer) peek() byte {
	if l.pos+1 >= l.srcLen {
		return 0
	}
	return l.src[l.pos+1]
}

func (l *Lexer) peekAt(offset int) byte {
	if l.pos+offset >= l.srcLen {
		return 0
	}
	return l.src[l.pos+offset]
}

func (l *Lexer) errorf(format string, args ...interface{}) {
	l.Diags = append(l.Diags, diagnostic.New(diagnostic.Lex, l.line, l.column, format, args...))
}

// skipWhitespaceAndComments consumes spaces/tabs/carriage-returns, `--`
// line comments, and `{-- label --}` block labels, stopping at the first
// significant newline or token-starting byte.
func (l *Lexer) skipWhitespaceAndComments() {
	for {
		switch {
		case l.current == ' ' || l.current == '\t' || l.current == '\r':
			l.advance()
		case l.current == '-' && l.peek() == '-':
			for l.current != '\n' && l.current != 0 {
				l.advance()
			}
		case l.current == '{' && l.peek() == '-' && l.peekAt(2) == '-':
			l.advance()
			l.advance()
			l.advance()
			for !(l.current == '-' && l.peek() == '-' && l.peekAt(2) == '}') && l.current != 0 {
				l.advance()
			}
			if l.current == 0 {
				l.errorf("unterminated block comment")
				return
			}
			l.advance()
			l.advance()
			l.advance()
		default:
			return
		}
	}
}

// NextToken returns the next token, EOF once the source is exhausted.
func (l *Lexer) NextToken() token.Token {
	l.skipWhitespaceAndComments()

	line, col := l.line, l.column

	if l.current == 0 {
		return token.New(token.EOF, "", line, col)
	}

	if l.current == '\n' {
		l.advance()
		return token.New(token.NEWLINE, "\\n", line, col)
	}

	switch {
	case isDigit(l.current):
		return l.scanNumber(line, col)
	case isIdentStart(l.current):
		return l.scanIdentOrKeyword(line, col)
	case l.current == '"':
		return l.scanString(line, col)
	case l.current == '`':
		return l.scanTemplate(line, col)
	}

	return l.scanOperator(line, col)
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
func isIdentStart(b byte) bool {
	return b == '_' || (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
func isIdentPart(b byte) bool { return isIdentStart(b) || isDigit(b) }

func (l *Lexer) scanNumber(line, col int) token.Token {
	start := l.pos
	for isDigit(l.current) {
		l.advance()
	}
	isFloat := false
	if l.current == '.' && isDigit(l.peek()) {
		isFloat = true
		l.advance()
		for isDigit(l.current) {
			l.advance()
		}
	}
	if l.current == 'e' || l.current == 'E' {
		save := l.pos
		la, lc := l.line, l.column
		l.advance()
		if l.current == '+' || l.current == '-' {
			l.advance()
		}
		if isDigit(l.current) {
			isFloat = true
			for isDigit(l.current) {
				l.advance()
			}
		} else {
			l.pos, l.line, l.column = save, la, lc
			l.current = l.src[l.pos]
		}
	}
	lexeme := l.src[start:l.pos]
	if isFloat {
		return token.New(token.FLOAT, lexeme, line, col)
	}
	return token.New(token.INT, lexeme, line, col)
}

func (l *Lexer) scanIdentOrKeyword(line, col int) token.Token {
	start := l.pos
	for isIdentPart(l.current) {
		l.advance()
	}
	lexeme := l.src[start:l.pos]
	if lexeme == "_" {
		return token.New(token.UNDERSCOR, lexeme, line, col)
	}
	return token.New(token.LookupIdent(lexeme), lexeme, line, col)
}

func (l *Lexer) scanString(line, col int) token.Token {
	l.advance() // consume opening quote
	var sb strings.Builder
	for l.current != '"' {
		if l.current == 0 || l.current == '\n' {
			l.errorf("unterminated string literal")
			return token.New(token.STRING, sb.String(), line, col)
		}
		if l.current == '\\' {
			l.advance()
			l.scanEscape(&sb)
			continue
		}
		sb.WriteByte(l.current)
		l.advance()
	}
	l.advance() // consume closing quote
	return token.New(token.STRING, sb.String(), line, col)
}

func (l *Lexer) scanEscape(sb *strings.Builder) {
	switch l.current {
	case 'n':
		sb.WriteByte('\n')
		l.advance()
	case 't':
		sb.WriteByte('\t')
		l.advance()
	case 'r':
		sb.WriteByte('\r')
		l.advance()
	case '\\':
		sb.WriteByte('\\')
		l.advance()
	case '"':
		sb.WriteByte('"')
		l.advance()
	case '`':
		sb.WriteByte('`')
		l.advance()
	case 'u':
		l.advance()
		if l.current == '{' {
			l.advance()
			start := l.pos
			for l.current != '}' && l.current != 0 {
				l.advance()
			}
			hex := l.src[start:l.pos]
			if l.current == '}' {
				l.advance()
			}
			r := parseHexRune(hex)
			var buf [utf8.UTFMax]byte
			n := utf8.EncodeRune(buf[:], r)
			sb.Write(buf[:n])
		} else {
			l.errorf("invalid unicode escape, expected '{'")
		}
	default:
		l.errorf("unknown escape sequence '\\%c'", l.current)
		l.advance()
	}
}

func parseHexRune(hex string) rune {
	var r rune
	for _, c := range hex {
		r <<= 4
		switch {
		case c >= '0' && c <= '9':
			r |= rune(c - '0')
		case c >= 'a' && c <= 'f':
			r |= rune(c-'a') + 10
		case c >= 'A' && c <= 'F':
			r |= rune(c-'A') + 10
		}
	}
	return r
}

// scanTemplate scans a backtick-delimited template string as a single
// TEMPLATE token carrying the raw body; the parser re-lexes/re-parses each
// `${...}` interpolation (§4.1).
func (l *Lexer) scanTemplate(line, col int) token.Token {
	l.advance() // consume opening backtick
	start := l.pos
	depth := 0
	for {
		if l.current == 0 {
			l.errorf("unterminated template string")
			break
		}
		if l.current == '`' && depth == 0 {
			break
		}
		if l.current == '$' && l.peek() == '{' {
			depth++
			l.advance()
			l.advance()
			continue
		}
		if l.current == '{' && depth > 0 {
			depth++
			l.advance()
			continue
		}
		if l.current == '}' && depth > 0 {
			depth--
			l.advance()
			continue
		}
		l.advance()
	}
	body := l.src[start:l.pos]
	if l.current == '`' {
		l.advance()
	}
	return token.New(token.TEMPLATE, body, line, col)
}

// pipeOperators lists the multi-byte pipe-family lexemes in longest-match
// order, matching §4.1's explicit scan order.
var pipeOperators = []struct {
	lexeme string
	kind   token.Kind
}{
	{"/>>>", token.PIPESPREAD},
	{"</>", token.PIPECOMP},
	{"/>", token.PIPEFWD},
	{"</", token.PIPEREV},
	{"\\>", token.PIPEPAR},
	{"@>", token.PIPETAP},
}

func (l *Lexer) scanOperator(line, col int) token.Token {
	for _, op := range pipeOperators {
		if l.matchAhead(op.lexeme) {
			l.advanceN(len(op.lexeme))
			return token.New(op.kind, op.lexeme, line, col)
		}
	}

	c := l.current
	two := func(next byte, kind token.Kind, lexeme string) (token.Token, bool) {
		if l.peek() == next {
			l.advance()
			l.advance()
			return token.New(kind, lexeme, line, col), true
		}
		return token.Token{}, false
	}

	switch c {
	case '+':
		if t, ok := two('+', token.CONCAT, "++"); ok {
			return t
		}
		l.advance()
		return token.New(token.PLUS, "+", line, col)
	case '-':
		if t, ok := two('>', token.ARROW, "->"); ok {
			return t
		}
		l.advance()
		return token.New(token.MINUS, "-", line, col)
	case '*':
		l.advance()
		return token.New(token.STAR, "*", line, col)
	case '/':
		l.advance()
		return token.New(token.SLASH, "/", line, col)
	case '%':
		l.advance()
		return token.New(token.PERCENT, "%", line, col)
	case '=':
		if t, ok := two('=', token.EQ, "=="); ok {
			return t
		}
		l.advance()
		return token.New(token.ASSIGN, "=", line, col)
	case '!':
		if t, ok := two('=', token.NEQ, "!="); ok {
			return t
		}
		l.errorf("unexpected character '!'")
		l.advance()
		return token.New(token.ILLEGAL, "!", line, col)
	case '<':
		if t, ok := two('=', token.LE, "<="); ok {
			return t
		}
		if t, ok := two('-', token.EARLYRET, "<-"); ok {
			return t
		}
		l.advance()
		return token.New(token.LT, "<", line, col)
	case '>':
		if t, ok := two('=', token.GE, ">="); ok {
			return t
		}
		l.advance()
		return token.New(token.GT, ">", line, col)
	case '?':
		if t, ok := two('?', token.NULLCO, "??"); ok {
			return t
		}
		l.advance()
		return token.New(token.QUESTION, "?", line, col)
	case ':':
		if t, ok := two(':', token.DCOLON, "::"); ok {
			return t
		}
		if t, ok := two('>', token.COLONGT, ":>"); ok {
			return t
		}
		l.advance()
		return token.New(token.COLON, ":", line, col)
	case '.':
		if t, ok := two('.', token.RANGE, ".."); ok {
			return t
		}
		l.advance()
		return token.New(token.DOT, ".", line, col)
	case '(':
		l.advance()
		return token.New(token.LPAREN, "(", line, col)
	case ')':
		l.advance()
		return token.New(token.RPAREN, ")", line, col)
	case '{':
		l.advance()
		return token.New(token.LBRACE, "{", line, col)
	case '}':
		l.advance()
		return token.New(token.RBRACE, "}", line, col)
	case '[':
		l.advance()
		return token.New(token.LBRACKET, "[", line, col)
	case ']':
		l.advance()
		return token.New(token.RBRACKET, "]", line, col)
	case ',':
		l.advance()
		return token.New(token.COMMA, ",", line, col)
	case '#':
		l.advance()
		return token.New(token.HASH, "#", line, col)
	case '@':
		l.advance()
		return token.New(token.AT, "@", line, col)
	case ';':
		l.advance()
		return token.New(token.NEWLINE, ";", line, col)
	}

	l.errorf("unexpected character %q", rune(c))
	l.advance()
	return token.New(token.ILLEGAL, string(c), line, col)
}

func (l *Lexer) matchAhead(s string) bool {
	if l.pos+len(s) > l.srcLen {
		return false
	}
	return l.src[l.pos:l.pos+len(s)] == s
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}
