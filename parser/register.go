package parser

import "github.com/leadotlang/lea/token"

// registerPrefix wires every token kind that can start an expression to its
// parse function, mirroring the teacher's prefix-function-table registration
// in parser/parser.go.
func (p *Parser) registerPrefix() {
	p.prefixFns[token.INT] = p.parseNumberLit
	p.prefixFns[token.FLOAT] = p.parseNumberLit
	p.prefixFns[token.STRING] = p.parseStringLit
	p.prefixFns[token.TEMPLATE] = p.parseTemplateString
	p.prefixFns[token.TRUE] = p.parseBoolLit
	p.prefixFns[token.FALSE] = p.parseBoolLit
	p.prefixFns[token.NULL] = p.parseNullLit
	p.prefixFns[token.IDENT] = p.parseIdentifier
	p.prefixFns[token.UNDERSCOR] = p.parsePlaceholder
	p.prefixFns[token.INPUT] = p.parseInputRef
	p.prefixFns[token.LPAREN] = p.parseGroupedOrFunction
	p.prefixFns[token.LBRACKET] = p.parseListLit
	p.prefixFns[token.LBRACE] = p.parseRecordLit
	p.prefixFns[token.MINUS] = p.parseUnary
	p.prefixFns[token.NOT] = p.parseUnary
	p.prefixFns[token.AWAIT] = p.parseAwait
	p.prefixFns[token.MATCH] = p.parseMatch
}

// registerInfix wires every binary, ternary, pipe, and postfix (call/index/
// member) operator to its parse function.
func (p *Parser) registerInfix() {
	binaryKinds := []token.Kind{
		token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
		token.DIVINT, token.MODKW, token.CONCAT,
		token.EQ, token.NEQ, token.LT, token.GT, token.LE, token.GE,
		token.RANGE, token.AND, token.OR, token.NULLCO,
	}
	for _, k := range binaryKinds {
		p.infixFns[k] = p.parseBinary
	}
	p.infixFns[token.QUESTION] = p.parseTernary
	p.infixFns[token.ASSIGN] = p.parseAssign

	p.infixFns[token.PIPEFWD] = p.parsePipe
	p.infixFns[token.PIPESPREAD] = p.parsePipe
	p.infixFns[token.PIPEREV] = p.parsePipe
	p.infixFns[token.PIPECOMP] = p.parsePipe
	p.infixFns[token.PIPETAP] = p.parsePipe
	p.infixFns[token.PIPEPAR] = p.parseFanOut

	p.infixFns[token.LPAREN] = p.parseCall
	p.infixFns[token.LBRACKET] = p.parseIndex
	p.infixFns[token.DOT] = p.parseMember
}
