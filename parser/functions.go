package parser

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/token"
)

// isFunctionLiteralAhead disambiguates a grouped expression `(expr)` from a
// function literal `(params) -> body` while curr is still the opening '('.
// It scans the raw token slice directly — p.curr always sits at index
// p.pos-2 (see Parser.next) — to find the matching ')' and check whether
// '->' follows, without consuming anything or needing backtracking.
func (p *Parser) isFunctionLiteralAhead() bool {
	depth := 0
	for i := p.pos - 1; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				j := i + 1
				for j < len(p.toks) && p.toks[j].Kind == token.NEWLINE {
					j++
				}
				return j < len(p.toks) && p.toks[j].Kind == token.ARROW
			}
			depth--
		case token.EOF:
			return false
		}
	}
	return false
}

func (p *Parser) parseFunctionLiteral() ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '('
	params := p.parseParamList()
	if !p.expect(token.ARROW) {
		return nil
	}
	body, attachments := p.parseFunctionBody()
	node := &ast.FunctionLit{Params: params, Body: body, Attachments: attachments}
	node.SetPos(line, col)
	for p.peekIs(token.HASH) {
		p.next() // curr == '#'
		if !p.expect(token.IDENT) {
			break
		}
		dec := ast.Decorator{Name: p.curr.Lexeme}
		if p.peekIs(token.LPAREN) {
			p.next()
			dec.Args = p.parseExpressionList(token.RPAREN)
		}
		node.Decorators = append(node.Decorators, dec)
	}
	return node
}

func (p *Parser) parseParamList() []ast.Param {
	var params []ast.Param
	if p.peekIs(token.RPAREN) {
		p.next()
		return params
	}
	p.next()
	params = append(params, p.parseParam())
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		params = append(params, p.parseParam())
	}
	p.expect(token.RPAREN)
	return params
}

func (p *Parser) parseParam() ast.Param {
	param := ast.Param{Name: p.curr.Lexeme}
	if p.peekIs(token.DCOLON) {
		p.next()
		if p.expect(token.IDENT) {
			param.TypeAnn = p.curr.Lexeme
		}
	}
	if p.peekIs(token.ASSIGN) {
		p.next()
		p.next()
		param.Default = p.parseExpression(precLowest)
	}
	return param
}

// parseFunctionBody parses either a bare expression body or a `{ ... }`
// block, peeling off any leading `@Name` context-attachment declarations
// (§4.3 contextual attachments) from the top of a block body before
// parsing ordinary statements.
func (p *Parser) parseFunctionBody() (ast.Node, []string) {
	if !p.peekIs(token.LBRACE) {
		p.next()
		return p.parseExpression(precLowest), nil
	}
	p.next() // curr == '{'
	p.next()
	p.skipNewlines()

	var attachments []string
	for p.curIs(token.AT) {
		if p.expect(token.IDENT) {
			attachments = append(attachments, p.curr.Lexeme)
		}
		p.next()
		p.skipNewlines()
	}

	block := &ast.BlockBody{}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		startErrs := len(p.Diags)
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		if len(p.Diags) > startErrs {
			p.synchronize()
		}
		p.skipNewlines()
	}
	if n := len(block.Statements); n > 0 {
		if last, ok := block.Statements[n-1].(*ast.ExprStmt); ok {
			block.Result = last.Expression
		}
	}
	return block, attachments
}
