package parser

import (
	"strconv"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expr {
	prefix := p.prefixFns[p.curr.Kind]
	if prefix == nil {
		p.errorf("expected an expression, found %q", p.curr.Lexeme)
		return nil
	}
	left := prefix()

	for !p.peekIs(token.NEWLINE) && precedence < p.peekPrecedence() {
		infix := p.infixFns[p.peek.Kind]
		if infix == nil {
			return left
		}
		p.next()
		left = infix(left)
	}
	return left
}

// parseExpressionList parses a comma-separated list up to (and consuming)
// the closing delimiter, used for call arguments and list literals.
func (p *Parser) parseExpressionList(end token.Kind) []ast.Expr {
	var list []ast.Expr
	if p.peekIs(end) {
		p.next()
		return list
	}
	p.next()
	list = append(list, p.parseExpression(precLowest))
	for p.peekIs(token.COMMA) {
		p.next()
		p.next()
		list = append(list, p.parseExpression(precLowest))
	}
	if !p.expect(end) {
		return list
	}
	return list
}

func (p *Parser) parseNumberLit() ast.Expr {
	line, col := p.curr.Line, p.curr.Column
	if p.curr.Kind == token.FLOAT {
		f, err := strconv.ParseFloat(p.curr.Lexeme, 64)
		if err != nil {
			p.errorf("invalid float literal %q", p.curr.Lexeme)
		}
		return ast.NewNumberLit(line, col, p.curr.Lexeme, true, 0, f)
	}
	i, err := strconv.ParseInt(p.curr.Lexeme, 10, 64)
	if err != nil {
		p.errorf("invalid integer literal %q", p.curr.Lexeme)
	}
	return ast.NewNumberLit(line, col, p.curr.Lexeme, false, i, 0)
}

func (p *Parser) parseStringLit() ast.Expr {
	return ast.NewStringLit(p.curr.Line, p.curr.Column, p.curr.Lexeme)
}

func (p *Parser) parseBoolLit() ast.Expr {
	return ast.NewBoolLit(p.curr.Line, p.curr.Column, p.curr.Kind == token.TRUE)
}

func (p *Parser) parseNullLit() ast.Expr {
	return ast.NewNullLit(p.curr.Line, p.curr.Column)
}

func (p *Parser) parseIdentifier() ast.Expr {
	return ast.NewIdentifier(p.curr.Line, p.curr.Column, p.curr.Lexeme)
}

func (p *Parser) parsePlaceholder() ast.Expr {
	return ast.NewPlaceholder(p.curr.Line, p.curr.Column)
}

func (p *Parser) parseInputRef() ast.Expr {
	return ast.NewInputRef(p.curr.Line, p.curr.Column)
}

func (p *Parser) parseListLit() ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '['
	items := p.parseExpressionList(token.RBRACKET)
	node := &ast.ListLit{Items: items}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseRecordLit() ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '{'
	node := &ast.RecordLit{}
	if p.peekIs(token.RBRACE) {
		p.next()
		node.SetPos(line, col)
		return node
	}
	for {
		p.next()
		if !p.curIs(token.IDENT) && !p.curIs(token.STRING) {
			p.errorf("expected record key, got %q", p.curr.Lexeme)
			return nil
		}
		key := p.curr.Lexeme
		if !p.expect(token.COLON) {
			return nil
		}
		p.next()
		val := p.parseExpression(precLowest)
		node.Entries = append(node.Entries, ast.RecordEntry{Key: key, Value: val})
		if p.peekIs(token.COMMA) {
			p.next()
			continue
		}
		break
	}
	if !p.expect(token.RBRACE) {
		return nil
	}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseGroupedOrFunction() ast.Expr {
	if p.isFunctionLiteralAhead() {
		return p.parseFunctionLiteral()
	}
	line, col := p.curr.Line, p.curr.Column
	p.next()
	expr := p.parseExpression(precLowest)
	if !p.expect(token.RPAREN) {
		return nil
	}
	_ = line
	_ = col
	return expr
}

func (p *Parser) parseUnary() ast.Expr {
	op := p.curr.Kind
	line, col := p.curr.Line, p.curr.Column
	p.next()
	operand := p.parseExpression(precUnary)
	node := &ast.UnaryExpr{Op: op, Operand: operand}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseAwait() ast.Expr {
	line, col := p.curr.Line, p.curr.Column
	p.next()
	inner := p.parseExpression(precUnary)
	node := &ast.AwaitExpr{Inner: inner}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseBinary(left ast.Expr) ast.Expr {
	op := p.curr.Kind
	line, col := p.curr.Line, p.curr.Column
	prec := p.currPrecedence()
	p.next()
	right := p.parseExpression(prec)
	node := &ast.BinaryExpr{Op: op, Left: left, Right: right}
	node.SetPos(line, col)
	return node
}

// parseAssign parses `target = value` right-associatively: the value is
// parsed at precAssign-1 so a chained `a = b = c` nests as a = (b = c).
func (p *Parser) parseAssign(left ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '='
	p.next()
	value := p.parseExpression(precAssign - 1)
	node := &ast.AssignExpr{Target: left, Value: value}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseTernary(cond ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '?'
	p.next()
	thenExpr := p.parseExpression(precTernary)
	if !p.expect(token.COLON) {
		return nil
	}
	p.next()
	elseExpr := p.parseExpression(precTernary)
	node := &ast.TernaryExpr{Cond: cond, Then: thenExpr, Else: elseExpr}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseCall(callee ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '('
	args := p.parseExpressionList(token.RPAREN)
	node := &ast.CallExpr{Callee: callee, Args: args}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseIndex(target ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '['
	p.next()
	idx := p.parseExpression(precLowest)
	if !p.expect(token.RBRACKET) {
		return nil
	}
	node := &ast.IndexExpr{Target: target, Index: idx}
	node.SetPos(line, col)
	return node
}

func (p *Parser) parseMember(target ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '.'
	if !p.expect(token.IDENT) {
		return nil
	}
	node := &ast.MemberExpr{Target: target, Name: p.curr.Lexeme}
	node.SetPos(line, col)
	return node
}
