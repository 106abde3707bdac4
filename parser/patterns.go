package parser

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/token"
)

var typeTagNames = map[string]bool{
	"Int": true, "Float": true, "String": true, "Bool": true, "List": true,
	"Record": true, "Null": true, "Function": true, "Promise": true, "Channel": true,
}

func (p *Parser) parsePattern() ast.Pattern {
	switch {
	case p.curIs(token.UNDERSCOR):
		return ast.WildcardPattern{}
	case p.curIs(token.LBRACKET):
		return p.parseListPattern()
	case p.curIs(token.LBRACE):
		return p.parseRecordPattern()
	case p.curIs(token.MINUS):
		p.next()
		lit := p.parseNumberLit()
		return negateLiteral(lit)
	case p.curIs(token.INT), p.curIs(token.FLOAT), p.curIs(token.STRING),
		p.curIs(token.TRUE), p.curIs(token.FALSE), p.curIs(token.NULL):
		return ast.LiteralPattern{Value: p.parseLiteralForPattern()}
	case p.curIs(token.IDENT):
		name := p.curr.Lexeme
		if typeTagNames[name] && p.peekIs(token.LPAREN) {
			return p.parseTypeTagPattern(name)
		}
		return ast.IdentPattern{Name: name}
	default:
		p.errorf("invalid match pattern starting with %q", p.curr.Lexeme)
		return ast.WildcardPattern{}
	}
}

func (p *Parser) parseLiteralForPattern() ast.Expr {
	switch p.curr.Kind {
	case token.INT, token.FLOAT:
		return p.parseNumberLit()
	case token.STRING:
		return p.parseStringLit()
	case token.TRUE, token.FALSE:
		return p.parseBoolLit()
	case token.NULL:
		return p.parseNullLit()
	}
	return nil
}

func negateLiteral(lit ast.Expr) ast.Pattern {
	n, ok := lit.(*ast.NumberLit)
	if !ok {
		return ast.LiteralPattern{Value: lit}
	}
	if n.IsFloat {
		n.Float = -n.Float
	} else {
		n.Int = -n.Int
	}
	return ast.LiteralPattern{Value: n}
}

// parseTypeTagPattern parses `Tag(binder)`. The binder name is currently
// consumed but not bound — matching is purely by runtime Kind — a
// deliberate simplification of §4.3's under-specified type-tag pattern
// recorded in DESIGN.md.
func (p *Parser) parseTypeTagPattern(tag string) ast.Pattern {
	p.next() // consume '('
	p.next() // move to binder
	if !p.curIs(token.IDENT) && !p.curIs(token.UNDERSCOR) {
		p.errorf("expected binder name in type pattern %s(...)", tag)
	}
	p.expect(token.RPAREN)
	return ast.TypeTagPattern{Tag: tag}
}

func (p *Parser) parseListPattern() ast.Pattern {
	node := ast.ListPattern{}
	if p.peekIs(token.RBRACKET) {
		p.next()
		return node
	}
	p.next()
	for {
		if p.curIs(token.RANGE) && p.peekIs(token.DOT) {
			p.next()
			p.next()
			if p.curIs(token.IDENT) {
				node.Rest = p.curr.Lexeme
			}
			break
		}
		node.Elements = append(node.Elements, p.parsePattern())
		if p.peekIs(token.COMMA) {
			p.next()
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACKET)
	return node
}

func (p *Parser) parseRecordPattern() ast.Pattern {
	node := ast.RecordPattern{}
	if p.peekIs(token.RBRACE) {
		p.next()
		return node
	}
	p.next()
	for {
		if p.curIs(token.RANGE) && p.peekIs(token.DOT) {
			p.next()
			p.next()
			if p.curIs(token.IDENT) {
				node.Rest = p.curr.Lexeme
			}
			break
		}
		if !p.curIs(token.IDENT) {
			p.errorf("expected field name in record pattern, got %q", p.curr.Lexeme)
			break
		}
		key := p.curr.Lexeme
		var fieldPattern ast.Pattern = ast.IdentPattern{Name: key}
		if p.peekIs(token.COLON) {
			p.next()
			p.next()
			fieldPattern = p.parsePattern()
		}
		node.Fields = append(node.Fields, ast.RecordPatternField{Key: key, Pattern: fieldPattern})
		if p.peekIs(token.COMMA) {
			p.next()
			p.next()
			continue
		}
		break
	}
	p.expect(token.RBRACE)
	return node
}

func (p *Parser) parseMatch() ast.Expr {
	line, col := p.curr.Line, p.curr.Column
	p.next() // consume 'match'
	scrutinee := p.parseExpression(precLowest)
	if !p.expect(token.LBRACE) {
		return nil
	}
	p.next()
	p.skipNewlines()
	node := &ast.MatchExpr{Scrutinee: scrutinee}
	for !p.curIs(token.RBRACE) && !p.curIs(token.EOF) {
		pat := p.parsePattern()
		var guard ast.Expr
		if p.peekIs(token.IF) {
			p.next()
			p.next()
			guard = p.parseExpression(precLowest)
		}
		if !p.expect(token.ARROW) {
			return node
		}
		p.next()
		body := p.parseExpression(precLowest)
		node.Arms = append(node.Arms, ast.MatchArm{Pattern: pat, Guard: guard, Body: body})
		if p.peekIs(token.COMMA) {
			p.next()
		}
		p.next()
		p.skipNewlines()
	}
	node.SetPos(line, col)
	return node
}
