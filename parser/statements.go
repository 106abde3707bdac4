package parser

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/token"
)

// parseStatement parses one statement starting at curr and then advances
// past its last token, so the caller's loop resumes at the terminator.
func (p *Parser) parseStatement() ast.Stmt {
	var stmt ast.Stmt
	switch p.curr.Kind {
	case token.LET:
		stmt = p.parseLetOrMaybe(false)
	case token.MAYBE:
		stmt = p.parseLetOrMaybe(true)
	case token.CONTEXT:
		stmt = p.parseContextDef()
	case token.PROVIDE:
		stmt = p.parseProvide()
	case token.RETURN:
		stmt = p.parseReturn()
	case token.EARLYRET:
		stmt = p.parseEarlyReturn()
	default:
		stmt = p.parseExprStatement()
	}
	p.next()
	return stmt
}

func (p *Parser) parseLetOrMaybe(mutable bool) ast.Stmt {
	line, col := p.curr.Line, p.curr.Column
	p.next() // consume let/maybe
	if !p.curIs(token.IDENT) {
		p.errorf("expected identifier after let/maybe, got %q", p.curr.Lexeme)
		return nil
	}
	name := p.curr.Lexeme

	typeAnn := ""
	if p.peekIs(token.DCOLON) {
		p.next()
		if !p.expect(token.IDENT) {
			return nil
		}
		typeAnn = p.curr.Lexeme
		if p.peekIs(token.COLONGT) {
			p.next()
			if !p.expect(token.IDENT) {
				return nil
			}
			typeAnn = typeAnn + ":>" + p.curr.Lexeme
		}
	}

	if !p.expect(token.ASSIGN) {
		return nil
	}
	p.next()
	value := p.parseExpression(precLowest)
	if fn, ok := value.(*ast.FunctionLit); ok {
		fn.Name = name
	}
	stmt := &ast.LetStmt{Name: name, Mutable: mutable, TypeAnn: typeAnn, Value: value}
	stmt.SetPos(line, col)
	return stmt
}

func (p *Parser) parseContextDef() ast.Stmt {
	line, col := p.curr.Line, p.curr.Column
	p.next() // consume 'context'
	if !p.curIs(token.IDENT) {
		p.errorf("expected context name, got %q", p.curr.Lexeme)
		return nil
	}
	name := p.curr.Lexeme
	if !p.expect(token.ASSIGN) {
		return nil
	}
	p.next()
	def := p.parseExpression(precLowest)
	stmt := &ast.ContextDefStmt{Name: name, Default: def}
	stmt.SetPos(line, col)
	return stmt
}

func (p *Parser) parseProvide() ast.Stmt {
	line, col := p.curr.Line, p.curr.Column
	p.next() // consume 'provide'
	if !p.curIs(token.IDENT) {
		p.errorf("expected context name after provide, got %q", p.curr.Lexeme)
		return nil
	}
	name := p.curr.Lexeme
	p.next()
	value := p.parseExpression(precLowest)
	stmt := &ast.ProvideStmt{Name: name, Value: value}
	if p.peekIs(token.LBRACE) {
		p.next()
		stmt.Scope = p.parseBlockBody()
	}
	stmt.SetPos(line, col)
	return stmt
}

func (p *Parser) parseReturn() ast.Stmt {
	line, col := p.curr.Line, p.curr.Column
	if p.peekIs(token.NEWLINE) || p.peekIs(token.RBRACE) || p.peekIs(token.EOF) {
		stmt := &ast.ReturnStmt{}
		stmt.SetPos(line, col)
		return stmt
	}
	p.next() // consume 'return'
	value := p.parseExpression(precLowest)
	stmt := &ast.ReturnStmt{Value: value}
	stmt.SetPos(line, col)
	return stmt
}

func (p *Parser) parseEarlyReturn() ast.Stmt {
	line, col := p.curr.Line, p.curr.Column
	p.next() // consume '<-'
	value := p.parseExpression(precLowest)
	stmt := &ast.ReturnStmt{Value: value}
	stmt.SetPos(line, col)
	return stmt
}

func (p *Parser) parseExprStatement() ast.Stmt {
	line, col := p.curr.Line, p.curr.Column
	expr := p.parseExpression(precLowest)
	if expr == nil {
		return nil
	}
	stmt := &ast.ExprStmt{Expression: expr}
	stmt.SetPos(line, col)
	return stmt
}

// parseBlockBody parses `{ stmt* }`, treating a trailing expression
// statement as the block's result value per ast.BlockBody.
func (p *Parser) parseBlockBody() *ast.BlockBody {
	line, col := p.curr.Line, p.curr.Column // curr == '{'
	p.next()
	p.skipNewlines()
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
	if !p.curIs(token.RBRACE) {
		p.errorf("expected '}' to close block")
	}
	if n := len(block.Statements); n > 0 {
		if last, ok := block.Statements[n-1].(*ast.ExprStmt); ok {
			block.Result = last.Expression
		}
	}
	block.Pos = ast.Pos{Line: line, Column: col}
	return block
}
