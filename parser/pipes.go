package parser

import (
	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/token"
)

var pipeKindByToken = map[token.Kind]ast.PipeKind{
	token.PIPEFWD:    ast.PipeForward,
	token.PIPESPREAD: ast.PipeSpread,
	token.PIPEREV:    ast.PipeReverse,
	token.PIPECOMP:   ast.PipeCompose,
	token.PIPETAP:    ast.PipeTap,
}

// parsePipe handles every pipe-family operator except `\>`, which needs
// the grouping behavior in parseFanOut (§4.2: "consecutive `\>` stages at
// the same level group").
func (p *Parser) parsePipe(left ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column
	kind := pipeKindByToken[p.curr.Kind]
	prec := p.currPrecedence()
	p.next()
	right := p.parseExpression(prec)
	node := &ast.PipeExpr{Kind: kind, Left: left, Right: right}
	node.SetPos(line, col)
	return node
}

// parseFanOut collects every consecutive `\>` stage into a single
// FanOutExpr evaluated concurrently against the same input (§4.2, §4.3,
// §5); a following `/>` treats the resulting list as positional arguments.
func (p *Parser) parseFanOut(input ast.Expr) ast.Expr {
	line, col := p.curr.Line, p.curr.Column // curr == '\>'
	var stages []ast.Expr
	for {
		prec := p.currPrecedence()
		p.next()
		stages = append(stages, p.parseExpression(prec))
		if !p.peekIs(token.PIPEPAR) {
			break
		}
		p.next()
	}
	node := &ast.FanOutExpr{Input: input, Stages: stages}
	node.SetPos(line, col)
	return node
}
