package parser

import (
	"strings"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/lexer"
)

// parseTemplateString splits a raw TEMPLATE token's body into literal runs
// and `${...}` interpolations, re-lexing and re-parsing each interpolation
// as an independent expression. The lexer only tracks brace depth to find
// where the template ends (lexer.go scanTemplate); splitting the body into
// ast.TemplatePart values is the parser's job.
func (p *Parser) parseTemplateString() ast.Expr {
	line, col := p.curr.Line, p.curr.Column
	body := p.curr.Lexeme
	node := &ast.TemplateString{}

	var lit strings.Builder
	i := 0
	for i < len(body) {
		if body[i] == '$' && i+1 < len(body) && body[i+1] == '{' {
			if lit.Len() > 0 {
				node.Parts = append(node.Parts, ast.TemplatePart{Lit: lit.String()})
				lit.Reset()
			}
			depth := 1
			j := i + 2
			for j < len(body) && depth > 0 {
				switch body[j] {
				case '{':
					depth++
				case '}':
					depth--
					if depth == 0 {
						goto found
					}
				}
				j++
			}
		found:
			exprSrc := body[i+2 : j]
			subToks, subLexDiags := lexer.Lex(exprSrc)
			sub := New(subToks)
			expr := sub.parseExpression(precLowest)
			p.Diags = append(p.Diags, subLexDiags...)
			p.Diags = append(p.Diags, sub.Diags...)
			node.Parts = append(node.Parts, ast.TemplatePart{Expr: expr})
			i = j + 1
			continue
		}
		lit.WriteByte(body[i])
		i++
	}
	if lit.Len() > 0 {
		node.Parts = append(node.Parts, ast.TemplatePart{Lit: lit.String()})
	}
	node.SetPos(line, col)
	return node
}
