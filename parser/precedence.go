package parser

import "github.com/leadotlang/lea/token"

// Precedence levels, lowest to highest, straight out of §4.2's table.
// Grounded on the teacher's int-constant precedence ladder
// (parser/parser_precedence.go) — higher binds tighter. Early-return `<-`
// is statement-level in Lea and is parsed in parseStatement, not here.
const (
	_ int = iota
	precLowest
	precAssign   // a = expr (right-associative)
	precTernary  // cond ? a : b
	precNullCo   // ??
	precLogical  // or, and
	precEquality // == !=
	precCompare  // < > <= >=
	precRange    // ..
	precAdditive // + - ++
	precMultiply // * / % divInt mod
	precPipe     // pipe family
	precUnary    // - not await
	precCall     // call / index / member (postfix)
)

var precedences = map[token.Kind]int{
	token.ASSIGN:     precAssign,
	token.NULLCO:     precNullCo,
	token.OR:         precLogical,
	token.AND:        precLogical,
	token.EQ:         precEquality,
	token.NEQ:        precEquality,
	token.LT:         precCompare,
	token.GT:         precCompare,
	token.LE:         precCompare,
	token.GE:         precCompare,
	token.RANGE:      precRange,
	token.PLUS:       precAdditive,
	token.MINUS:      precAdditive,
	token.CONCAT:     precAdditive,
	token.STAR:       precMultiply,
	token.SLASH:      precMultiply,
	token.PERCENT:    precMultiply,
	token.DIVINT:     precMultiply,
	token.MODKW:      precMultiply,
	token.PIPEFWD:    precPipe,
	token.PIPESPREAD: precPipe,
	token.PIPEPAR:    precPipe,
	token.PIPEREV:    precPipe,
	token.PIPECOMP:   precPipe,
	token.PIPETAP:    precPipe,
	token.QUESTION:   precTernary,
	token.LPAREN:     precCall,
	token.LBRACKET:   precCall,
	token.DOT:        precCall,
}

func isPipeKind(k token.Kind) bool {
	switch k {
	case token.PIPEFWD, token.PIPESPREAD, token.PIPEPAR, token.PIPEREV, token.PIPECOMP, token.PIPETAP:
		return true
	}
	return false
}

func (p *Parser) peekPrecedence() int {
	if pr, ok := precedences[p.peek.Kind]; ok {
		return pr
	}
	return precLowest
}

func (p *Parser) currPrecedence() int {
	if pr, ok := precedences[p.curr.Kind]; ok {
		return pr
	}
	return precLowest
}
