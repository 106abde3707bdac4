package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/leadotlang/lea/token"
)

type kindLexeme struct {
	kind   token.Kind
	lexeme string
}

func kinds(toks []token.Token) []kindLexeme {
	out := make([]kindLexeme, 0, len(toks))
	for _, t := range toks {
		if t.Kind == token.NEWLINE {
			continue
		}
		out = append(out, kindLexeme{t.Kind, t.Lexeme})
	}
	return out
}

func TestLex_ArithmeticAndPunctuation(t *testing.T) {
	toks, diags := Lex(`1 + 2 * (3 - 4)`)
	assert.Empty(t, diags)
	assert.Equal(t, []kindLexeme{
		{token.INT, "1"}, {token.PLUS, "+"}, {token.INT, "2"}, {token.STAR, "*"},
		{token.LPAREN, "("}, {token.INT, "3"}, {token.MINUS, "-"}, {token.INT, "4"},
		{token.RPAREN, ")"}, {token.EOF, ""},
	}, kinds(toks))
}

func TestLex_PipeFamilyLongestMatch(t *testing.T) {
	toks, diags := Lex(`x /> f /> y />>> g \> h </ i </> j @> k`)
	assert.Empty(t, diags)
	got := kinds(toks)
	var pipes []token.Kind
	for _, k := range got {
		switch k.kind {
		case token.PIPEFWD, token.PIPESPREAD, token.PIPEPAR, token.PIPEREV, token.PIPECOMP, token.PIPETAP:
			pipes = append(pipes, k.kind)
		}
	}
	assert.Equal(t, []token.Kind{
		token.PIPEFWD, token.PIPEFWD, token.PIPESPREAD, token.PIPEPAR,
		token.PIPEREV, token.PIPECOMP, token.PIPETAP,
	}, pipes)
}

func TestLex_Keywords(t *testing.T) {
	toks, _ := Lex(`let maybe if else match return await context provide true false null input use and or not`)
	got := kinds(toks)
	want := []token.Kind{
		token.LET, token.MAYBE, token.IF, token.ELSE, token.MATCH, token.RETURN,
		token.AWAIT, token.CONTEXT, token.PROVIDE, token.TRUE, token.FALSE,
		token.NULL, token.INPUT, token.USE, token.AND, token.OR, token.NOT, token.EOF,
	}
	for i, w := range want {
		assert.Equal(t, w, got[i].kind)
	}
}

func TestLex_StringEscapes(t *testing.T) {
	toks, diags := Lex(`"a\nb\u{1F600}"`)
	assert.Empty(t, diags)
	assert.Equal(t, token.STRING, toks[0].Kind)
	assert.Contains(t, toks[0].Lexeme, "\n")
}

func TestLex_UnterminatedStringIsRecoverableLexError(t *testing.T) {
	toks, diags := Lex("\"abc")
	assert.NotEmpty(t, diags)
	assert.Equal(t, "Lex", string(diags[0].Kind))
	assert.Equal(t, token.EOF, toks[len(toks)-1].Kind)
}

func TestLex_LineCommentsAndBlockLabels(t *testing.T) {
	toks, diags := Lex("1 -- trailing comment\n{-- a label --} 2")
	assert.Empty(t, diags)
	got := kinds(toks)
	assert.Equal(t, token.INT, got[0].kind)
	assert.Equal(t, "1", got[0].lexeme)
	assert.Equal(t, token.INT, got[1].kind)
	assert.Equal(t, "2", got[1].lexeme)
}

func TestLex_FloatsWithExponent(t *testing.T) {
	toks, diags := Lex(`3.14 1e10 2.5e-3`)
	assert.Empty(t, diags)
	assert.Equal(t, token.FLOAT, toks[0].Kind)
	assert.Equal(t, token.FLOAT, toks[1].Kind)
	assert.Equal(t, token.FLOAT, toks[2].Kind)
}

func TestLex_UnknownCharacterRecoversAndContinues(t *testing.T) {
	toks, diags := Lex("1 $ 2")
	assert.Len(t, diags, 1)
	got := kinds(toks)
	assert.Equal(t, token.INT, got[0].kind)
	assert.Equal(t, token.ILLEGAL, got[1].kind)
	assert.Equal(t, token.INT, got[2].kind)
}
