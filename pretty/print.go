// Package pretty unparses a Lea ast.Program back to source text, used to
// check SPEC_FULL.md's parse/unparse idempotence property: parsing the
// output of Print should reproduce a syntactically equivalent tree.
//
// Grounded on the teacher's PrintingVisitor (main/print_visitor.go): a
// bytes.Buffer accumulated through an indent-tracking walk with a final
// String() method. Lea's ast package rejected the teacher's Visitor
// interface in favor of type-switches (see ast/ast.go's package doc), so
// this walk switches on concrete node type instead of double-dispatching.
package pretty

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/leadotlang/lea/ast"
	"github.com/leadotlang/lea/token"
)

const indentSize = 2

// Printer renders an ast.Program (or any Node) back into Lea source text.
type Printer struct {
	indent int
	buf    bytes.Buffer
}

// Print renders prog as Lea source text.
func Print(prog *ast.Program) string {
	p := &Printer{}
	for i, stmt := range prog.Statements {
		if i > 0 {
			p.buf.WriteByte('\n')
		}
		p.writeIndent()
		p.stmt(stmt)
	}
	return p.buf.String()
}

func (p *Printer) writeIndent() {
	p.buf.WriteString(strings.Repeat(" ", p.indent))
}

func (p *Printer) stmt(s ast.Stmt) {
	switch n := s.(type) {
	case *ast.LetStmt:
		kw := "let"
		if n.Mutable {
			kw = "maybe"
		}
		p.buf.WriteString(kw + " " + n.Name)
		if n.TypeAnn != "" {
			p.buf.WriteString(" :: " + n.TypeAnn)
		}
		p.buf.WriteString(" = ")
		p.expr(n.Value)
	case *ast.ExprStmt:
		p.expr(n.Expression)
	case *ast.ContextDefStmt:
		p.buf.WriteString("context " + n.Name)
		if n.Default != nil {
			p.buf.WriteString(" = ")
			p.expr(n.Default)
		}
	case *ast.ProvideStmt:
		p.buf.WriteString("provide " + n.Name + " ")
		p.expr(n.Value)
		if n.Scope != nil {
			p.buf.WriteString(" ")
			p.block(n.Scope)
		}
	case *ast.ReturnStmt:
		p.buf.WriteString("return")
		if n.Value != nil {
			p.buf.WriteString(" ")
			p.expr(n.Value)
		}
	default:
		fmt.Fprintf(&p.buf, "/* unknown stmt %T */", s)
	}
}

func (p *Printer) block(b *ast.BlockBody) {
	p.buf.WriteString("{\n")
	p.indent += indentSize
	for _, stmt := range b.Statements {
		p.writeIndent()
		p.stmt(stmt)
		p.buf.WriteByte('\n')
	}
	p.indent -= indentSize
	p.writeIndent()
	p.buf.WriteString("}")
}

func (p *Printer) expr(e ast.Expr) {
	switch n := e.(type) {
	case *ast.NumberLit:
		p.buf.WriteString(n.Raw)
	case *ast.StringLit:
		p.buf.WriteString(strconv.Quote(n.Value))
	case *ast.BoolLit:
		p.buf.WriteString(strconv.FormatBool(n.Value))
	case *ast.NullLit:
		p.buf.WriteString("null")
	case *ast.TemplateString:
		p.templateString(n)
	case *ast.ListLit:
		p.buf.WriteString("[")
		for i, item := range n.Items {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.expr(item)
		}
		p.buf.WriteString("]")
	case *ast.RecordLit:
		p.buf.WriteString("{")
		for i, entry := range n.Entries {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(entry.Key + ": ")
			p.expr(entry.Value)
		}
		p.buf.WriteString("}")
	case *ast.Identifier:
		p.buf.WriteString(n.Name)
	case *ast.Placeholder:
		p.buf.WriteString("_")
	case *ast.InputRef:
		p.buf.WriteString("input")
	case *ast.UnaryExpr:
		p.buf.WriteString(unaryOpText(n.Op))
		p.expr(n.Operand)
	case *ast.BinaryExpr:
		p.expr(n.Left)
		p.buf.WriteString(" " + string(n.Op) + " ")
		p.expr(n.Right)
	case *ast.TernaryExpr:
		p.expr(n.Cond)
		p.buf.WriteString(" ? ")
		p.expr(n.Then)
		p.buf.WriteString(" : ")
		p.expr(n.Else)
	case *ast.AssignExpr:
		p.expr(n.Target)
		p.buf.WriteString(" = ")
		p.expr(n.Value)
	case *ast.FunctionLit:
		p.functionLit(n)
	case *ast.CallExpr:
		p.expr(n.Callee)
		p.buf.WriteString("(")
		for i, a := range n.Args {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.expr(a)
		}
		p.buf.WriteString(")")
	case *ast.PipeExpr:
		p.expr(n.Left)
		p.buf.WriteString(" " + pipeOpText(n.Kind) + " ")
		p.expr(n.Right)
	case *ast.FanOutExpr:
		p.expr(n.Input)
		for _, stage := range n.Stages {
			p.buf.WriteString(" \\> ")
			p.expr(stage)
		}
	case *ast.IndexExpr:
		p.expr(n.Target)
		p.buf.WriteString("[")
		p.expr(n.Index)
		p.buf.WriteString("]")
	case *ast.MemberExpr:
		p.expr(n.Target)
		p.buf.WriteString("." + n.Name)
	case *ast.AwaitExpr:
		p.buf.WriteString("await ")
		p.expr(n.Inner)
	case *ast.BlockBody:
		p.block(n)
	case *ast.MatchExpr:
		p.matchExpr(n)
	default:
		fmt.Fprintf(&p.buf, "/* unknown expr %T */", e)
	}
}

func (p *Printer) templateString(n *ast.TemplateString) {
	p.buf.WriteString("`")
	for _, part := range n.Parts {
		if part.Expr != nil {
			p.buf.WriteString("${")
			p.expr(part.Expr)
			p.buf.WriteString("}")
		} else {
			p.buf.WriteString(part.Lit)
		}
	}
	p.buf.WriteString("`")
}

func (p *Printer) functionLit(n *ast.FunctionLit) {
	for _, dec := range n.Decorators {
		p.buf.WriteString("#" + dec.Name)
		if len(dec.Args) > 0 {
			p.buf.WriteString("(")
			for i, a := range dec.Args {
				if i > 0 {
					p.buf.WriteString(", ")
				}
				p.expr(a)
			}
			p.buf.WriteString(")")
		}
		p.buf.WriteString(" ")
	}
	for _, attach := range n.Attachments {
		p.buf.WriteString("@" + attach + " ")
	}
	p.buf.WriteString("(")
	for i, param := range n.Params {
		if i > 0 {
			p.buf.WriteString(", ")
		}
		p.buf.WriteString(param.Name)
		if param.TypeAnn != "" {
			p.buf.WriteString(" :: " + param.TypeAnn)
		}
		if param.Default != nil {
			p.buf.WriteString(" = ")
			p.expr(param.Default)
		}
	}
	p.buf.WriteString(")")
	if n.TypeAnn != "" {
		p.buf.WriteString(": " + n.TypeAnn)
	}
	p.buf.WriteString(" -> ")
	switch body := n.Body.(type) {
	case *ast.BlockBody:
		p.block(body)
	case ast.Expr:
		p.expr(body)
	}
}

func (p *Printer) matchExpr(n *ast.MatchExpr) {
	p.buf.WriteString("match ")
	p.expr(n.Scrutinee)
	p.buf.WriteString(" {\n")
	p.indent += indentSize
	for _, arm := range n.Arms {
		p.writeIndent()
		p.pattern(arm.Pattern)
		if arm.Guard != nil {
			p.buf.WriteString(" if ")
			p.expr(arm.Guard)
		}
		p.buf.WriteString(" -> ")
		p.expr(arm.Body)
		p.buf.WriteString(",\n")
	}
	p.indent -= indentSize
	p.writeIndent()
	p.buf.WriteString("}")
}

func (p *Printer) pattern(pat ast.Pattern) {
	switch t := pat.(type) {
	case ast.WildcardPattern:
		p.buf.WriteString("_")
	case ast.IdentPattern:
		p.buf.WriteString(t.Name)
	case ast.LiteralPattern:
		p.expr(t.Value)
	case ast.TypeTagPattern:
		p.buf.WriteString(t.Tag + "(_)")
	case ast.ListPattern:
		p.buf.WriteString("[")
		for i, el := range t.Elements {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.pattern(el)
		}
		if t.Rest != "" {
			if len(t.Elements) > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString("..." + t.Rest)
		}
		p.buf.WriteString("]")
	case ast.RecordPattern:
		p.buf.WriteString("{")
		for i, f := range t.Fields {
			if i > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString(f.Key + ": ")
			p.pattern(f.Pattern)
		}
		if t.Rest != "" {
			if len(t.Fields) > 0 {
				p.buf.WriteString(", ")
			}
			p.buf.WriteString("..." + t.Rest)
		}
		p.buf.WriteString("}")
	default:
		fmt.Fprintf(&p.buf, "/* unknown pattern %T */", pat)
	}
}

func unaryOpText(op token.Kind) string {
	if op == token.NOT {
		return "not "
	}
	return string(op)
}

func pipeOpText(kind ast.PipeKind) string {
	switch kind {
	case ast.PipeForward:
		return string(token.PIPEFWD)
	case ast.PipeSpread:
		return string(token.PIPESPREAD)
	case ast.PipeParallel:
		return string(token.PIPEPAR)
	case ast.PipeReverse:
		return string(token.PIPEREV)
	case ast.PipeCompose:
		return string(token.PIPECOMP)
	case ast.PipeTap:
		return string(token.PIPETAP)
	}
	return "?>"
}
