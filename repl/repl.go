// Package repl implements Lea's Read-Eval-Print Loop.
//
// Grounded on the teacher's repl/repl.go: a banner-printing Repl struct
// driven by chzyer/readline for line editing and history, with
// fatih/color used to distinguish prompts, results, and errors. The
// teacher evaluates one line at a time against a fresh parser per line;
// Lea's grammar allows multi-statement blocks to span lines (function
// bodies, match arms), so this REPL instead accumulates input until the
// parser reports a clean parse or a real syntax error.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/leadotlang/lea/diagnostic"
	"github.com/leadotlang/lea/eval"
	"github.com/leadotlang/lea/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl is an interactive Lea session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given banner chrome.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

// PrintBannerInfo writes the startup banner and usage hints to writer.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to Lea!")
	cyanColor.Fprintf(writer, "%s\n", "Type an expression and press enter; blank line cancels a pending block.")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL main loop, sharing one Evaluator (and so one
// global frame and context registry) across the whole session.
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	evaluator := eval.New(eval.WithOutput(writer))

	var pending strings.Builder
	for {
		prompt := r.Prompt
		if pending.Len() > 0 {
			prompt = "... "
		}
		rl.SetPrompt(prompt)

		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		trimmed := strings.TrimRight(line, " \t\r")
		if pending.Len() == 0 {
			switch strings.TrimSpace(trimmed) {
			case ".exit":
				writer.Write([]byte("Good Bye!\n"))
				return
			case "":
				continue
			}
		} else if strings.TrimSpace(trimmed) == "" {
			pending.Reset()
			continue
		}

		if pending.Len() > 0 {
			pending.WriteByte('\n')
		}
		pending.WriteString(trimmed)
		rl.SaveHistory(trimmed)

		source := pending.String()
		prog, diags := parser.Parse(source)
		if len(diags) > 0 && isIncomplete(diags) {
			continue // wait for more lines
		}
		pending.Reset()

		if len(diags) > 0 {
			for _, d := range diags {
				redColor.Fprintf(writer, "%s\n", d)
			}
			continue
		}

		result, runErr := evaluator.Run(prog)
		if runErr != nil {
			redColor.Fprintf(writer, "%s\n", runErr)
			continue
		}
		yellowColor.Fprintf(writer, "%s\n", result.String())
	}
}

// isIncomplete reports whether diags look like "ran out of input"
// rather than a genuine syntax error, so the REPL can keep reading
// lines for an open block, list, or record instead of failing.
func isIncomplete(diags []*diagnostic.Diagnostic) bool {
	if len(diags) == 0 {
		return false
	}
	last := diags[len(diags)-1]
	return strings.Contains(last.Message, "got EOF")
}
