// Command lea is the thin host for the Lea interpreter: it either runs a
// source file or drops into the REPL. Grounded on the teacher's
// main/main.go dispatch (flags, file mode, REPL mode), with server mode
// and the language-server dispatch dropped since the network REPL
// server and LSP are explicitly out of scope for this implementation.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/leadotlang/lea"
	"github.com/leadotlang/lea/repl"
)

const (
	version = "v0.1.0"
	author  = "the Lea project"
	license = "MIT"
	prompt  = "lea >>> "
	line    = "----------------------------------------------------------------"
	banner  = `
   __
  / /  ___ ___ _
 / /__/ -_) _ ` + "`" + `/
/____/\__/\_,_/
`
)

var (
	redColor    = color.New(color.FgRed)
	cyanColor   = color.New(color.FgCyan)
	yellowColor = color.New(color.FgYellow)
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			return
		case "--version", "-v":
			showVersion()
			return
		default:
			runFile(os.Args[1])
			return
		}
	}

	repl.New(banner, version, author, line, license, prompt).Start(os.Stdout)
}

func runFile(path string) {
	val, diags := lea.RunFile(path)
	if len(diags) > 0 {
		for _, d := range diags {
			redColor.Fprintf(os.Stderr, "%s\n", d)
		}
		os.Exit(1)
	}
	yellowColor.Fprintf(os.Stdout, "%s\n", val.String())
}

func showHelp() {
	cyanColor.Println("Lea - a pipe-oriented scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	yellowColor.Println("  lea                   Start interactive REPL mode")
	yellowColor.Println("  lea <path-to-file>    Execute a Lea file (.lea)")
	yellowColor.Println("  lea --help            Display this help message")
	yellowColor.Println("  lea --version         Display version information")
}

func showVersion() {
	cyanColor.Println("Lea - a pipe-oriented scripting language")
	cyanColor.Printf("Version: %s\n", version)
	cyanColor.Printf("License: %s\n", license)
}
