// remy: RemyLang runner and REPL.
//
//	remy                 start the REPL
//	remy file.remy       run a script (lex -> parse -> check -> execute)
//	remy -tokens file    dump the token stream
//	remy -check file     stop after type checking
//	remy -backend=n file compile via a registered backend
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/peterh/liner"

	remylang "github.com/SamuelBleau/RemyLang"
)

const (
	appName     = "remy"
	historyFile = ".remylang_history"
	promptMain  = ">>> "
	promptCont  = "... "
)

var banner = fmt.Sprintf("RemyLang %s REPL\nCtrl+C cancels input, Ctrl+D exits. Type :quit to exit.", remylang.Version)

func red(s string) string { return "\x1b[31m" + s + "\x1b[0m" }

func main() {
	tokens := flag.Bool("tokens", false, "dump the token stream and exit")
	checkOnly := flag.Bool("check", false, "stop after type checking")
	backend := flag.String("backend", "", "compile with the named backend instead of interpreting")
	version := flag.Bool("version", false, "print the version and exit")
	flag.Usage = usage
	flag.Parse()

	if *version {
		fmt.Println(remylang.Version)
		return
	}

	if flag.NArg() == 0 {
		if *tokens || *checkOnly || *backend != "" {
			fmt.Fprintf(os.Stderr, "%s: -tokens, -check and -backend require a file\n", appName)
			os.Exit(2)
		}
		os.Exit(repl())
	}

	file := flag.Arg(0)
	src, err := os.ReadFile(file)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot read %s: %v\n", appName, file, err)
		os.Exit(1)
	}

	os.Exit(runSource(string(src), file, *tokens, *checkOnly, *backend))
}

func usage() {
	fmt.Fprintf(os.Stderr, `RemyLang %s

Usage:
  %s                    Start the REPL.
  %s <file.remy>        Run a script.
  %s -tokens <file>     Dump the token stream.
  %s -check <file>      Type-check only.
  %s -backend=<name> <file>
                        Compile with a registered backend.
  %s -version           Print the version.
`, remylang.Version, appName, appName, appName, appName, appName, appName)
}

// runSource drives the phases in order; the first failing phase terminates
// the run with a rendered diagnostic.
func runSource(src, name string, dumpTokens, checkOnly bool, backendName string) int {
	toks, err := remylang.NewLexer(src).Scan()
	if err != nil {
		fmt.Fprintln(os.Stderr, remylang.WrapErrorWithName(err, name, src).Error())
		return 1
	}

	if dumpTokens {
		for _, tok := range toks {
			fmt.Printf("%d:%d\t%s\n", tok.Line, tok.Col, tok)
		}
		return 0
	}

	stmts, err := remylang.NewParser(toks).Parse()
	if err != nil {
		fmt.Fprintln(os.Stderr, remylang.WrapErrorWithName(err, name, src).Error())
		return 1
	}

	if errs := remylang.NewChecker().Check(stmts); len(errs) > 0 {
		for _, te := range errs {
			fmt.Fprintln(os.Stderr, te.Error())
		}
		return 1
	}
	if checkOnly {
		return 0
	}

	if backendName != "" {
		return compileWith(backendName, name, stmts)
	}

	if err := remylang.NewInterpreter().Execute(stmts); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

func compileWith(backendName, srcName string, stmts []remylang.Stmt) int {
	b, ok := remylang.LookupBackend(backendName)
	if !ok {
		known := strings.Join(remylang.BackendNames(), ", ")
		if known == "" {
			known = "none"
		}
		fmt.Fprintf(os.Stderr, "%s: unknown backend %q (registered: %s)\n", appName, backendName, known)
		return 2
	}
	artifact, err := b.Compile(stmts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", appName, backendName, err)
		return 1
	}
	out := strings.TrimSuffix(srcName, filepath.Ext(srcName)) + ".o"
	if err := os.WriteFile(out, artifact, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "%s: cannot write %s: %v\n", appName, out, err)
		return 1
	}
	fmt.Println(out)
	return 0
}

// -----------------------------------------------------------------------------
// repl
// -----------------------------------------------------------------------------

func repl() int {
	fmt.Println(banner)

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	sigc := make(chan os.Signal, 1)
	signal.Notify(sigc, os.Interrupt, syscall.SIGTERM, syscall.SIGHUP)
	defer signal.Stop(sigc)
	go func() {
		<-sigc
		ln.Close()
		os.Exit(130)
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	// Declarations persist across inputs: one checker, one interpreter.
	checker := remylang.NewChecker()
	ip := remylang.NewInterpreter()

	for {
		code, ok := readByParseProbe(ln, promptMain, promptCont)
		if !ok {
			fmt.Println()
			return 0
		}

		trimmed := strings.TrimSpace(code)
		if strings.HasPrefix(trimmed, ":") {
			switch strings.ToLower(trimmed) {
			case ":quit":
				return 0
			default:
				fmt.Printf("unknown command. Type :quit to exit.\n")
			}
			continue
		}
		if trimmed == "" {
			continue
		}

		stmts, err := remylang.ParseSource(code)
		if err != nil {
			fmt.Fprintln(os.Stderr, red(remylang.WrapErrorWithSource(err, code).Error()))
			continue
		}
		if errs := checker.Check(stmts); len(errs) > 0 {
			for _, te := range errs {
				fmt.Fprintln(os.Stderr, red(te.Error()))
			}
			continue
		}
		if err := ip.Execute(stmts); err != nil {
			fmt.Fprintln(os.Stderr, red(err.Error()))
			continue
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}
}

// readByParseProbe reads lines until the accumulated input parses, or fails
// with an error that more input cannot fix.
func readByParseProbe(ln *liner.State, prompt, cont string) (string, bool) {
	var b strings.Builder

	for {
		var line string
		var err error
		if b.Len() == 0 {
			line, err = ln.Prompt(prompt)
		} else {
			line, err = ln.Prompt(cont)
		}
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if err != nil {
			return "", true
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		_, perr := remylang.ParseSource(src)
		if perr == nil {
			return src, true
		}
		if remylang.IsIncomplete(perr) {
			continue
		}
		return src, true
	}
}
