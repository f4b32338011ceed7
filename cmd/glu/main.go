// Gluumy CLI - the main entry point for running gluumy programs
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/tliron/commonlog"

	"github.com/chazu/gluumy/manifest"
	"github.com/chazu/gluumy/vm"

	_ "github.com/tliron/commonlog/simple"
)

var log = commonlog.GetLogger("glu")

func main() {
	verbose := flag.Bool("v", false, "Verbose output")
	evalLine := flag.String("e", "", "Evaluate one line of tokens and print the stack")
	noHistory := flag.Bool("no-history", false, "Disable the REPL transcript store")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: glu [options] [files...]\n\n")
		fmt.Fprintf(os.Stderr, "Starts the gluumy runtime. With no arguments, runs an interactive REPL.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nExamples:\n")
		fmt.Fprintf(os.Stderr, "  glu                    # Start REPL\n")
		fmt.Fprintf(os.Stderr, "  glu -e \"2 2 mul\"       # Evaluate one line, print the stack\n")
		fmt.Fprintf(os.Stderr, "  glu script.glu         # Feed a file's tokens in order\n")
	}
	flag.Parse()

	m, err := manifest.FindAndLoad(".")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading gluumy.toml: %v\n", err)
		os.Exit(1)
	}
	configureLogging(m, *verbose)

	rt := vm.NewRuntimeWith(m.RuntimeOptions())

	if *evalLine != "" {
		if err := feedTokens(rt, tokenize(*evalLine)); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		printStack(rt)
		return
	}

	if paths := flag.Args(); len(paths) > 0 {
		for _, path := range paths {
			if err := feedFile(rt, path); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		return
	}

	runREPL(rt, m, *noHistory)
}

// configureLogging maps the manifest log level and the -v flag onto
// commonlog verbosity.
func configureLogging(m *manifest.Manifest, verbose bool) {
	verbosity := 0
	switch m.Log.Level {
	case "info":
		verbosity = 1
	case "debug":
		verbosity = 2
	}
	if verbose && verbosity < 2 {
		verbosity = 2
	}
	commonlog.Configure(verbosity, nil)
}

// feedFile tokenizes one source file and feeds every token in order.
// A leading hash-bang line is skipped.
func feedFile(rt *vm.Runtime, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return &vm.InternalError{Err: err}
	}
	log.Debugf("feeding %s", path)
	return feedTokens(rt, fileTokens(data))
}

func feedTokens(rt *vm.Runtime, tokens []string) error {
	for _, tok := range tokens {
		if err := rt.Feed(tok); err != nil {
			return fmt.Errorf("feeding %q: %w", tok, err)
		}
	}
	return nil
}

// printStack prints the Store top-down, one item per line.
func printStack(rt *vm.Runtime) {
	depth := rt.Store.Len()
	if depth == 0 {
		fmt.Println("(stack empty)")
		return
	}
	for n := 0; n < depth; n++ {
		h, err := rt.Store.PeekN(n)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading stack: %v\n", err)
			return
		}
		fmt.Printf("%3d: %s (%s)\n", n, h, h.Kind())
	}
}
