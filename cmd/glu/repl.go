package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/peterh/liner"

	"github.com/chazu/gluumy/image"
	"github.com/chazu/gluumy/manifest"
	"github.com/chazu/gluumy/vm"
)

// runREPL starts an interactive read-eval-print loop
func runREPL(rt *vm.Runtime, m *manifest.Manifest, noHistory bool) {
	fmt.Println("gluumy REPL (type 'exit' to quit, ':help' for commands)")
	fmt.Println()

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	hist := openReplHistory(m, noHistory)
	if hist != nil {
		defer hist.Close()
		seedLinerHistory(ln, hist)
	}

	for {
		line, err := ln.Prompt(">> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			fmt.Printf("Read error: %v\n", err)
			break
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}
		ln.AppendHistory(input)

		if input == "exit" || input == "quit" {
			break
		}

		if strings.HasPrefix(input, ":") {
			rt = handleReplCommand(rt, m, input)
			continue
		}

		feedErr := feedTokens(rt, tokenize(input))
		if feedErr != nil {
			fmt.Printf("Error: %v\n", feedErr)
		}
		if hist != nil {
			hist.Record(input, feedErr)
		}
	}
}

// openReplHistory resolves the transcript path from the manifest and opens
// the store, degrading to nil on any failure.
func openReplHistory(m *manifest.Manifest, noHistory bool) *History {
	if noHistory || m.Repl.History == "off" {
		return nil
	}
	path := m.Repl.History
	if path == "" {
		var err error
		path, err = defaultHistoryPath()
		if err != nil {
			log.Warningf("history disabled: %v", err)
			return nil
		}
	}
	hist, err := openHistory(path)
	if err != nil {
		log.Warningf("history disabled: %v", err)
		return nil
	}
	log.Debugf("history session %s at %s", hist.sessionID, path)
	return hist
}

// seedLinerHistory preloads the line editor with recent transcript inputs.
func seedLinerHistory(ln *liner.State, hist *History) {
	inputs, err := hist.RecentInputs(100)
	if err != nil {
		log.Warningf("history: %v", err)
		return
	}
	// AppendHistory wants oldest first.
	for i := len(inputs) - 1; i >= 0; i-- {
		ln.AppendHistory(inputs[i])
	}
}

// handleReplCommand handles REPL meta-commands. It returns the runtime to
// continue with, which :load and :reset replace.
func handleReplCommand(rt *vm.Runtime, m *manifest.Manifest, cmd string) *vm.Runtime {
	name, arg, _ := strings.Cut(cmd, " ")
	arg = strings.TrimSpace(arg)

	switch name {
	case ":help", ":h", ":?":
		fmt.Println("REPL Commands:")
		fmt.Println("  :help, :h, :?     Show this help")
		fmt.Println("  :stack            Print the stack, top first")
		fmt.Println("  :words            List resolvable words per vocabulary")
		fmt.Println("  :save PATH        Write a snapshot image of this session")
		fmt.Println("  :load PATH        Replace this session with a snapshot image")
		fmt.Println("  :reset            Start a fresh runtime")
		fmt.Println("  exit, quit        Exit REPL")
	case ":stack":
		printStack(rt)
	case ":words":
		printWords(rt)
	case ":save":
		if arg == "" {
			fmt.Println("Usage: :save PATH")
			break
		}
		img, err := image.Snapshot(rt)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			break
		}
		if err := image.SaveFile(arg, img); err != nil {
			fmt.Printf("Error: %v\n", err)
			break
		}
		fmt.Printf("Saved %s\n", arg)
	case ":load":
		if arg == "" {
			fmt.Println("Usage: :load PATH")
			break
		}
		img, err := image.LoadFile(arg)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			break
		}
		restored, err := image.Restore(img)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			break
		}
		fmt.Printf("Loaded %s\n", arg)
		return restored
	case ":reset":
		fmt.Println("Runtime reset")
		return vm.NewRuntimeWith(m.RuntimeOptions())
	default:
		fmt.Printf("Unknown command: %s (type :help for commands)\n", cmd)
	}
	return rt
}

// printWords lists resolvable identifiers, one vocabulary per block, in
// search order.
func printWords(rt *vm.Runtime) {
	for _, name := range rt.Vocabularies.SearchOrder() {
		voc, ok := rt.Vocabularies.Get(name)
		if !ok {
			continue
		}
		fmt.Printf("%s:\n", name)
		for _, id := range voc.Identifiers() {
			fmt.Printf("  %s %s\n", id, voc.Resolve(id))
		}
	}
}
