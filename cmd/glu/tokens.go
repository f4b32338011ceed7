package main

import (
	"strings"
)

// tokenize splits a line into whitespace/tab/newline-delimited tokens, the
// minimum token-source contract the runtime relies on.
func tokenize(line string) []string {
	return strings.Fields(line)
}

// fileTokens tokenizes a whole source file, skipping a leading hash-bang
// line so executable scripts can name their interpreter.
func fileTokens(data []byte) []string {
	text := string(data)
	if strings.HasPrefix(text, "#!") {
		if i := strings.IndexByte(text, '\n'); i >= 0 {
			text = text[i+1:]
		} else {
			text = ""
		}
	}
	return strings.Fields(text)
}
