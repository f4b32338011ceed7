// Package vm implements the gluumy execution core.
//
// This package contains:
//   - Immutable tagged runtime objects and their arithmetic
//   - The Store: an operand stack of shared object handles
//   - Words, vocabularies, and the active search order
//   - The Runtime dispatch loop (Feed)
//
// A Runtime is single-threaded: it must not be shared across goroutines
// without external synchronization.
package vm
