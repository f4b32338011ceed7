package main

import (
	"errors"
	"path/filepath"
	"testing"
)

func TestHistoryRecordAndRecall(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")

	h, err := openHistory(path)
	if err != nil {
		t.Fatalf("openHistory: %v", err)
	}
	h.Record("2 2 mul", nil)
	h.Record("div", errors.New("stack underflow"))
	if err := h.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	// A new session against the same file sees prior inputs, newest first.
	h2, err := openHistory(path)
	if err != nil {
		t.Fatalf("openHistory (reopen): %v", err)
	}
	defer h2.Close()

	if h2.sessionID == h.sessionID {
		t.Error("reopening the transcript reused the session ID")
	}

	inputs, err := h2.RecentInputs(10)
	if err != nil {
		t.Fatalf("RecentInputs: %v", err)
	}
	if len(inputs) != 2 || inputs[0] != "div" || inputs[1] != "2 2 mul" {
		t.Errorf("RecentInputs = %v, want [div, 2 2 mul]", inputs)
	}
}

func TestHistoryCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "deep", "history.db")
	h, err := openHistory(path)
	if err != nil {
		t.Fatalf("openHistory: %v", err)
	}
	h.Close()
}
