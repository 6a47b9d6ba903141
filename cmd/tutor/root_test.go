package main

import (
	"sort"
	"strings"
	"testing"
)

func TestRootCommands(t *testing.T) {
	root := newRootCmd()

	var names []string
	for _, c := range root.Commands() {
		names = append(names, c.Name())
	}
	sort.Strings(names)

	want := "chat,import,seed,serve,telegram"
	if got := strings.Join(names, ","); got != want {
		t.Errorf("commands = %s, want %s", got, want)
	}

	imp, _, err := root.Find([]string{"import", "manifest"})
	if err != nil {
		t.Fatalf("Find(import manifest) error = %v", err)
	}
	if imp.Name() != "manifest" {
		t.Errorf("Find(import manifest) = %s", imp.Name())
	}
}

func TestSeedRequiresDirectory(t *testing.T) {
	root := newRootCmd()
	root.SetArgs([]string{"seed"})
	root.SilenceErrors = true

	if err := root.Execute(); err == nil {
		t.Error("seed without a directory error = nil, want error")
	}
}
