package main

import "testing"

func TestRootCommandRegistersSubcommands(t *testing.T) {
	cmd := newRootCommand()

	names := make(map[string]bool)
	for _, sub := range cmd.Commands() {
		names[sub.Name()] = true
	}
	for _, want := range []string{"run", "config"} {
		if !names[want] {
			t.Errorf("missing subcommand %q", want)
		}
	}
}
