package core

import (
	"strings"
	"testing"
)

func TestCommandRegistry(t *testing.T) {
	registry := NewCommandRegistry()

	var got []string
	registry.Register("nvm get", "<type> <key>", func(args []string) (string, error) {
		got = args
		return "42", nil
	})

	cmd, ok := registry.GetCommand("nvm get")
	if !ok {
		t.Fatal("Failed to retrieve registered command")
	}
	if cmd.Usage != "<type> <key>" {
		t.Errorf("Expected usage '<type> <key>', got '%s'", cmd.Usage)
	}

	reply, err := registry.Dispatch("nvm get u16 4")
	if err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if reply != "42" {
		t.Errorf("Expected reply '42', got '%s'", reply)
	}
	if len(got) != 2 || got[0] != "u16" || got[1] != "4" {
		t.Errorf("Unexpected args: %v", got)
	}

	if _, err := registry.Dispatch("bogus"); err != ErrUnknownCommand {
		t.Errorf("Expected ErrUnknownCommand, got %v", err)
	}
	if _, err := registry.Dispatch("   "); err != ErrEmptyCommand {
		t.Errorf("Expected ErrEmptyCommand, got %v", err)
	}
}

func TestCommandRegistryQuotedArgs(t *testing.T) {
	registry := NewCommandRegistry()

	var got []string
	registry.Register("nvm sets", "<key> <max> <text>", func(args []string) (string, error) {
		got = args
		return "", nil
	})

	if _, err := registry.Dispatch(`nvm sets 0 16 "hello world"`); err != nil {
		t.Fatalf("Dispatch failed: %v", err)
	}
	if len(got) != 3 || got[2] != "hello world" {
		t.Errorf("Quoted argument not preserved: %q", got)
	}
}

func TestCommandRegistryOneWordFallback(t *testing.T) {
	registry := NewCommandRegistry()

	called := ""
	registry.Register("timers", "", func(args []string) (string, error) {
		called = "timers"
		return "", nil
	})
	registry.Register("timer cancel", "<slot>", func(args []string) (string, error) {
		called = "timer cancel"
		return "", nil
	})

	registry.Dispatch("timers extra")
	if called != "timers" {
		t.Errorf("Expected one-word command, got %q", called)
	}
	registry.Dispatch("timer cancel 3")
	if called != "timer cancel" {
		t.Errorf("Expected two-word command, got %q", called)
	}
}

func TestCommandRegistryHelp(t *testing.T) {
	registry := NewCommandRegistry()
	noop := func(args []string) (string, error) { return "", nil }

	registry.Register("trace", "", noop)
	registry.Register("nvm get", "<type> <key>", noop)
	registry.Register("nvm get", "ignored", noop)

	if registry.Count() != 2 {
		t.Fatalf("Expected 2 commands, got %d", registry.Count())
	}
	help := registry.Help()
	if strings.Join(help, "|") != "nvm get <type> <key>|trace" {
		t.Errorf("Unexpected help: %v", help)
	}
}

func TestSplitLine(t *testing.T) {
	tokens, err := SplitLine("  nvm sets 0 8 \"a b\"  ")
	if err != nil {
		t.Fatalf("SplitLine failed: %v", err)
	}
	want := []string{"nvm", "sets", "0", "8", "a b"}
	if strings.Join(tokens, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, tokens)
	}

	if _, err := SplitLine(`nvm sets 0 8 "open`); err == nil {
		t.Error("Expected an error for an unclosed quote")
	}
}

func TestItoa(t *testing.T) {
	cases := map[int]string{0: "0", 7: "7", -42: "-42", 1000000: "1000000"}
	for n, want := range cases {
		if got := itoa(n); got != want {
			t.Errorf("itoa(%d) = %q, want %q", n, got, want)
		}
	}
	if got := Utoa(18446744073709551615); got != "18446744073709551615" {
		t.Errorf("Utoa(max) = %q", got)
	}
}
