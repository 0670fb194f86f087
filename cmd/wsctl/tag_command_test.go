package main

import (
	"bytes"
	"strings"
	"testing"
)

func TestTagCommand(t *testing.T) {
	cmd := newRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"tag", "Miracle.Man.S01E03.720p.CZ.titulky.mkv"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	for _, want := range []string{"CZ titulky", "S01E03", "Miracle Man", "720p"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q:\n%s", want, out.String())
		}
	}
}

func TestResolveCommandValidatesType(t *testing.T) {
	cmd := newRootCommand()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"resolve", "--name", "x", "--type", "channel", "--token", "t"})

	if err := cmd.Execute(); err == nil {
		t.Fatal("expected an error for an unknown type")
	}
}
