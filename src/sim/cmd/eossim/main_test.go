package main

import (
	"io"
	"strings"
	"testing"

	"golang.org/x/term"

	"eos/src/boot/stage2"
)

func TestLEDPlainRendering(t *testing.T) {
	// after the first phase green is lit: its pin is the low one
	level := stage2.Phases[0].Set
	if got := led(nil, "green", level, stage2.GreenPin); got != " [green]" {
		t.Errorf("expected lit green, got %q", got)
	}
	if got := led(nil, "red", level, stage2.RedPin); got != " red" {
		t.Errorf("expected dark red, got %q", got)
	}
}

func TestLEDColourRendering(t *testing.T) {
	var sink strings.Builder
	tm := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{strings.NewReader(""), &sink}, "")
	got := led(tm.Escape, "orange", stage2.Phases[1].Set, stage2.OrangePin)
	want := " " + string(tm.Escape.Yellow) + "orange" + string(tm.Escape.Reset)
	if got != want {
		t.Errorf("expected %q but got %q", want, got)
	}
}

func TestWaitHalterWithoutTerminal(t *testing.T) {
	// must not block when nobody can quit
	waitHalter{}.Halt()

	q := make(chan struct{})
	close(q)
	waitHalter{quit: q}.Halt()
}
