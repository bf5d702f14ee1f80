package cli

import (
	"testing"

	"go.redcode.dev/mars/core"
)

func TestParseBasicPositional(t *testing.T) {
	a, err := Parse([]string{"0", "imp.red", "4000", "dwarf.red", "1"})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if a.Preset != core.ICWS94 {
		t.Fatalf("Preset = %v, want ICWS94 default", a.Preset)
	}
	if a.Base1 != 0 || a.Warrior1 != "imp.red" || a.Base2 != 4000 || a.Warrior2 != "dwarf.red" || a.Rounds != 1 {
		t.Fatalf("unexpected Args: %+v", a)
	}
}

func TestParsePresetFlagBothForms(t *testing.T) {
	for _, argv := range [][]string{
		{"-preset", "debug", "0", "imp.red", "20", "dwarf.red", "3"},
		{"-preset=debug", "0", "imp.red", "20", "dwarf.red", "3"},
	} {
		a, err := Parse(argv)
		if err != nil {
			t.Fatalf("Parse(%v): %v", argv, err)
		}
		if a.Preset != core.Debug {
			t.Fatalf("Preset = %v, want Debug", a.Preset)
		}
	}
}

func TestParseRejectsUnknownFlag(t *testing.T) {
	_, err := Parse([]string{"-bogus", "0", "imp.red", "4000", "dwarf.red", "1"})
	if err == nil {
		t.Fatalf("expected an error for an unknown flag")
	}
}

func TestParseRejectsWrongArgCount(t *testing.T) {
	_, err := Parse([]string{"0", "imp.red"})
	if err == nil {
		t.Fatalf("expected an error for too few positional arguments")
	}
}

func TestParseRejectsZeroRounds(t *testing.T) {
	_, err := Parse([]string{"0", "imp.red", "4000", "dwarf.red", "0"})
	if err == nil {
		t.Fatalf("expected an error for rounds < 1")
	}
}
