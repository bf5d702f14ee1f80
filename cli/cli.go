// Package cli parses the mars/marsview command line, by hand, in the
// same manual os.Args-scanning style as cli/cli.go's parse, which never
// reaches for the flag package — the positional-plus-one-flag surface
// here doesn't need one either.
package cli

import (
	"fmt"
	"strconv"
	"strings"

	"go.redcode.dev/mars/core"
)

// Args is the parsed command line for mars/marsview:
//
//	mars [-preset icws94|icws86|debug] <base1> <warrior1.red> <base2> <warrior2.red> <rounds>
type Args struct {
	Preset   core.Preset
	Base1    int
	Warrior1 string
	Base2    int
	Warrior2 string
	Rounds   int
}

// Parse scans argv (conventionally os.Args[1:]) into Args.
func Parse(argv []string) (Args, error) {
	a := Args{Preset: core.ICWS94}

	var positional []string
	for i := 0; i < len(argv); i++ {
		arg := argv[i]

		if arg == "-preset" && i+1 < len(argv) {
			p, err := parsePreset(argv[i+1])
			if err != nil {
				return Args{}, err
			}
			a.Preset = p
			i++
			continue
		}
		if rest, ok := strings.CutPrefix(arg, "-preset="); ok {
			p, err := parsePreset(rest)
			if err != nil {
				return Args{}, err
			}
			a.Preset = p
			continue
		}

		if strings.HasPrefix(arg, "-") {
			return Args{}, fmt.Errorf("cli: unknown flag %q", arg)
		}
		positional = append(positional, arg)
	}

	if len(positional) != 5 {
		return Args{}, fmt.Errorf("cli: want 5 positional arguments "+
			"(base1 warrior1 base2 warrior2 rounds), got %d", len(positional))
	}

	base1, err := strconv.Atoi(positional[0])
	if err != nil {
		return Args{}, fmt.Errorf("cli: invalid base1 %q: %w", positional[0], err)
	}
	base2, err := strconv.Atoi(positional[2])
	if err != nil {
		return Args{}, fmt.Errorf("cli: invalid base2 %q: %w", positional[2], err)
	}
	rounds, err := strconv.Atoi(positional[4])
	if err != nil {
		return Args{}, fmt.Errorf("cli: invalid rounds %q: %w", positional[4], err)
	}
	if rounds < 1 {
		return Args{}, fmt.Errorf("cli: rounds must be at least 1, got %d", rounds)
	}

	a.Base1 = base1
	a.Warrior1 = positional[1]
	a.Base2 = base2
	a.Warrior2 = positional[3]
	a.Rounds = rounds
	return a, nil
}

func parsePreset(s string) (core.Preset, error) {
	switch strings.ToUpper(s) {
	case "ICWS94":
		return core.ICWS94, nil
	case "ICWS86":
		return core.ICWS86, nil
	case "DEBUG":
		return core.Debug, nil
	default:
		return 0, fmt.Errorf("cli: unknown preset %q (want icws94, icws86 or debug)", s)
	}
}
