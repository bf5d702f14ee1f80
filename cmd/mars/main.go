// Command mars runs one or more rounds of a two-warrior Core War match
// and prints a win/loss/tie tally, grounded on cmd/corewar/main.go's
// round loop and \033[7m-highlighted dump — gated here behind a real
// terminal check (golang.org/x/term) instead of unconditional escape
// codes, and run alongside a Messages-draining goroutine
// (golang.org/x/sync/errgroup) instead of printing synchronously mid-Exec.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"go.redcode.dev/mars/cli"
	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/engine"
	"go.redcode.dev/mars/loader"
)

type tally struct {
	w1, w2, ties int
}

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "mars:", err)
		os.Exit(1)
	}
}

func run(argv []string) error {
	args, err := cli.Parse(argv)
	if err != nil {
		return err
	}

	cfg := core.PresetConfig(args.Preset)

	w1, err := loader.Load(args.Warrior1, cfg.CoreSize)
	if err != nil {
		return fmt.Errorf("loading warrior 1: %w", err)
	}
	w2, err := loader.Load(args.Warrior2, cfg.CoreSize)
	if err != nil {
		return fmt.Errorf("loading warrior 2: %w", err)
	}

	eng := engine.New(cfg)
	highlight := term.IsTerminal(int(os.Stdout.Fd()))

	var t tally
	for round := 0; round < args.Rounds; round++ {
		eng.Clear()
		if err := eng.LoadWarrior(w1.Code, args.Base1, w1.StartPos, 1); err != nil {
			return fmt.Errorf("round %d: loading %s: %w", round, w1.Name, err)
		}
		if err := eng.LoadWarrior(w2.Code, args.Base2, w2.StartPos, 2); err != nil {
			return fmt.Errorf("round %d: loading %s: %w", round, w2.Name, err)
		}

		res, err := runRound(eng)
		if err != nil {
			return fmt.Errorf("round %d: %w", round, err)
		}

		switch res.Code {
		case core.WonByW1:
			t.w1++
			fmt.Printf("round %d: %s wins\n", round, w1.Name)
		case core.WonByW2:
			t.w2++
			fmt.Printf("round %d: %s wins\n", round, w2.Name)
		case core.Tie:
			t.ties++
			fmt.Printf("round %d: tie\n", round)
		default:
			fmt.Printf("round %d: %s\n", round, res.Code)
		}
	}

	fmt.Printf("\n%s: %d  %s: %d  ties: %d\n", w1.Name, t.w1, w2.Name, t.w2, t.ties)
	if highlight {
		fmt.Println(dump(eng))
	}
	return nil
}

// runRound drives eng.Run to completion on one goroutine while a second
// goroutine drains eng.Messages so Run never blocks on a full channel —
// the interpreter itself only ever blocks as long as stepping takes; the
// driver must hold up its end too.
func runRound(eng *engine.Engine) (core.RunResult, error) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, _ := errgroup.WithContext(ctx)

	var res core.RunResult
	g.Go(func() error {
		defer cancel()
		var err error
		res, err = eng.Run(0)
		return err
	})
	g.Go(func() error {
		// A CLI round has no live viewer to update; draining keeps Run's
		// non-blocking emit() from ever needing to drop a message. Stops
		// as soon as the Run goroutine above finishes and cancels ctx.
		for {
			select {
			case <-eng.Messages():
			case <-ctx.Done():
				return nil
			}
		}
	})

	err := g.Wait()
	return res, err
}

// dump renders the final core state, wrapping the PC of a still-queued
// process in reverse video, the way cmd/corewar/main.go's dump did for a
// single linear byte array.
func dump(eng *engine.Engine) string {
	const width = 16
	out := ""
	for i := 0; i < eng.Size(); i++ {
		if i%width == 0 {
			out += "\n"
		}
		cur := eng.Turn()
		highlight := eng.QueueLen(cur) > 0
		if highlight {
			out += "\033[7m"
		}
		out += eng.ValueAt(i)
		if highlight {
			out += "\033[27m"
		}
		out += " | "
	}
	return out
}
