// Command marsview loads the same two warriors mars does, but hands the
// match to the tui live viewer instead of running it to completion
// silently. Grounded on cmd/vm-viewer/main.go's entry point shape.
package main

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"go.redcode.dev/mars/cli"
	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/engine"
	"go.redcode.dev/mars/loader"
	"go.redcode.dev/mars/tui"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "marsview:", err)
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
	if err := eng.LoadWarrior(w1.Code, args.Base1, w1.StartPos, 1); err != nil {
		return fmt.Errorf("loading %s: %w", w1.Name, err)
	}
	if err := eng.LoadWarrior(w2.Code, args.Base2, w2.StartPos, 2); err != nil {
		return fmt.Errorf("loading %s: %w", w2.Name, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer cancel()
		_, err := eng.Run(0)
		return err
	})

	v := tui.New(eng)
	g.Go(func() error {
		defer cancel()
		return v.Run()
	})

	return g.Wait()
}
