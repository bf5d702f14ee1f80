// Package engine is the façade over package core: it validates load
// requests, tracks which warrior slots are occupied, and exposes the five
// operations a driver (cli, tui) needs without touching Core's internals
// directly. Grounded on vm/vm.go:NewCorewar's constructor plus
// cli/cli.go:ParseConfig's load/validate split.
package engine

import (
	"fmt"

	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/redcode"
)

// Engine wraps a *core.Core with the load-time contract checks that
// belong to the outer layer rather than the interpreter itself: slot
// occupancy, start-position bounds, and inter-warrior separation.
type Engine struct {
	c      *core.Core
	loaded [3]bool // index 1, 2; 0 unused
	base   [3]int
	length [3]int
}

// New builds an Engine around a fresh Core under cfg.
func New(cfg core.Config) *Engine {
	return &Engine{c: core.NewCore(cfg)}
}

// Messages exposes the underlying Core's event channel.
func (e *Engine) Messages() chan core.Message { return e.c.Messages }

// Config returns the active parameter set.
func (e *Engine) Config() core.Config { return e.c.Config() }

// Clear resets the core and forgets both loaded warriors, so the Engine
// can be reused for another round without reallocating.
func (e *Engine) Clear() {
	e.c.Reset()
	e.loaded[1], e.loaded[2] = false, false
}

// LoadWarrior places code at base for warrior id (1 or 2) and seeds its
// process queue with one task at base+startPos. It enforces:
//   - id is 1 or 2
//   - the slot has not already been loaded since the last Clear
//   - len(code) does not exceed Config.MaxWarrior
//   - startPos indexes within code (0 <= startPos < len(code))
//   - once both warriors are loaded, their bases are separated by at
//     least MaxWarrior+MinSeparation in both directions around the core
func (e *Engine) LoadWarrior(code []redcode.Instruction, base, startPos, id int) error {
	if id != 1 && id != 2 {
		return fmt.Errorf("engine: LoadWarrior: %w", core.ErrBadWarriorID)
	}
	if e.loaded[id] {
		return fmt.Errorf("engine: LoadWarrior: warrior %d: %w", id, core.ErrSlotOccupied)
	}
	if len(code) > e.c.Config().MaxWarrior {
		return fmt.Errorf("engine: LoadWarrior: warrior %d: %d instructions: %w", id, len(code), core.ErrCodeTooLong)
	}
	if startPos < 0 || startPos >= len(code) {
		return fmt.Errorf("engine: LoadWarrior: warrior %d: start position %d: %w", id, startPos, core.ErrNegativeStartPos)
	}

	other := opponent(id)
	if e.loaded[other] {
		if err := checkSeparation(e.c.Size(), e.c.Config().MaxWarrior+e.c.Config().MinSeparation,
			base, e.base[other]); err != nil {
			return fmt.Errorf("engine: LoadWarrior: warrior %d: %w", id, err)
		}
	}

	size := e.c.Size()
	for i, ins := range code {
		e.c.SetInstruction(base+i, ins)
	}
	e.c.PushTask(id, redcode.NormNum(base+startPos, size))

	e.loaded[id] = true
	e.base[id] = base
	e.length[id] = len(code)
	return nil
}

// checkSeparation reports ErrInsufficientSeparation unless the forward
// distance between a and b, in both directions around a core of the given
// size, is at least minDist.
func checkSeparation(size, minDist, a, b int) error {
	fwd := redcode.NormNum(b-a, size)
	back := redcode.NormNum(a-b, size)
	if fwd < minDist || back < minDist {
		return core.ErrInsufficientSeparation
	}
	return nil
}

func opponent(id int) int {
	if id == 1 {
		return 2
	}
	return 1
}

// Run advances the match by steps cycles (0 meaning run to completion or
// the cycle cap), returning ErrNotLoaded if either warrior slot is still
// empty.
func (e *Engine) Run(steps int) (core.RunResult, error) {
	if !e.loaded[1] || !e.loaded[2] {
		return core.RunResult{}, fmt.Errorf("engine: Run: %w", core.ErrNotLoaded)
	}
	return e.c.Run(steps)
}

// ValueAt renders the instruction stored at addr in canonical textual
// form.
func (e *Engine) ValueAt(addr int) string {
	return redcode.Encode(e.c.InstructionAt(addr))
}

// Place decodes text and stores it at addr, surfacing a parse error
// instead of silently substituting the sentinel instruction, so callers
// can reject bad input rather than silently corrupt the core.
func (e *Engine) Place(text string, addr int) error {
	ins, err := redcode.DecodeStrict(text, e.c.Size())
	if err != nil {
		return fmt.Errorf("engine: Place: %w", err)
	}
	e.c.SetInstruction(addr, ins)
	return nil
}

// Cycle, Turn, Size and QueueLen are the read-only accessors a viewer
// needs without reaching into the Core directly.
func (e *Engine) Cycle() int          { return e.c.Cycle() }
func (e *Engine) Turn() int           { return e.c.Turn() }
func (e *Engine) Size() int           { return e.c.Size() }
func (e *Engine) QueueLen(id int) int { return e.c.QueueFor(id).Len() }
