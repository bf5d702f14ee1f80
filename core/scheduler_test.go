package core

import (
	"testing"

	"go.redcode.dev/mars/redcode"
)

func newDebugCore(t *testing.T) *Core {
	t.Helper()
	return NewCore(PresetConfig(Debug))
}

func place(t *testing.T, c *Core, addr int, text string) {
	t.Helper()
	ins, err := redcode.DecodeStrict(text, c.Size())
	if err != nil {
		t.Fatalf("DecodeStrict(%q): %v", text, err)
	}
	c.SetInstruction(addr, ins)
}

// Scenario 1: two bare DAT warriors, each starting its own single process
// at its own base. Warrior 1 moves first, immediately executes its DAT
// and dies, handing the win to warrior 2 in that same first step.
func TestScenarioBothDatImmediateLoss(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "DAT.F #0, #0")
	place(t, c, 20, "DAT.F #0, #0")
	c.PushTask(1, 0)
	c.PushTask(2, 20)

	res, err := c.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != WonByW2 {
		t.Fatalf("Code = %v, want WonByW2 (w1's only process ran straight into its DAT)", res.Code)
	}
	if res.Cycles != 1 {
		t.Fatalf("Cycles = %d, want 1", res.Cycles)
	}
}

// Scenario 5: DIV.F by a zero A-field kills the process outright, handing
// the win to the opponent once its queue is the only one left.
func TestScenarioDivideByZeroKillsProcess(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "DIV.F #0, $1")
	place(t, c, 1, "DAT.F #0, #0")
	place(t, c, 20, "DAT.F #0, #0")
	c.PushTask(1, 0)
	c.PushTask(2, 20)

	res, err := c.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != WonByW2 {
		t.Fatalf("Code = %v, want WonByW2 (w1's process divided by zero and died)", res.Code)
	}
}

// Scenario 6: two single-instruction infinite loops (JMP to self) never
// terminate on their own; Run must report Tie once the cycle cap is hit,
// and Paused if handed a smaller step budget first.
func TestScenarioMutualJumpTieAtCycleCap(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "JMP.B $0, #0")
	place(t, c, 20, "JMP.B $0, #0")
	c.PushTask(1, 0)
	c.PushTask(2, 20)

	res, err := c.Run(5)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != Paused {
		t.Fatalf("Code = %v, want Paused", res.Code)
	}
	if res.Cycles != 5 {
		t.Fatalf("Cycles = %d, want 5", res.Cycles)
	}

	final, err := c.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if final.Code != Tie {
		t.Fatalf("Code = %v, want Tie", final.Code)
	}
	if final.Cycles != c.cfg.MaxCycles {
		t.Fatalf("Cycles = %d, want %d", final.Cycles, c.cfg.MaxCycles)
	}
}

// Run(k) then Run(m) must land exactly where Run(k+m) would: all progress
// lives in Core's own fields, nothing is lost or replayed across calls.
func TestRunIsResumable(t *testing.T) {
	build := func() *Core {
		c := newDebugCore(t)
		place(t, c, 0, "JMP.B $0, #0")
		place(t, c, 20, "JMP.B $0, #0")
		c.PushTask(1, 0)
		c.PushTask(2, 20)
		return c
	}

	piecewise := build()
	piecewise.Run(3)
	piecewise.Run(4)

	oneShot := build()
	oneShot.Run(7)

	if piecewise.cycle != oneShot.cycle {
		t.Fatalf("piecewise cycle = %d, one-shot cycle = %d", piecewise.cycle, oneShot.cycle)
	}
	if piecewise.turn != oneShot.turn {
		t.Fatalf("piecewise turn = %d, one-shot turn = %d", piecewise.turn, oneShot.turn)
	}
}

// A SPL with exactly one free queue slot must keep PC+1 and drop the
// spawned target, not the other way around.
func TestSplQueueOverflowFavorsPCPlusOne(t *testing.T) {
	c := newDebugCore(t)
	c.cfg.MaxTasks = 1
	c.q1 = NewQueue(1)
	place(t, c, 5, "SPL.B $0, #0")
	c.q1.Push(5)
	c.q1.Pop() // step() pops the acting PC before pushing, leaving one free slot

	res, err := c.execute(5, c.InstructionAt(5), operand{Ptr: 5, Snap: c.InstructionAt(5)}, operand{})
	if err != nil {
		t.Fatalf("execute: %v", err)
	}
	if len(res.requeue) != 2 || res.requeue[0] != 6 {
		t.Fatalf("requeue = %v, want [6, 5]", res.requeue)
	}
	for _, addr := range res.requeue {
		c.PushTask(1, addr)
	}
	if got := c.q1.Snapshot(); len(got) != 1 || got[0] != 6 {
		t.Fatalf("queue after overflow = %v, want [6]", got)
	}
}

// Between steps, no post-increment intents should remain pending: step()
// always flushes before returning, so a fresh Core after any number of
// completed steps has empty intent lists.
func TestPendingIncrementsEmptyBetweenSteps(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "MOV.I }1, $2")
	place(t, c, 1, "DAT.F #5, #5")
	place(t, c, 2, "DAT.F #0, #0")
	place(t, c, 20, "DAT.F #0, #0")
	c.PushTask(1, 0)
	c.PushTask(2, 20)

	if _, err := c.step(); err != nil {
		t.Fatalf("step: %v", err)
	}
	if len(c.pendingIncA) != 0 || len(c.pendingIncB) != 0 {
		t.Fatalf("pending increments not flushed: A=%v B=%v", c.pendingIncA, c.pendingIncB)
	}
}

func TestCycleCounterNeverExceedsCap(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "JMP.B $0, #0")
	place(t, c, 20, "JMP.B $0, #0")
	c.PushTask(1, 0)
	c.PushTask(2, 20)

	c.Run(0)
	if c.cycle > c.cfg.MaxCycles {
		t.Fatalf("cycle = %d exceeds cap %d", c.cycle, c.cfg.MaxCycles)
	}
}

func TestTieWhenCycleCapAlreadySpent(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "JMP.B $0, #0")
	place(t, c, 20, "JMP.B $0, #0")
	c.PushTask(1, 0)
	c.PushTask(2, 20)

	c.Run(0)
	res, err := c.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != Tie {
		t.Fatalf("Code = %v, want Tie (cap already reached is a tie, not NO_EXECUTION)", res.Code)
	}
}

func TestNoExecutionWhenEitherQueueEmptyAtStart(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "JMP.B $0, #0")
	place(t, c, 20, "JMP.B $0, #0")
	c.PushTask(1, 0)
	// Warrior 2 never loads a process.

	res, err := c.Run(0)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if res.Code != NoExecution {
		t.Fatalf("Code = %v, want NoExecution", res.Code)
	}
}
