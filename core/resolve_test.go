package core

import "testing"

// Pre-decrement must mutate the target cell's field before the pointer is
// computed from it, and that mutation must be visible immediately (not
// deferred like post-increment).
func TestPredecrementAppliesBeforeRead(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "MOV.I {1, $2")
	place(t, c, 1, "DAT.F #5, #0")
	place(t, c, 2, "DAT.F #0, #0")

	_, a, _ := c.resolveOperands(0)

	if c.mem[1].ANum != 4 {
		t.Fatalf("predecrement did not apply: mem[1].ANum = %d, want 4", c.mem[1].ANum)
	}
	if a.Ptr != 5 {
		t.Fatalf("a.Ptr = %d, want 5 (1 + decremented ANum 4)", a.Ptr)
	}
}

// Post-increment must not take effect until flushIncrements runs: the
// field read during resolution keeps its pre-increment value.
func TestPostincrementIsDeferred(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "MOV.I }1, $2")
	place(t, c, 1, "DAT.F #5, #0")
	place(t, c, 2, "DAT.F #0, #0")

	_, a, _ := c.resolveOperands(0)

	if c.mem[1].ANum != 5 {
		t.Fatalf("postincrement applied too early: mem[1].ANum = %d, want 5", c.mem[1].ANum)
	}
	if a.Ptr != 6 {
		t.Fatalf("a.Ptr = %d, want 6 (1 + pre-increment ANum 5)", a.Ptr)
	}

	c.flushIncrements()
	if c.mem[1].ANum != 6 {
		t.Fatalf("after flush: mem[1].ANum = %d, want 6", c.mem[1].ANum)
	}
}

// Two post-increment intents recorded at the same address in one cycle
// (e.g. an instruction whose A and B operands both use PostincA on the
// same cell) must each fire independently, not coalesce.
func TestDuplicatePostincrementIntentsEachFire(t *testing.T) {
	c := newDebugCore(t)
	c.pendingIncA = append(c.pendingIncA, 3, 3)
	place(t, c, 3, "DAT.F #0, #0")

	c.flushIncrements()

	if c.mem[3].ANum != 2 {
		t.Fatalf("mem[3].ANum = %d, want 2 (two independent +1 intents)", c.mem[3].ANum)
	}
}

func TestImmediateResolvesToOwnPC(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "DAT.F #7, #0")

	_, a, b := c.resolveOperands(0)

	if a.Ptr != 0 || b.Ptr != 0 {
		t.Fatalf("immediate operands resolved to (%d, %d), want (0, 0)", a.Ptr, b.Ptr)
	}
}

func TestDirectWrapsAroundCore(t *testing.T) {
	c := newDebugCore(t)
	place(t, c, 0, "DAT.F $-1, $0")

	_, a, _ := c.resolveOperands(0)

	if a.Ptr != c.Size()-1 {
		t.Fatalf("a.Ptr = %d, want %d (wrapped)", a.Ptr, c.Size()-1)
	}
}
