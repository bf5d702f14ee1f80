package core

import "go.redcode.dev/mars/redcode"

// operand is the resolved absolute pointer and captured instruction
// snapshot for one side (A or B) of an instruction.
type operand struct {
	Ptr  int
	Snap redcode.Instruction
}

// resolveOperands reads the instruction at pc, resolves its A-operand,
// then its B-operand (in that order, so pre-decrement side effects from
// the A side are visible to the B side), applying pre-decrement effects
// immediately and recording post-increment intents on Core's deferred
// lists rather than applying them. It returns the instruction as fetched
// at the start of the cycle (before any self-mutation a predecrement of
// the PC's own cell might cause) plus both resolved operands.
func (c *Core) resolveOperands(pc int) (cur redcode.Instruction, a, b operand) {
	cur = c.mem[pc]
	a = c.resolveSide(pc, cur.AMode, cur.ANum)
	b = c.resolveSide(pc, cur.BMode, cur.BNum)
	return cur, a, b
}

func (c *Core) resolveSide(pc int, mode redcode.Mode, off int) operand {
	size := c.Size()

	switch mode {
	case redcode.Immediate:
		return operand{Ptr: pc, Snap: c.mem[pc]}

	case redcode.Direct:
		ptr := redcode.NormNum(pc+off, size)
		return operand{Ptr: ptr, Snap: c.mem[ptr]}

	case redcode.IndirectA, redcode.IndirectB, redcode.PredecA, redcode.PredecB, redcode.PostincA, redcode.PostincB:
		q := redcode.NormNum(pc+off, size)

		// Pre-decrement: mutate core[q]'s field before anything reads it,
		// including the ptr computation below — decrement, then read.
		switch mode {
		case redcode.PredecA:
			c.mem[q].ANum = redcode.NormNum(c.mem[q].ANum-1, size)
		case redcode.PredecB:
			c.mem[q].BNum = redcode.NormNum(c.mem[q].BNum-1, size)
		}

		var ptr int
		switch mode {
		case redcode.IndirectA, redcode.PredecA, redcode.PostincA:
			ptr = redcode.NormNum(q+c.mem[q].ANum, size)
		default: // IndirectB, PredecB, PostincB
			ptr = redcode.NormNum(q+c.mem[q].BNum, size)
		}

		// Post-increment: only record the intent. The field at q keeps
		// its pre-increment value for the rest of this cycle; Core.step
		// applies it during the end-of-cycle flush.
		switch mode {
		case redcode.PostincA:
			c.pendingIncA = append(c.pendingIncA, q)
		case redcode.PostincB:
			c.pendingIncB = append(c.pendingIncB, q)
		}

		return operand{Ptr: ptr, Snap: c.mem[ptr]}

	default:
		// Unreachable for any Instruction that came through redcode.Decode
		// or was constructed with a valid Mode.
		return operand{Ptr: pc, Snap: c.mem[pc]}
	}
}

// flushIncrements applies every deferred post-increment recorded during
// the step's operand resolution, then clears both lists. Duplicate
// intents at the same address are NOT coalesced — each one fires.
func (c *Core) flushIncrements() {
	size := c.Size()
	for _, q := range c.pendingIncA {
		c.mem[q].ANum = redcode.NormNum(c.mem[q].ANum+1, size)
	}
	for _, q := range c.pendingIncB {
		c.mem[q].BNum = redcode.NormNum(c.mem[q].BNum+1, size)
	}
	c.pendingIncA = c.pendingIncA[:0]
	c.pendingIncB = c.pendingIncB[:0]
}
