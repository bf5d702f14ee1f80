package core

import "go.redcode.dev/mars/redcode"

// lane names one field-to-field copy/combine driven by a (Modifier), with
// Src naming which field of the A-operand's snapshot feeds the operation
// and Dst naming the matching field of the B-operand's instruction.
// MOV, the arithmetic opcodes, and the comparison opcodes all select their
// lanes the same way for A, B, AB, BA, F and X — SNE.X's "(a.a≠b.b AND
// a.b≠b.a)" condition is exactly the lane pairing already needed for
// MOV.X, so one table serves all three opcode families; only the I
// modifier and the operation applied per lane differ between them.
type lane struct{ Src, Dst byte }

func pairLanes(mod redcode.Modifier) []lane {
	switch mod {
	case redcode.ModA:
		return []lane{{'A', 'A'}}
	case redcode.ModB:
		return []lane{{'B', 'B'}}
	case redcode.ModAB:
		return []lane{{'A', 'B'}}
	case redcode.ModBA:
		return []lane{{'B', 'A'}}
	case redcode.ModX:
		return []lane{{'A', 'B'}, {'B', 'A'}}
	default: // ModF, ModI (arithmetic/comparison treat I as F)
		return []lane{{'A', 'A'}, {'B', 'B'}}
	}
}

func field(ins redcode.Instruction, which byte) int {
	if which == 'A' {
		return ins.ANum
	}
	return ins.BNum
}

func setField(ins *redcode.Instruction, which byte, v int) {
	if which == 'A' {
		ins.ANum = v
	} else {
		ins.BNum = v
	}
}

// testFields reports which field(s) of an instruction JMZ, JMN and DJN
// read: A and BA test the A field, B and AB test the B field, F/X/I test
// both.
func testFields(mod redcode.Modifier) []byte {
	switch mod {
	case redcode.ModA, redcode.ModBA:
		return []byte{'A'}
	case redcode.ModB, redcode.ModAB:
		return []byte{'B'}
	default:
		return []byte{'A', 'B'}
	}
}

// execResult is everything the scheduler needs to update the queues after
// one instruction: whether the acting process survives, and the addresses
// (if any) it should be requeued at — in push order, so a tie-broken
// partial push (SPL with exactly one free queue slot) keeps the first
// entry.
type execResult struct {
	requeue []int
	alive   bool
}

// execute runs the instruction at pc (already fetched and operand-resolved
// by resolveOperands) and reports the scheduler's follow-up. It never
// reads or writes c.turn, c.cycle or either queue — step(), in
// scheduler.go, owns sequencing; execute owns only instruction semantics.
func (c *Core) execute(pc int, cur redcode.Instruction, a, b operand) (execResult, error) {
	size := c.Size()
	next := redcode.NormNum(pc+1, size)

	switch cur.Op {
	case redcode.DAT:
		return execResult{alive: false}, nil

	case redcode.NOP:
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.MOV:
		dst := c.mem[b.Ptr]
		if cur.Mod == redcode.ModI {
			dst = a.Snap
		} else {
			for _, ln := range pairLanes(cur.Mod) {
				setField(&dst, ln.Dst, field(a.Snap, ln.Src))
			}
		}
		c.mem[b.Ptr] = dst
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.ADD, redcode.SUB, redcode.MUL, redcode.DIV, redcode.MOD:
		dst := c.mem[b.Ptr]
		died := false
		for _, ln := range pairLanes(cur.Mod) {
			x := field(a.Snap, ln.Src)
			y := field(dst, ln.Dst)
			switch cur.Op {
			case redcode.ADD:
				setField(&dst, ln.Dst, redcode.NormNum(y+x, size))
			case redcode.SUB:
				setField(&dst, ln.Dst, redcode.NormNum(y-x, size))
			case redcode.MUL:
				setField(&dst, ln.Dst, redcode.NormNum(y*x, size))
			case redcode.DIV:
				if x == 0 {
					died = true
					continue
				}
				setField(&dst, ln.Dst, redcode.NormNum(y/x, size))
			case redcode.MOD:
				if x == 0 {
					died = true
					continue
				}
				setField(&dst, ln.Dst, redcode.NormNum(y%x, size))
			}
		}
		c.mem[b.Ptr] = dst
		if died {
			return execResult{alive: false}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.JMP:
		return execResult{requeue: []int{a.Ptr}, alive: true}, nil

	case redcode.JMZ:
		if allZero(b.Snap, testFields(cur.Mod)) {
			return execResult{requeue: []int{a.Ptr}, alive: true}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.JMN:
		if anyNonZero(b.Snap, testFields(cur.Mod)) {
			return execResult{requeue: []int{a.Ptr}, alive: true}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.DJN:
		dst := c.mem[b.Ptr]
		fields := testFields(cur.Mod)
		for _, f := range fields {
			setField(&dst, f, redcode.NormNum(field(dst, f)-1, size))
		}
		c.mem[b.Ptr] = dst
		if anyNonZero(dst, fields) {
			return execResult{requeue: []int{a.Ptr}, alive: true}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.SPL:
		// Push order matters: a full-by-one queue keeps next and drops
		// a.Ptr, giving PC+1 priority over the spawned target.
		return execResult{requeue: []int{next, a.Ptr}, alive: true}, nil

	case redcode.SLT:
		if cmpLanes(cur.Mod, a.Snap, b.Snap, func(x, y int) bool { return x < y }) {
			return execResult{requeue: []int{redcode.NormNum(pc+2, size)}, alive: true}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.SEQ, redcode.CMP:
		if structEqual(cur.Mod, a.Snap, b.Snap) {
			return execResult{requeue: []int{redcode.NormNum(pc+2, size)}, alive: true}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.SNE:
		if sneMismatch(cur.Mod, a.Snap, b.Snap) {
			return execResult{requeue: []int{redcode.NormNum(pc+2, size)}, alive: true}, nil
		}
		return execResult{requeue: []int{next}, alive: true}, nil

	case redcode.LDP, redcode.STP:
		return execResult{}, ErrUnimplementedOpcode

	default:
		return execResult{}, ErrUnimplementedOpcode
	}
}

func allZero(ins redcode.Instruction, fields []byte) bool {
	for _, f := range fields {
		if field(ins, f) != 0 {
			return false
		}
	}
	return true
}

func anyNonZero(ins redcode.Instruction, fields []byte) bool {
	for _, f := range fields {
		if field(ins, f) != 0 {
			return true
		}
	}
	return false
}

// cmpLanes applies cmp across the modifier's lanes, AND-ing the per-lane
// results together for the multi-field modifiers (F, X and I, the latter
// folded into F for SLT).
func cmpLanes(mod redcode.Modifier, a, b redcode.Instruction, cmp func(x, y int) bool) bool {
	for _, ln := range pairLanes(mod) {
		if !cmp(field(a, ln.Src), field(b, ln.Dst)) {
			return false
		}
	}
	return true
}

// structEqual implements SEQ/CMP's modifier handling, including the I
// modifier's whole-instruction structural comparison (opcode, modifier,
// both addressing modes and both operand numbers), distinct from the
// field-wise A/B/AB/BA/F/X comparisons.
func structEqual(mod redcode.Modifier, a, b redcode.Instruction) bool {
	if mod == redcode.ModI {
		return a.Op == b.Op && a.Mod == b.Mod && a.AMode == b.AMode &&
			a.BMode == b.BMode && a.ANum == b.ANum && a.BNum == b.BNum
	}
	return cmpLanes(mod, a, b, func(x, y int) bool { return x == y })
}

// sneMismatch implements SNE's modifier handling. For the single-field
// modifiers (A, B, AB, BA) and I it is simply "not equal". For F and X,
// which pair two fields, it requires every paired lane to differ: SNE.F
// skips only when a.a≠b.a AND a.b≠b.b, SNE.X only when a.a≠b.b AND
// a.b≠b.a — an OR reading would make SNE.F/.X skip on a merely partial
// mismatch, which is not what the per-lane pairing is defined to mean.
func sneMismatch(mod redcode.Modifier, a, b redcode.Instruction) bool {
	if mod == redcode.ModI {
		return !structEqual(mod, a, b)
	}
	for _, ln := range pairLanes(mod) {
		if field(a, ln.Src) == field(b, ln.Dst) {
			return false
		}
	}
	return true
}
