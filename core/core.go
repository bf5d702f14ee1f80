package core

import "go.redcode.dev/mars/redcode"

// Core is the circular memory arena, the two warriors' process queues, the
// deferred post-increment intent lists, the cycle counter, and the turn
// flag. It implements the interpreter engine (resolver, dispatcher,
// scheduler) but none of the façade's contract validation — that lives in
// package engine, which wraps a *Core.
type Core struct {
	cfg Config

	mem []redcode.Instruction

	q1, q2 *Queue

	pendingIncA []int // addresses whose A field gets +1 at cycle end
	pendingIncB []int // addresses whose B field gets +1 at cycle end

	cycle int
	turn  int // 1 or 2: which warrior acts on the next Step

	// Messages receives one Message per notable event during Run/Step,
	// mirroring vm.Corewar.Messages's role as the engine's only narration
	// channel. Unlike an unconditional send, emit() here drops a message
	// rather than blocking when the buffer is full: Run must never stall
	// the single-threaded interpreter on a slow or absent consumer.
	Messages chan Message
}

// NewCore builds a Core under the given configuration, already Clear()ed.
func NewCore(cfg Config) *Core {
	c := &Core{
		cfg:      cfg,
		mem:      make([]redcode.Instruction, cfg.CoreSize),
		q1:       NewQueue(cfg.MaxTasks),
		q2:       NewQueue(cfg.MaxTasks),
		Messages: make(chan Message, 64),
	}
	c.Reset()
	return c
}

// Config returns the active parameter set.
func (c *Core) Config() Config { return c.cfg }

// Size returns CORE_SIZE.
func (c *Core) Size() int { return cap(c.mem) }

// Cycle returns the current cycle counter.
func (c *Core) Cycle() int { return c.cycle }

// Turn returns which warrior (1 or 2) acts on the next Step.
func (c *Core) Turn() int { return c.turn }

// Reset fills the core with the sentinel instruction, empties both
// queues and the increment lists, zeroes the cycle counter, and sets
// turn to warrior 1. Calling Reset twice in a row is the same as calling
// it once, since it has no memory of prior state beyond what it
// overwrites.
func (c *Core) Reset() {
	sentinel := redcode.DefaultInstruction()
	for i := range c.mem {
		c.mem[i] = sentinel
	}
	c.q1.Clear()
	c.q2.Clear()
	c.pendingIncA = c.pendingIncA[:0]
	c.pendingIncB = c.pendingIncB[:0]
	c.cycle = 0
	c.turn = 1
}

// InstructionAt returns a copy of the instruction stored at addr (mod
// CoreSize).
func (c *Core) InstructionAt(addr int) redcode.Instruction {
	return c.mem[redcode.NormNum(addr, c.Size())]
}

// SetInstruction stores ins at addr (mod CoreSize), normalizing its
// operand numbers into [0, CoreSize).
func (c *Core) SetInstruction(addr int, ins redcode.Instruction) {
	ins.Normalize(c.Size())
	c.mem[redcode.NormNum(addr, c.Size())] = ins
}

// QueueFor returns warrior 1 or 2's process queue. Panics for any other
// id; callers within package core always pass a value already validated
// to be 1 or 2 (engine validates external input before it reaches here).
func (c *Core) QueueFor(warrior int) *Queue {
	switch warrior {
	case 1:
		return c.q1
	case 2:
		return c.q2
	default:
		panic("core: warrior id must be 1 or 2")
	}
}

// PushTask pushes pc onto warrior's queue, reporting false if the queue
// was already full (the entry is dropped).
func (c *Core) PushTask(warrior, pc int) bool {
	ok := c.QueueFor(warrior).Push(redcode.NormNum(pc, c.Size()))
	if !ok {
		c.emit(Message{Type: EventQueueOverflow, Warrior: warrior, PC: pc, Text: "queue full, task dropped"})
	}
	return ok
}

func opponent(warrior int) int {
	if warrior == 1 {
		return 2
	}
	return 1
}

// emit sends a Message, dropping it instead of blocking if nobody is
// draining Messages and its buffer is full. Run must never stall the
// interpreter waiting for a slow consumer.
func (c *Core) emit(m Message) {
	select {
	case c.Messages <- m:
	default:
	}
}
