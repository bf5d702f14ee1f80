package core

// ResultCode is the numeric outcome of a Run call that terminated the
// match, mirroring vm.Corewar's integer result codes so callers can
// switch on a plain int across process boundaries if needed.
type ResultCode int

const (
	Tie         ResultCode = 0
	WonByW1     ResultCode = 1
	WonByW2     ResultCode = 2
	Paused      ResultCode = -1
	NoExecution ResultCode = -2
)

func (r ResultCode) String() string {
	switch r {
	case Tie:
		return "TIE"
	case WonByW1:
		return "WON_BY_W1"
	case WonByW2:
		return "WON_BY_W2"
	case Paused:
		return "PAUSED"
	case NoExecution:
		return "NO_EXECUTION"
	default:
		return "UNKNOWN"
	}
}

func resultFor(warrior int) ResultCode {
	if warrior == 1 {
		return WonByW1
	}
	return WonByW2
}

// RunResult reports how a Run call ended and the cycle counter's value at
// that point (cumulative across every Run call since the last Reset).
type RunResult struct {
	Code   ResultCode
	Cycles int
}

// Run executes up to steps single-instruction cycles, or to
// termination/the configured cycle cap when steps is 0. It is resumable:
// Run(k) followed by Run(m) advances the same Core exactly as far as one
// Run(k+m) would, since all progress lives in Core's own fields and Run
// never rewinds them.
//
// Returns Paused if the step budget ran out before the match ended,
// WonByW1/WonByW2 if a warrior's queue went empty on its turn, Tie if the
// cycle cap was reached (including a call made after an earlier call
// already reached it), and NoExecution if either queue is empty when Run
// is called.
func (c *Core) Run(steps int) (RunResult, error) {
	if c.QueueFor(1).Empty() || c.QueueFor(2).Empty() {
		return RunResult{Code: NoExecution, Cycles: c.cycle}, nil
	}

	remaining := c.cfg.MaxCycles - c.cycle
	if remaining < 0 {
		remaining = 0
	}

	budget := remaining
	if steps > 0 && steps < budget {
		budget = steps
	}

	if budget <= 0 {
		c.emit(Message{Type: EventTie, Text: "cycle cap already reached"})
		return RunResult{Code: Tie, Cycles: c.cycle}, nil
	}

	for i := 0; i < budget; i++ {
		res, err := c.step()
		if err != nil {
			return RunResult{Code: NoExecution, Cycles: c.cycle}, err
		}
		if res != nil {
			return *res, nil
		}
	}

	if c.cycle >= c.cfg.MaxCycles {
		c.emit(Message{Type: EventTie, Text: "cycle cap reached"})
		return RunResult{Code: Tie, Cycles: c.cycle}, nil
	}

	c.emit(Message{Type: EventPaused, Text: "step budget exhausted"})
	return RunResult{Code: Paused, Cycles: c.cycle}, nil
}

// step executes exactly one instruction for the warrior whose turn it is:
// fetch, resolve A then B, dispatch, flush deferred post-increments,
// requeue survivors, flip the turn. It returns a non-nil
// RunResult only when this step ends the match (the acting warrior's
// queue was already empty, or its process died and left the queue
// empty); otherwise the match continues and the
// caller's budget loop keeps going.
func (c *Core) step() (*RunResult, error) {
	acting := c.turn
	q := c.QueueFor(acting)

	if q.Empty() {
		winner := opponent(acting)
		c.emit(Message{Type: EventWarriorDied, Warrior: acting})
		c.emit(Message{Type: EventWon, Warrior: winner})
		res := RunResult{Code: resultFor(winner), Cycles: c.cycle}
		return &res, nil
	}

	pc, _ := q.Pop()

	cur, a, b := c.resolveOperands(pc)
	result, err := c.execute(pc, cur, a, b)
	c.flushIncrements()
	if err != nil {
		return nil, err
	}

	if !result.alive {
		c.emit(Message{Type: EventProcessDied, Warrior: acting, PC: pc})
	} else {
		for _, addr := range result.requeue {
			c.PushTask(acting, addr)
		}
	}

	c.cycle++

	// A process that just died and left its warrior's queue empty ends the
	// match immediately, in the same step that killed it — not on the
	// opponent's next turn, which would overcount the cycle it never took.
	if !result.alive && q.Empty() {
		winner := opponent(acting)
		c.emit(Message{Type: EventWarriorDied, Warrior: acting})
		c.emit(Message{Type: EventWon, Warrior: winner})
		res := RunResult{Code: resultFor(winner), Cycles: c.cycle}
		return &res, nil
	}

	c.turn = opponent(acting)
	return nil, nil
}
