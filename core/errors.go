package core

import "errors"

// Contract-violation sentinels, surfaced at the façade boundary. All are
// fatal: the caller must Clear() before reusing the Core after any of
// them.
var (
	// ErrBadWarriorID is returned when a warrior ID outside {1, 2} is used.
	ErrBadWarriorID = errors.New("core: warrior id must be 1 or 2")

	// ErrSlotOccupied is returned by LoadWarrior when the target warrior
	// slot has already been loaded since the last Clear.
	ErrSlotOccupied = errors.New("core: warrior slot already loaded")

	// ErrInsufficientSeparation is returned when the requested base
	// address does not leave MaxWarrior+MinSeparation room from the
	// other loaded warrior, in both directions around the circular core.
	ErrInsufficientSeparation = errors.New("core: insufficient separation between warriors")

	// ErrNegativeStartPos is returned when a warrior's start offset is
	// negative or does not index within its own code.
	ErrNegativeStartPos = errors.New("core: negative or out-of-range start position")

	// ErrCodeTooLong is returned when a warrior's instruction count
	// exceeds Config.MaxWarrior.
	ErrCodeTooLong = errors.New("core: warrior code exceeds MaxWarrior")

	// ErrUnimplementedOpcode is returned when the dispatcher encounters
	// LDP or STP. These are recognized at decode but left unimplemented;
	// the engine must not crash but may signal a fatal error — this is
	// that signal.
	ErrUnimplementedOpcode = errors.New("core: LDP/STP are recognized but not implemented")

	// ErrNotLoaded is returned by Run when called before both warriors
	// have been loaded.
	ErrNotLoaded = errors.New("core: both warriors must be loaded before Run")
)
