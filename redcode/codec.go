package redcode

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedInstruction is returned by DecodeStrict (but never by
// Decode, which falls back to DefaultInstruction instead) when the input
// does not match the textual grammar.
var ErrMalformedInstruction = fmt.Errorf("redcode: malformed instruction")

// Encode renders ins in the canonical textual form:
//
//	OP.MOD aModeChar aNum, bModeChar bNum
//
// Encode and Decode are bijective on the 8,512 distinct
// (op, mod, a_mode, b_mode) tuples: Decode(Encode(i)) == i for every
// representable instruction.
func Encode(ins Instruction) string {
	return fmt.Sprintf("%s.%s %c%d, %c%d",
		ins.Op, ins.Mod, ins.AMode.Char(), ins.ANum, ins.BMode.Char(), ins.BNum)
}

// Decode parses the textual form of an instruction, normalizing operand
// numbers modulo coreSize. Any deviation from the grammar — wrong
// separators, unknown mnemonic, unknown mode character, non-numeric
// operand — yields the sentinel DefaultInstruction() rather than an error;
// a caller that needs to detect a bad parse should round-trip the result
// back through Encode, or call DecodeStrict directly.
func Decode(s string, coreSize int) Instruction {
	ins, err := DecodeStrict(s, coreSize)
	if err != nil {
		return DefaultInstruction()
	}
	return ins
}

// DecodeStrict is the same parse as Decode, but surfaces the parse error
// instead of silently substituting the sentinel. Used by callers (e.g.
// engine.Place, test fixtures) that want to fail loudly on a malformed
// instruction rather than silently place a no-op.
func DecodeStrict(s string, coreSize int) (Instruction, error) {
	s = strings.TrimSpace(s)

	head, rest, ok := strings.Cut(s, " ")
	if !ok {
		return Instruction{}, fmt.Errorf("%w: missing operand fields in %q", ErrMalformedInstruction, s)
	}

	opName, modName, ok := strings.Cut(head, ".")
	if !ok {
		return Instruction{}, fmt.Errorf("%w: missing modifier in %q", ErrMalformedInstruction, head)
	}
	op, ok := ParseOpcode(opName)
	if !ok {
		return Instruction{}, fmt.Errorf("%w: unknown opcode %q", ErrMalformedInstruction, opName)
	}
	mod, ok := ParseModifier(modName)
	if !ok {
		return Instruction{}, fmt.Errorf("%w: unknown modifier %q", ErrMalformedInstruction, modName)
	}

	aField, bField, ok := strings.Cut(rest, ",")
	if !ok {
		return Instruction{}, fmt.Errorf("%w: missing ',' separator in %q", ErrMalformedInstruction, rest)
	}
	aMode, aNum, err := parseOperand(strings.TrimSpace(aField))
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: a-operand: %w", ErrMalformedInstruction, err)
	}
	bMode, bNum, err := parseOperand(strings.TrimSpace(bField))
	if err != nil {
		return Instruction{}, fmt.Errorf("%w: b-operand: %w", ErrMalformedInstruction, err)
	}

	ins := Instruction{Op: op, Mod: mod, AMode: aMode, BMode: bMode, ANum: aNum, BNum: bNum}
	ins.Normalize(coreSize)
	return ins, nil
}

// parseOperand parses a single "<modeChar><decimal>" field.
func parseOperand(field string) (Mode, int, error) {
	if field == "" {
		return 0, 0, fmt.Errorf("empty operand")
	}
	mode, ok := ParseMode(field[0])
	if !ok {
		return 0, 0, fmt.Errorf("unknown mode char %q", field[0])
	}
	n, err := strconv.Atoi(field[1:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid operand number %q: %w", field[1:], err)
	}
	return mode, n, nil
}
