// Package loader reads a warrior's textual source into the instruction
// slice and start offset package engine expects, grounded on
// cli/cli.go:loadPlayers's read-file/strip-extension shape — minus the
// .s/.cor compile-or-disassemble branch, since the source format here is
// already the one-line-per-instruction textual form redcode.Decode reads
// directly.
package loader

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"go.redcode.dev/mars/redcode"
)

// Warrior is one parsed source file: its instructions in program order and
// the index within Code its first process starts executing at.
type Warrior struct {
	Name     string
	Code     []redcode.Instruction
	StartPos int
}

// Load reads and parses a warrior source file. Lines are comments (';' or
// blank) or instructions. A line of the form "ORG <n>" sets StartPos; if
// absent, StartPos is 0.
func Load(path string, coreSize int) (Warrior, error) {
	f, err := os.Open(path)
	if err != nil {
		return Warrior{}, fmt.Errorf("loader: %w", err)
	}
	defer f.Close()

	w, err := Parse(f, coreSize)
	if err != nil {
		return Warrior{}, fmt.Errorf("loader: %q: %w", path, err)
	}
	w.Name = baseName(path)
	return w, nil
}

// Parse reads a warrior's source from r. Exported separately from Load so
// callers (tests, a future stdin/embed source) don't need a real file.
func Parse(r io.Reader, coreSize int) (Warrior, error) {
	var w Warrior
	haveOrg := false

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, ";") {
			continue
		}

		if rest, ok := strings.CutPrefix(line, "ORG "); ok {
			n, err := strconv.Atoi(strings.TrimSpace(rest))
			if err != nil {
				return Warrior{}, fmt.Errorf("line %d: invalid ORG value %q: %w", lineNo, rest, err)
			}
			w.StartPos = n
			haveOrg = true
			continue
		}

		ins, err := redcode.DecodeStrict(line, coreSize)
		if err != nil {
			return Warrior{}, fmt.Errorf("line %d: %w", lineNo, err)
		}
		w.Code = append(w.Code, ins)
	}
	if err := sc.Err(); err != nil {
		return Warrior{}, fmt.Errorf("scan: %w", err)
	}
	if len(w.Code) == 0 {
		return Warrior{}, fmt.Errorf("no instructions found")
	}
	if haveOrg && (w.StartPos < 0 || w.StartPos >= len(w.Code)) {
		return Warrior{}, fmt.Errorf("ORG %d out of range for %d instructions", w.StartPos, len(w.Code))
	}
	return w, nil
}

func baseName(path string) string {
	parts := strings.Split(path, "/")
	name := parts[len(parts)-1]
	name = strings.TrimSuffix(name, ".red")
	return name
}
