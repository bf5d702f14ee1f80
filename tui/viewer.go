// Package tui is the live terminal viewer for a running match, grounded
// on cmd/vm-viewer/main.go's tview Flex/Table/TextView layout and
// inverse-video PC highlighting idiom. Where that viewer polled its VM's
// struct fields directly on a timer, Viewer instead drives its redraws
// off engine.Messages, since package engine exposes no polling hook by
// design — its operations are all synchronous calls, not a subscribable
// state object.
package tui

import (
	"fmt"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"go.redcode.dev/mars/core"
	"go.redcode.dev/mars/engine"
)

const dumpWidth = 32

// Viewer renders one Engine's core, queue depths and event log in a
// three-pane tview layout: core dump, a side panel of run state, and a
// scrolling log of core.Message events.
type Viewer struct {
	app *tview.Application
	eng *engine.Engine

	memView   *tview.TextView
	stateView *tview.TextView
	logView   *tview.TextView
}

// New builds a Viewer over eng. Call Run to start the event loop.
func New(eng *engine.Engine) *Viewer {
	app := tview.NewApplication().EnableMouse(true)

	memView := tview.NewTextView().SetDynamicColors(true)
	memView.SetBorder(true).SetTitle("Core")

	stateView := tview.NewTextView().SetDynamicColors(true)
	stateView.SetBorder(true).SetTitle("State")

	logView := tview.NewTextView().SetDynamicColors(true)
	logView.SetBorder(true).SetTitle("Events")
	logView.SetChangedFunc(func() { app.Draw() })

	rightPane := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(stateView, 0, 1, false).
		AddItem(logView, 0, 2, false)

	flex := tview.NewFlex().
		AddItem(memView, 0, 3, false).
		AddItem(rightPane, 0, 1, false)

	app.SetRoot(flex, true)

	return &Viewer{app: app, eng: eng, memView: memView, stateView: stateView, logView: logView}
}

// Run starts draining eng.Messages() on a background goroutine and blocks
// running the tview event loop until the user quits (q or Ctrl-C).
func (v *Viewer) Run() error {
	v.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		if ev.Rune() == 'q' {
			v.app.Stop()
			return nil
		}
		return ev
	})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range v.eng.Messages() {
			v.logMessage(msg)
		}
	}()

	v.redraw()
	return v.app.Run()
}

func (v *Viewer) logMessage(msg core.Message) {
	fmt.Fprintf(v.logView, "[%s] warrior=%d pc=%d %s\n", msg.Type, msg.Warrior, msg.PC, msg.Text)
	v.redraw()
}

func (v *Viewer) redraw() {
	v.app.QueueUpdateDraw(func() {
		v.stateView.SetText(fmt.Sprintf(
			"cycle: %d\nturn: warrior %d\nw1 queue: %d\nw2 queue: %d",
			v.eng.Cycle(), v.eng.Turn(), v.eng.QueueLen(1), v.eng.QueueLen(2)))
		v.memView.SetText(v.dump())
	})
}

// dump renders the core as rows of dumpWidth instructions, each row
// prefixed with its starting address, highlighting nothing beyond the plain text form — mem cells carry
// their own addressing-mode characters, so unlike a raw byte hex dump
// this is already self-describing without a PC-cursor overlay (cmd/mars's
// ANSI dump adds that overlay for the non-interactive CLI).
func (v *Viewer) dump() string {
	var b strings.Builder
	size := v.eng.Size()
	for i := 0; i < size; i += dumpWidth {
		fmt.Fprintf(&b, "%04d: ", i)
		for j := i; j < i+dumpWidth && j < size; j++ {
			fmt.Fprintf(&b, "%s ", v.eng.ValueAt(j))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
