package cli

import (
	"testing"

	"github.com/alexanderramin/plantrack/internal/teatest"
)

// TestDriver wraps teatest.Driver with access to appModel internals (view
// stack, shared state, command bar focus) that the generic driver can't see.
type TestDriver struct {
	*teatest.Driver
}

// NewTestDriver builds the appModel for app at 120x40 and drains Init, which
// renders the dashboard synchronously from the in-memory stores.
func NewTestDriver(t *testing.T, app *App) *TestDriver {
	t.Helper()

	m := newAppModel(app)
	d := teatest.New(t, m, teatest.WithSize(120, 40))
	d.DrainInit()

	return &TestDriver{Driver: d}
}

// Command focuses the command bar with ':', types input and presses Enter.
// Output-only commands leave the bar focused, so it is blurred afterwards
// and later key presses reach the active view.
func (d *TestDriver) Command(input string) {
	d.T.Helper()
	d.PressKey(':')
	d.Type(input)
	d.PressEnter()
	if d.CmdBarFocused() {
		d.PressEsc()
	}
}

// Dismiss clears any command output so View shows the active view again.
func (d *TestDriver) Dismiss() {
	d.T.Helper()
	if d.appModel().outputActive {
		d.PressEsc()
	}
}

// appModel returns a pointer to a copy of the current model so pointer
// methods like activeView can be called on it.
func (d *TestDriver) appModel() *appModel {
	m := d.Model.(appModel)
	return &m
}

func (d *TestDriver) ActiveViewID() ViewID {
	v := d.appModel().activeView()
	if v == nil {
		return ViewID(-1)
	}
	return v.ID()
}

func (d *TestDriver) ViewStackLen() int {
	return len(d.appModel().viewStack)
}

func (d *TestDriver) State() *SharedState {
	return d.appModel().state
}

// IsQuitting covers both 'q'/Ctrl+C on the model and tea.Quit from exit.
func (d *TestDriver) IsQuitting() bool {
	return d.appModel().quitting || d.Quitting
}

func (d *TestDriver) CmdBarFocused() bool {
	m := d.appModel()
	return m.cmdBar.Focused()
}

func (d *TestDriver) LastOutput() string {
	return stripANSI(d.appModel().lastOutput)
}
