package backend

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newSimTerminal(t *testing.T) (*Terminal, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	term := newTerminalWithScreen(sim)
	if err := term.Init(); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	t.Cleanup(term.Shutdown)
	sim.SetSize(20, 5)
	return term, sim
}

func TestTerminalSetCell(t *testing.T) {
	term, sim := newSimTerminal(t)

	term.SetCell(2, 1, 'q', StyleStatus)
	term.Show()

	mainc, _, style, _ := sim.GetContent(2, 1) //nolint:staticcheck // GetContent is the correct API
	if mainc != 'q' {
		t.Errorf("rune = %q, want 'q'", mainc)
	}
	_, _, attrs := style.Decompose()
	if attrs&tcell.AttrReverse == 0 {
		t.Error("status cells should be reversed")
	}
}

func TestTerminalPollKey(t *testing.T) {
	term, sim := newSimTerminal(t)

	sim.InjectKey(tcell.KeyRune, 'x', tcell.ModNone)
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyRune || ev.Rune != 'x' {
		t.Errorf("PollEvent() = %+v, want rune 'x'", ev)
	}
}

func TestTerminalPostEvent(t *testing.T) {
	term, _ := newSimTerminal(t)

	term.PostEvent(Event{Type: EventKey, Key: KeyEnter})
	ev := term.PollEvent()
	if ev.Type != EventKey || ev.Key != KeyEnter {
		t.Errorf("PollEvent() = %+v, want Enter", ev)
	}
}

func TestConvertKey(t *testing.T) {
	tests := []struct {
		name     string
		key      tcell.Key
		r        rune
		wantKey  Key
		wantRune rune
		wantMod  ModMask
	}{
		{"rune", tcell.KeyRune, 'a', KeyRune, 'a', ModNone},
		{"escape", tcell.KeyEscape, 0, KeyEscape, 0, ModNone},
		{"enter", tcell.KeyEnter, 0, KeyEnter, 0, ModNone},
		{"tab", tcell.KeyTab, 0, KeyTab, 0, ModNone},
		{"backtab", tcell.KeyBacktab, 0, KeyTab, 0, ModShift},
		{"backspace", tcell.KeyBackspace, 0, KeyBackspace, 0, ModNone},
		{"backspace2", tcell.KeyBackspace2, 0, KeyBackspace, 0, ModNone},
		{"delete", tcell.KeyDelete, 0, KeyDelete, 0, ModNone},
		{"left", tcell.KeyLeft, 0, KeyLeft, 0, ModNone},
		{"page down", tcell.KeyPgDn, 0, KeyPageDown, 0, ModNone},
		{"ctrl-s", tcell.KeyCtrlS, 0, KeyRune, 's', ModCtrl},
		{"f1", tcell.KeyF1, 0, KeyNone, 0, ModNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, r, mod := convertKey(tt.key, tt.r, ModNone)
			if k != tt.wantKey || r != tt.wantRune || mod != tt.wantMod {
				t.Errorf("convertKey() = (%v, %q, %v), want (%v, %q, %v)",
					k, r, mod, tt.wantKey, tt.wantRune, tt.wantMod)
			}
		})
	}
}

func TestConvertEventResize(t *testing.T) {
	ev := convertEvent(tcell.NewEventResize(100, 30))
	if ev.Type != EventResize || ev.Width != 100 || ev.Height != 30 {
		t.Errorf("convertEvent(resize) = %+v", ev)
	}

	if ev := convertEvent(nil); ev.Type != EventClosed {
		t.Errorf("convertEvent(nil) = %+v, want EventClosed", ev)
	}
	if ev := convertEvent(tcell.NewEventFocus(true)); ev.Type != EventNone {
		t.Errorf("convertEvent(focus) = %+v, want EventNone", ev)
	}
}

func TestConvertModRoundTrip(t *testing.T) {
	for _, m := range []ModMask{ModNone, ModShift, ModCtrl, ModAlt, ModMeta, ModCtrl | ModShift} {
		if got := convertMod(convertToTcellMod(m)); got != m {
			t.Errorf("round trip of %v = %v", m, got)
		}
	}
}
