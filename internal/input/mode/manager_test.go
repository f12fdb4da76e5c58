package mode

import (
	"testing"
)

func TestManagerRegister(t *testing.T) {
	m := NewManager()

	normal := NewNormalMode()
	m.Register(normal)

	if got := m.Get(ModeNormal); got == nil {
		t.Error("Get(normal) should return registered mode")
	}

	modes := m.Modes()
	found := false
	for _, name := range modes {
		if name == ModeNormal {
			found = true
			break
		}
	}
	if !found {
		t.Error("Modes() should include registered mode")
	}
}

func TestManagerSetInitialMode(t *testing.T) {
	m := NewManager()
	m.Register(NewNormalMode())

	if err := m.SetInitialMode(ModeNormal); err != nil {
		t.Errorf("SetInitialMode() error = %v", err)
	}

	if m.CurrentName() != ModeNormal {
		t.Errorf("CurrentName() = %q, want %q", m.CurrentName(), ModeNormal)
	}
}

func TestManagerSetInitialModeUnknown(t *testing.T) {
	m := NewManager()

	err := m.SetInitialMode("unknown")
	if err == nil {
		t.Error("SetInitialMode with unknown mode should fail")
	}
}

func TestNewDefaultManager(t *testing.T) {
	m := NewDefaultManager()

	if m.CurrentName() != ModeNormal {
		t.Errorf("CurrentName() = %q, want %q", m.CurrentName(), ModeNormal)
	}
	for _, name := range []string{ModeNormal, ModeInsert, ModeCommand} {
		if m.Get(name) == nil {
			t.Errorf("Get(%q) = nil, want registered mode", name)
		}
	}
}

func TestManagerSwitch(t *testing.T) {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewInsertMode())
	_ = m.SetInitialMode(ModeNormal)

	if err := m.Switch(ModeInsert); err != nil {
		t.Errorf("Switch() error = %v", err)
	}

	if m.CurrentName() != ModeInsert {
		t.Errorf("CurrentName() after Switch = %q, want %q", m.CurrentName(), ModeInsert)
	}

	prev := m.Previous()
	if prev == nil || prev.Name() != ModeNormal {
		t.Errorf("Previous() = %v, want normal mode", prev)
	}
}

func TestManagerSwitchUnknown(t *testing.T) {
	m := NewManager()
	m.Register(NewNormalMode())
	_ = m.SetInitialMode(ModeNormal)

	err := m.Switch("unknown")
	if err == nil {
		t.Error("Switch to unknown mode should fail")
	}
	if m.CurrentName() != ModeNormal {
		t.Errorf("CurrentName() = %q, want %q", m.CurrentName(), ModeNormal)
	}
}

func TestManagerSwitchLeavingCommandClearsBuffer(t *testing.T) {
	m := NewDefaultManager()
	_ = m.Switch(ModeCommand)

	cmd := m.Current().(*CommandMode)
	cmd.SetBuffer("s draft")

	_ = m.Switch(ModeNormal)
	if cmd.Buffer() != "" {
		t.Errorf("Buffer() after leaving = %q, want empty", cmd.Buffer())
	}
}

func TestManagerIsMode(t *testing.T) {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewInsertMode())
	_ = m.SetInitialMode(ModeNormal)

	if !m.IsMode(ModeNormal) {
		t.Error("IsMode(normal) should be true")
	}
	if m.IsMode(ModeInsert) {
		t.Error("IsMode(insert) should be false")
	}
}

func TestManagerOnChange(t *testing.T) {
	m := NewManager()
	m.Register(NewNormalMode())
	m.Register(NewInsertMode())
	_ = m.SetInitialMode(ModeNormal)

	var fromName, toName string
	callCount := 0

	unregister := m.OnChange(func(from, to Mode) {
		callCount++
		if from != nil {
			fromName = from.Name()
		}
		toName = to.Name()
	})

	_ = m.Switch(ModeInsert)

	if callCount != 1 {
		t.Errorf("callback called %d times, want 1", callCount)
	}
	if fromName != ModeNormal {
		t.Errorf("from = %q, want %q", fromName, ModeNormal)
	}
	if toName != ModeInsert {
		t.Errorf("to = %q, want %q", toName, ModeInsert)
	}

	unregister()

	_ = m.Switch(ModeNormal)

	// Callback should not be called again
	if callCount != 1 {
		t.Errorf("callback called %d times after unregister, want 1", callCount)
	}
}

func TestManagerCurrentWithNoMode(t *testing.T) {
	m := NewManager()

	if m.Current() != nil {
		t.Error("Current() should be nil when no mode set")
	}
	if m.CurrentName() != "" {
		t.Errorf("CurrentName() = %q, want empty", m.CurrentName())
	}
	if m.Previous() != nil {
		t.Error("Previous() should be nil")
	}
}
