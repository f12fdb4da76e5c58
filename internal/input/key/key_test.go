package key

import (
	"testing"
)

func TestKeyString(t *testing.T) {
	tests := []struct {
		key  Key
		want string
	}{
		{KeyNone, "None"},
		{KeyEscape, "Escape"},
		{KeyEnter, "Enter"},
		{KeyTab, "Tab"},
		{KeyBackspace, "Backspace"},
		{KeyDelete, "Delete"},
		{KeyUp, "Up"},
		{KeyDown, "Down"},
		{KeyLeft, "Left"},
		{KeyRight, "Right"},
		{KeyRune, "Rune"},
		{Key(200), "Key(200)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("Key.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKeyIsSpecial(t *testing.T) {
	tests := []struct {
		key  Key
		want bool
	}{
		{KeyNone, false},
		{KeyRune, false},
		{KeyEscape, true},
		{KeyEnter, true},
		{KeyUp, true},
	}

	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			if got := tt.key.IsSpecial(); got != tt.want {
				t.Errorf("Key.IsSpecial() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestKeyIsArrowKey(t *testing.T) {
	for _, k := range []Key{KeyUp, KeyDown, KeyLeft, KeyRight} {
		if !k.IsArrowKey() {
			t.Errorf("%v.IsArrowKey() = false, want true", k)
		}
	}
	for _, k := range []Key{KeyHome, KeyEnter, KeyRune} {
		if k.IsArrowKey() {
			t.Errorf("%v.IsArrowKey() = true, want false", k)
		}
	}
}

func TestKeyFromName(t *testing.T) {
	tests := []struct {
		name string
		want Key
	}{
		{"Esc", KeyEscape},
		{"CR", KeyEnter},
		{"return", KeyEnter},
		{"BS", KeyBackspace},
		{" left ", KeyLeft},
		{"PgDn", KeyPageDown},
		{"bogus", KeyNone},
	}

	for _, tt := range tests {
		if got := KeyFromName(tt.name); got != tt.want {
			t.Errorf("KeyFromName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
