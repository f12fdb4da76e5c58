// Package config resolves linedit settings.
//
// Settings are layered with higher layers overriding lower:
//
//	┌─────────────────────────────┐
//	│  4. Command Line Flags      │  ← applied by cmd/linedit
//	├─────────────────────────────┤
//	│  3. Environment Variables   │  ← LINEDIT_*
//	├─────────────────────────────┤
//	│  2. Config File             │  ← ~/.config/linedit/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │
//	└─────────────────────────────┘
//
// The file may be TOML or YAML, chosen by extension:
//
//	[editor]
//	tabWidth = 4
//
//	[document]
//	sessionGuard = false
//	recovery = true
//	recoveryInterval = "2s"
//	watch = true
//
//	[logging]
//	level = "info"
//	file = ""
//
// Environment variables follow LINEDIT_<SECTION>_<SETTING>, so
// LINEDIT_EDITOR_TAB_WIDTH sets editor.tabWidth. LINEDIT_LOG_LEVEL,
// LINEDIT_LOG_FILE, LINEDIT_TAB_WIDTH, LINEDIT_SESSION_GUARD and
// LINEDIT_RECOVERY_INTERVAL are accepted as shorthands.
package config
