// Package key defines the key events the editor consumes.
//
// An Event is either a character (Key == KeyRune, with Rune set) or one of
// the special keys the editor understands. Tests and scripted input can
// describe events in Vim notation:
//
//	events := key.MustParseSequence("ab<CR>c<Esc>:q<CR>")
package key
