// Package mode provides the modal input states of the editor.
//
// There are three modes:
//   - Normal mode: navigation and mode switching
//   - Insert mode: text input
//   - Command mode: a one-line command prompt opened with ':'
//
// A mode never touches the document. It translates each key event into a
// named Action which the editor executes, so the translation can be tested
// without an editor.
//
// # Mode Lifecycle
//
// When switching modes:
//  1. Current mode's Exit() is called
//  2. New mode's Enter() is called
//  3. Mode change callbacks are notified
package mode
