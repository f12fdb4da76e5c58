// Package editor binds a document to a cursor and the modal input states.
//
// HandleKey is the single entry point for input. Each key is processed to
// completion: the current mode translates it into an action, the editor
// runs the action against the document, and the cursor is updated, before
// HandleKey returns.
//
// Navigation is soft-wrap aware. Every call that depends on layout takes the
// viewport width as an argument, so Move and LogicalToScreen always agree on
// where a logical position sits on screen.
package editor
