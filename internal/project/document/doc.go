// Package document holds the text of one file as an ordered list of
// gap-buffer lines and persists it crash-safely.
//
// Persistence works through a private shadow file that lives next to the
// target. Save writes the full text into the shadow, fsyncs it, and renames
// it over the target, so any reader of the target sees either the old or the
// new content in full. After each successful save a fresh shadow copy is
// made for the next one.
//
// A document may also write a recovery artifact capturing unsaved content,
// the original path and the cursor. Recover rebuilds a document from it.
// With the session guard enabled, Open refuses a path whose artifact already
// exists, which keeps two editors from owning the same file.
//
// Close releases the shadow file and the recovery artifact. Owners must call
// it on every exit path:
//
//	doc, err := document.Open("notes.txt")
//	if err != nil {
//	    return err
//	}
//	defer doc.Close()
//
// A Document is not safe for concurrent use.
package document
