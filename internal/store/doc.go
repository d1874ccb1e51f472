// Package store persists projector data between invocations.
//
// Two backends implement the same contract:
//
//   - FileStore (default, "json"): a single JSON document
//     {"projector": {"<dir>": {"<key>": "<value>"}}}
//   - SQLStore ("sqlite"): a SQLite database with one row per (dir, key).
//
// # Load
//
// Load never fails. A missing backing file yields an empty store. An
// unreadable or unparsable one also yields an empty store; the difference is
// only visible on the diagnostic logger (debug for missing, warn for
// corrupt). A corrupt file is overwritten by the next Save.
//
// Load never creates or modifies the backing file.
//
// # Save
//
// Save replaces the backing file wholesale with the full store. There are no
// partial writes. Any I/O error is returned to the caller.
//
// Neither backend coordinates concurrent processes: the last Save wins.
package store
