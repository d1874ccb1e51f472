// Package projector resolves directory-scoped key/value pairs.
//
// Values are attached to individual directories. A lookup made from
// directory D walks D's ancestor chain up to the filesystem root:
//
//	/            {"foo": "bar1", "fem": "is great"}
//	/foo         {"foo": "baz",  "bar": "baz"}
//	/foo/bar     {"foo": "bar3"}
//
// Resolved from /foo/bar this yields foo=bar3, bar=baz, fem=is great. The
// directory closest to D wins.
//
// # Invariants
//
//   - GetValue(k) always agrees with GetValues()[k], including absence.
//   - SetValue and RemoveValue only touch D's own map.
//   - The ancestor walk terminates at the root, whose parent is itself.
//
// The package is purely in-memory. Loading and saving Data is the job of
// internal/store.
package projector
