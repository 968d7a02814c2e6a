// Package repocache maps remote repository descriptors onto checkouts under
// a cache root.
//
// A checkout lives at <root>/<host>/<owner>/<repo>/<ref>. The presence of that
// directory is the only completion signal: checkouts are cloned into a
// temporary sibling directory and renamed into place once the clone succeeded,
// so a directory at the key is never a partial checkout. Existing directories
// are reused as-is; their contents are not verified or refreshed.
//
// Concurrent requests for the same key within a process share one clone.
package repocache
