// Package publisher pushes the derived media tree to object storage.
// Remote existence is the only idempotency signal: an object is
// uploaded at most once and never overwritten, so a changed local file
// with an unchanged name is never re-published.
package publisher
