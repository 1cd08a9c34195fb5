// Package content reads and writes the per-entry front-matter documents
// that drive the gallery: a YAML header between --- delimiters followed
// by a free-form MDX body.
package content
