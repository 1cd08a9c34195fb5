// Package mediatypes provides shared extension and content-type tables
// for the media pipeline.
//
// This package exists as a dependency-free foundation that can be
// imported by the other pipeline packages without creating import
// cycles. It contains only constants, maps, and pure functions.
package mediatypes
