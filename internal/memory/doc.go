// Package memory configures the Go runtime's soft memory limit for
// batch runs that lean on native image codecs. It honors GOMEMLIMIT
// when present and otherwise derives a limit from MEMORY_LIMIT or the
// detected system memory.
package memory
