// Package mapper implements the mapping stage: it discovers slugs in
// the source media trees, probes each image's display dimensions,
// resolves size variants to canonical names, orders them for display,
// and injects the resulting lists into the per-entry front-matter.
package mapper
