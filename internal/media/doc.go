// Package media implements the image half of the pipeline: canonical
// name resolution for size-suffixed files, dimension and orientation
// probing, and generation of the per-breakpoint webp variants that make
// up the derived media tree.
package media
