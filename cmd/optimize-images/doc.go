// Command optimize-images generates responsive webp variants for every
// source image under the media input tree.
//
// For each source image (.jpg, .jpeg, .png) it produces five webp
// renditions named <base>-<size>.webp:
//
//	thumbnail    480x480, center-cropped square
//	small        600px long edge
//	medium       800px long edge
//	large        1200px long edge
//	extraLarge   1920px long edge
//
// EXIF orientation is applied before resizing, so a rotated phone
// photo comes out with upright pixels and no orientation tag.
//
// The run is idempotent: variants whose output file already exists are
// skipped, so re-running after adding new sources only does new work.
// Generation runs on a bounded worker pool; a single bad source file
// is logged and does not stop the batch.
//
// Environment:
//
//	MEDIA_IN_DIR   - Source media root (default: scripts/media-in)
//	MEDIA_OUT_DIR  - Derived media root (default: scripts/media-out)
//	IMAGE_WORKERS  - Worker pool cap, 0 means sized from CPU count
//	MEMORY_LIMIT   - Soft memory limit, e.g. 2GiB (optional)
//	LOG_LEVEL      - Logging level (debug/info/warn/error)
//
// Exits non-zero if any variant fails to generate.
package main
