// Command map-media scans the media trees and rewrites each content
// document's front-matter with its image list, video list, and cover
// image.
//
// For every slug directory found under the image or video source tree
// it locates the matching document at CONTENT_DIR/<slug>.mdx, probes
// image dimensions (orientation-corrected), collapses size-suffixed
// variants to one canonical entry per image, orders entries by
// timestamp or numeric filename with file modification time as the
// fallback, and sets the cover image to the last entry.
//
// A slug with no matching document is warned about and skipped. A
// document is rewritten only when at least one derived list came out
// non-empty; an empty scan never clears a previously written list.
// Unknown paint keys in a document's paint lists are warned about.
//
// Environment:
//
//	MEDIA_IN_DIR   - Source media root (default: scripts/media-in)
//	MEDIA_OUT_DIR  - Derived media root (default: scripts/media-out)
//	CONTENT_DIR    - Content document root (default: src/content)
//	LOG_LEVEL      - Logging level (debug/info/warn/error)
package main
