// Command optimize-videos transcodes every source video under the media
// input tree into web-friendly renditions using ffmpeg.
//
// For each source video (.mp4, .mov, .avi) it produces:
//
//	<base>.webm           720p VP9 at 1M video bitrate with Opus audio
//	<base>-preview.webm   1 second, 480x480 center-cropped, no audio
//
// By default every rendition is regenerated on each run. Set
// SKIP_EXISTING_VIDEOS=true to skip renditions whose output file
// already exists, which makes the stage idempotent like the image
// stage. A failed ffmpeg invocation is logged with its stderr and the
// batch continues with the next file.
//
// Environment:
//
//	MEDIA_IN_DIR          - Source media root (default: scripts/media-in)
//	MEDIA_OUT_DIR         - Derived media root (default: scripts/media-out)
//	SKIP_EXISTING_VIDEOS  - Skip existing renditions (default: false)
//	TRANSCODE_TIMEOUT     - Per-invocation ffmpeg timeout, 0 for none
//	LOG_LEVEL             - Logging level (debug/info/warn/error)
//
// Requires ffmpeg on PATH. Exits non-zero if any rendition fails.
package main
