// Package transcoder produces the derived video tree: a 720p VP9/Opus
// webm rendition and a 1-second square preview clip for every source
// video, via one external ffmpeg process per output file.
package transcoder
