package transcoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/mediatypes"
)

// ErrTranscode indicates an external ffmpeg invocation failed. The
// failing file is logged and skipped; sibling files continue.
var ErrTranscode = errors.New("transcode failed")

const (
	// FullHeight is the vertical resolution of the full rendition.
	FullHeight = 720
	// PreviewSize is the square edge of the 1-second preview clip.
	PreviewSize = 480
	// videoBitrate is the VP9 target bitrate for both renditions.
	videoBitrate = "1M"
)

// Transcoder produces webm renditions of source videos by shelling out
// to ffmpeg, one invocation per output file.
type Transcoder struct {
	skipExisting bool
	timeout      time.Duration

	// run executes one ffmpeg invocation. Replaceable in tests.
	run func(ctx context.Context, args []string) error
}

// New creates a Transcoder. When skipExisting is true, renditions whose
// output file already exists are not regenerated. A timeout of 0 lets
// each invocation run unbounded.
func New(skipExisting bool, timeout time.Duration) *Transcoder {
	t := &Transcoder{skipExisting: skipExisting, timeout: timeout}
	t.run = t.runFFmpeg
	return t
}

// Summary reports what a ProcessTree run did.
type Summary struct {
	Generated int
	Skipped   int
	Failed    int
}

// ProcessTree walks the source video tree and generates, for every
// source file, a full-length webm rendition and a short square preview
// clip under outDir, preserving directory structure.
func (t *Transcoder) ProcessTree(ctx context.Context, inDir, outDir string) (Summary, error) {
	var summary Summary

	err := filepath.WalkDir(inDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !mediatypes.SourceVideoExtensions[ext] {
			return nil
		}

		rel, relErr := filepath.Rel(inDir, filepath.Dir(path))
		if relErr != nil {
			return relErr
		}
		targetDir := filepath.Join(outDir, rel)
		if mkErr := os.MkdirAll(targetDir, 0755); mkErr != nil {
			return fmt.Errorf("failed to create output directory %s: %w", targetDir, mkErr)
		}

		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		fullOut := filepath.Join(targetDir, base+".webm")
		t.renderOne(ctx, fullArgs(path, fullOut), fullOut, &summary)

		previewOut := filepath.Join(targetDir, base+"-preview.webm")
		t.renderOne(ctx, previewArgs(path, previewOut), previewOut, &summary)

		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("failed to walk %s: %w", inDir, err)
	}
	return summary, nil
}

// renderOne generates a single rendition, folding the result into the
// summary. Failures are logged, never propagated.
func (t *Transcoder) renderOne(ctx context.Context, args []string, outPath string, summary *Summary) {
	if t.skipExisting {
		if _, err := os.Stat(outPath); err == nil {
			logging.Debug("Skipping existing rendition: %s", outPath)
			summary.Skipped++
			return
		}
	}

	if err := t.run(ctx, args); err != nil {
		logging.Error("%v: %s: %v", ErrTranscode, outPath, err)
		summary.Failed++
		return
	}
	logging.Info("Generated: %s", outPath)
	summary.Generated++
}

// fullArgs builds the ffmpeg arguments for the full-length rendition:
// scaled to FullHeight, VP9 video, Opus audio.
func fullArgs(inPath, outPath string) []string {
	return []string{
		"-y",
		"-i", inPath,
		"-vf", fmt.Sprintf("scale=-1:%d", FullHeight),
		"-c:v", "libvpx-vp9",
		"-b:v", videoBitrate,
		"-c:a", "libopus",
		outPath,
	}
}

// previewArgs builds the ffmpeg arguments for the 1-second, audio-less,
// center-cropped square preview clip.
func previewArgs(inPath, outPath string) []string {
	return []string{
		"-y",
		"-i", inPath,
		"-t", "1",
		"-vf", fmt.Sprintf("scale=-1:%d,crop=%d:%d", PreviewSize, PreviewSize, PreviewSize),
		"-an",
		"-c:v", "libvpx-vp9",
		"-b:v", videoBitrate,
		outPath,
	}
}

// runFFmpeg executes one ffmpeg invocation, capturing stderr for the
// error message.
func (t *Transcoder) runFFmpeg(ctx context.Context, args []string) error {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}

	if logging.IsDebugEnabled() {
		logging.Debug("Running: ffmpeg %s", strings.Join(args, " "))
	}

	cmd := exec.CommandContext(ctx, "ffmpeg", args...)

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("ffmpeg timed out: %w", ctx.Err())
		}
		return fmt.Errorf("ffmpeg error: %w - %s", err, stderr.String())
	}
	return nil
}
