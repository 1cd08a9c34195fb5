package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joe-lloyd/model-blog/internal/config"
	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/metrics"
	"github.com/joe-lloyd/model-blog/internal/transcoder"
)

func main() {
	startTime := time.Now()

	cfg := config.MustLoad()

	// Stop cleanly on interrupt so a half-written rendition is the
	// worst case, not a wedged ffmpeg child.
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	run := metrics.NewRun("optimize_videos")

	trans := transcoder.New(cfg.SkipExistingVideos, cfg.TranscodeTimeout)
	summary, err := trans.ProcessTree(ctx, cfg.VideosInDir(), cfg.VideosOutDir())
	if err != nil {
		logging.Error("Video transcoding aborted: %v", err)
		os.Exit(1)
	}

	run.VariantsGenerated.Add(float64(summary.Generated))
	run.VariantsSkipped.Add(float64(summary.Skipped))
	run.VariantsFailed.Add(float64(summary.Failed))
	run.Report(cfg.PushgatewayURL)

	logging.Info("Video transcoding complete in %v: %d generated, %d skipped, %d failed",
		time.Since(startTime).Round(time.Millisecond),
		summary.Generated, summary.Skipped, summary.Failed)

	if summary.Failed > 0 {
		os.Exit(1)
	}
}
