package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/joe-lloyd/model-blog/internal/config"
	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/metrics"
	"github.com/joe-lloyd/model-blog/internal/publisher"
)

func main() {
	startTime := time.Now()

	cfg := config.MustLoad()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	store, err := publisher.NewS3Store(cfg)
	if err != nil {
		logging.Error("Failed to create object store client: %v", err)
		os.Exit(1)
	}

	run := metrics.NewRun("publish")
	pub := publisher.New(store)

	uploaded, skipped := 0, 0
	trees := []struct {
		localDir string
		prefix   string
	}{
		{cfg.ImagesOutDir(), "images"},
		{cfg.VideosOutDir(), "videos"},
	}
	for _, tree := range trees {
		summary, err := pub.PublishTree(ctx, tree.localDir, tree.prefix)
		uploaded += summary.Uploaded
		skipped += summary.Skipped
		if err != nil {
			logging.Error("Publish aborted under %s/: %v", tree.prefix, err)
			if errors.Is(err, publisher.ErrTransport) {
				logging.Error("Check AWS credentials (AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY or ~/.aws/credentials) and bucket %q", cfg.Bucket)
			}
			os.Exit(1)
		}
	}

	run.FilesUploaded.Add(float64(uploaded))
	run.FilesSkipped.Add(float64(skipped))
	run.Report(cfg.PushgatewayURL)

	logging.Info("Publish complete in %v: %d uploaded, %d skipped",
		time.Since(startTime).Round(time.Millisecond), uploaded, skipped)
	if cfg.PublicBaseURL != "" {
		logging.Info("Assets are served under %s/{images,videos}/", strings.TrimRight(cfg.PublicBaseURL, "/"))
	}
}
