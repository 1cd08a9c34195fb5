package main

import (
	"os"
	"time"

	"github.com/joe-lloyd/model-blog/internal/config"
	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/mapper"
	"github.com/joe-lloyd/model-blog/internal/media"
	"github.com/joe-lloyd/model-blog/internal/metrics"
	"github.com/joe-lloyd/model-blog/internal/paints"
)

func main() {
	startTime := time.Now()

	cfg := config.MustLoad()

	table, err := paints.Load()
	if err != nil {
		logging.Error("Failed to load paint table: %v", err)
		os.Exit(1)
	}

	// Dimension probing prefers the native decoder when available.
	media.InitVips()
	defer media.ShutdownVips()

	run := metrics.NewRun("map_media")

	m := mapper.New(cfg, table)
	summary, err := m.Run()
	if err != nil {
		logging.Error("Media mapping failed: %v", err)
		os.Exit(1)
	}

	run.DocumentsUpdated.Add(float64(summary.SlugsUpdated))
	run.Report(cfg.PushgatewayURL)

	logging.Info("Media mapping complete in %v: %d document(s) updated, %d skipped, %d image(s), %d video(s)",
		time.Since(startTime).Round(time.Millisecond),
		summary.SlugsUpdated, summary.SlugsSkipped, summary.Images, summary.Videos)
}
