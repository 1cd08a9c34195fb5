package main

import (
	"os"
	"time"

	"github.com/joe-lloyd/model-blog/internal/config"
	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/media"
	"github.com/joe-lloyd/model-blog/internal/memory"
	"github.com/joe-lloyd/model-blog/internal/metrics"
	"github.com/joe-lloyd/model-blog/internal/workers"
)

func main() {
	startTime := time.Now()

	cfg := config.MustLoad()

	// Native codecs allocate outside the Go heap, so set a soft limit
	// before the first image is decoded.
	memory.ConfigureFromEnv()

	media.InitVips()
	defer media.ShutdownVips()

	run := metrics.NewRun("optimize_images")

	tasks, outcomes, err := media.Plan(cfg.ImagesInDir(), cfg.ImagesOutDir())
	if err != nil {
		logging.Error("Failed to plan image variants: %v", err)
		os.Exit(1)
	}
	skipped := len(outcomes)
	logging.Info("Planned %d variant(s) to generate, %d already present", len(tasks), skipped)

	numWorkers := workers.ForCPU(cfg.ImageWorkers)
	gen := media.NewGenerator()
	results := gen.Run(tasks, numWorkers)
	generated, failed := media.Tally(results)

	run.VariantsGenerated.Add(float64(generated))
	run.VariantsSkipped.Add(float64(skipped))
	run.VariantsFailed.Add(float64(failed))
	run.Report(cfg.PushgatewayURL)

	logging.Info("Image optimization complete in %v: %d generated, %d skipped, %d failed",
		time.Since(startTime).Round(time.Millisecond), generated, skipped, failed)

	if failed > 0 {
		os.Exit(1)
	}
}
