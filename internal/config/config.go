// Package config loads pipeline configuration from environment
// variables with sensible repository-layout defaults.
package config

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/joe-lloyd/model-blog/internal/logging"
)

// Config holds configuration for all pipeline stages. Every stage reads
// the full struct; unused fields are simply ignored by that stage.
type Config struct {
	// Source media, organized as <dir>/images/<slug>/ and <dir>/videos/<slug>/
	MediaInDir string `env:"MEDIA_IN_DIR" env-default:"scripts/media-in"`
	// Derived media tree written by the generators and read by the publisher
	MediaOutDir string `env:"MEDIA_OUT_DIR" env-default:"scripts/media-out"`
	// Directory of per-post front-matter documents (<slug>.mdx)
	ContentDir string `env:"CONTENT_DIR" env-default:"src/content"`

	// Object storage target for the publish stage
	Bucket   string `env:"S3_BUCKET" env-default:"modelblogbucket"`
	Region   string `env:"S3_REGION" env-default:"eu-central-1"`
	Endpoint string `env:"S3_ENDPOINT" env-default:"s3.eu-central-1.amazonaws.com"`

	// Base URL prefixing published assets in the rendered site
	PublicBaseURL string `env:"PUBLIC_ASSET_BASE_URL" env-default:""`

	// Cap on concurrent image variant tasks (0 = sized from CPU count)
	ImageWorkers int `env:"IMAGE_WORKERS" env-default:"0"`

	// Skip video outputs that already exist instead of re-encoding
	SkipExistingVideos bool `env:"SKIP_EXISTING_VIDEOS" env-default:"false"`

	// Per-invocation ffmpeg timeout; 0 disables the timeout
	TranscodeTimeout time.Duration `env:"TRANSCODE_TIMEOUT" env-default:"0"`

	// Optional Prometheus Pushgateway for end-of-run stage metrics
	PushgatewayURL string `env:"PUSHGATEWAY_URL" env-default:""`
}

// ImagesInDir returns the source image tree root.
func (c *Config) ImagesInDir() string { return filepath.Join(c.MediaInDir, "images") }

// VideosInDir returns the source video tree root.
func (c *Config) VideosInDir() string { return filepath.Join(c.MediaInDir, "videos") }

// ImagesOutDir returns the derived image tree root.
func (c *Config) ImagesOutDir() string { return filepath.Join(c.MediaOutDir, "images") }

// VideosOutDir returns the derived video tree root.
func (c *Config) VideosOutDir() string { return filepath.Join(c.MediaOutDir, "videos") }

// DocumentPath returns the front-matter document path for a slug.
func (c *Config) DocumentPath(slug string) string {
	return filepath.Join(c.ContentDir, slug+".mdx")
}

// Load reads configuration from the environment and logs the resolved
// values so each stage's run records what it operated on.
func Load() (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if cfg.ImageWorkers < 0 {
		return nil, fmt.Errorf("IMAGE_WORKERS must not be negative, got %d", cfg.ImageWorkers)
	}

	logging.Info("------------------------------------------------------------")
	logging.Info("CONFIGURATION")
	logging.Info("------------------------------------------------------------")
	logging.Info("  MEDIA_IN_DIR:          %s", cfg.MediaInDir)
	logging.Info("  MEDIA_OUT_DIR:         %s", cfg.MediaOutDir)
	logging.Info("  CONTENT_DIR:           %s", cfg.ContentDir)
	logging.Info("  S3_BUCKET:             %s", cfg.Bucket)
	logging.Info("  S3_REGION:             %s", cfg.Region)
	logging.Info("  S3_ENDPOINT:           %s", cfg.Endpoint)
	logging.Info("  PUBLIC_ASSET_BASE_URL: %s", cfg.PublicBaseURL)
	logging.Info("  IMAGE_WORKERS:         %d", cfg.ImageWorkers)
	logging.Info("  SKIP_EXISTING_VIDEOS:  %v", cfg.SkipExistingVideos)
	logging.Info("  TRANSCODE_TIMEOUT:     %s", cfg.TranscodeTimeout)
	logging.Info("  PUSHGATEWAY_URL:       %s", cfg.PushgatewayURL)
	logging.Info("  LOG_LEVEL:             %s", logging.GetLevel())
	logging.Info("------------------------------------------------------------")

	return &cfg, nil
}

// MustLoad loads configuration or terminates the stage.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		logging.Fatal("Configuration error: %v", err)
	}
	return cfg
}
