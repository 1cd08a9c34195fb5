package memory

import (
	"fmt"
	"os"
	"runtime/debug"
	"strconv"
	"strings"

	"github.com/joe-lloyd/model-blog/internal/logging"
)

// DefaultMemoryRatio is the fraction of detected system memory used for
// the soft limit when no explicit limit is configured.
const DefaultMemoryRatio = 0.85

// ConfigResult describes the outcome of ConfigureFromEnv.
type ConfigResult struct {
	// Limit is the soft memory limit in bytes, or 0 if none was applied.
	Limit int64
	// Source describes where the limit came from ("GOMEMLIMIT",
	// "MEMORY_LIMIT", "detected", or "none").
	Source string
}

// ConfigureFromEnv sets the runtime soft memory limit for the process.
//
// Native image codecs allocate outside the Go heap's view, so a batch run
// over a large directory can balloon past what the garbage collector would
// otherwise react to. Precedence:
//
//  1. GOMEMLIMIT, if set, is honored as-is (the runtime already parsed it).
//  2. MEMORY_LIMIT, a byte count with optional KiB/MiB/GiB suffix.
//  3. Detected system memory scaled by MEMORY_RATIO (default 0.85).
//
// If nothing is configured and detection fails, no limit is applied.
func ConfigureFromEnv() ConfigResult {
	if v := os.Getenv("GOMEMLIMIT"); v != "" {
		limit := debug.SetMemoryLimit(-1)
		logging.Debug("Memory limit set by GOMEMLIMIT: %s", v)
		return ConfigResult{Limit: limit, Source: "GOMEMLIMIT"}
	}

	if v := os.Getenv("MEMORY_LIMIT"); v != "" {
		limit, err := parseBytes(v)
		if err != nil {
			logging.Warn("Ignoring invalid MEMORY_LIMIT %q: %v", v, err)
		} else {
			debug.SetMemoryLimit(limit)
			logging.Info("Memory limit set to %s (MEMORY_LIMIT)", formatBytes(limit))
			return ConfigResult{Limit: limit, Source: "MEMORY_LIMIT"}
		}
	}

	total := detectSystemMemory()
	if total <= 0 {
		logging.Debug("System memory not detected, no memory limit applied")
		return ConfigResult{Source: "none"}
	}

	ratio := DefaultMemoryRatio
	if v := os.Getenv("MEMORY_RATIO"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil || r <= 0 || r > 1 {
			logging.Warn("Ignoring invalid MEMORY_RATIO %q", v)
		} else {
			ratio = r
		}
	}

	limit := int64(float64(total) * ratio)
	debug.SetMemoryLimit(limit)
	logging.Info("Memory limit set to %s (%.0f%% of %s system memory)",
		formatBytes(limit), ratio*100, formatBytes(total))
	return ConfigResult{Limit: limit, Source: "detected"}
}

// parseBytes parses a byte count with an optional binary suffix,
// e.g. "2GiB", "512MiB", "1073741824".
func parseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	multiplier := int64(1)
	upper := strings.ToUpper(s)
	switch {
	case strings.HasSuffix(upper, "GIB"):
		multiplier = 1 << 30
		s = s[:len(s)-3]
	case strings.HasSuffix(upper, "MIB"):
		multiplier = 1 << 20
		s = s[:len(s)-3]
	case strings.HasSuffix(upper, "KIB"):
		multiplier = 1 << 10
		s = s[:len(s)-3]
	case strings.HasSuffix(upper, "B"):
		s = s[:len(s)-1]
	}
	n, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte count: %w", err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("byte count must be positive")
	}
	return n * multiplier, nil
}

func formatBytes(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(b)/float64(div), "KMGTPE"[exp])
}
