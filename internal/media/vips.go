package media

import (
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/joe-lloyd/model-blog/internal/logging"
)

var (
	vipsInitialized bool
	vipsInitMutex   sync.Mutex
)

// InitVips initializes the libvips library.
// This should be called once at stage startup, before any image work.
func InitVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		return
	}

	// Route vips log output through our leveled logger, thresholded by
	// the configured LOG_LEVEL. Configure before Startup().
	var vipsLogLevel vips.LogLevel
	switch logging.GetLevel() {
	case logging.LevelDebug:
		vipsLogLevel = vips.LogLevelInfo
	case logging.LevelWarn:
		vipsLogLevel = vips.LogLevelError
	case logging.LevelError:
		vipsLogLevel = vips.LogLevelCritical
	default:
		vipsLogLevel = vips.LogLevelWarning
	}
	vips.LoggingSettings(func(domain string, level vips.LogLevel, msg string) {
		switch level {
		case vips.LogLevelError, vips.LogLevelCritical:
			logging.Error("[%s] %s", domain, msg)
		case vips.LogLevelWarning:
			logging.Warn("[%s] %s", domain, msg)
		default:
			logging.Debug("[%s] %s", domain, msg)
		}
	}, vipsLogLevel)

	// Conservative memory settings: the worker pool provides the
	// parallelism, so vips itself processes one image at a time.
	vips.Startup(&vips.Config{
		ConcurrencyLevel: 1,
		MaxCacheMem:      50 * 1024 * 1024,
		MaxCacheSize:     100,
		ReportLeaks:      false,
	})

	vipsInitialized = true
	logging.Info("libvips initialized (version: %s)", vips.Version)
}

// ShutdownVips cleans up libvips resources.
func ShutdownVips() {
	vipsInitMutex.Lock()
	defer vipsInitMutex.Unlock()

	if vipsInitialized {
		vips.Shutdown()
		vipsInitialized = false
		logging.Debug("libvips shutdown complete")
	}
}
