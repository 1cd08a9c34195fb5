package media

import (
	"path/filepath"
	"regexp"
	"strings"
)

var (
	sizeSuffixRe    = regexp.MustCompile(`(?i)-(small|medium|large|extraLarge|thumbnail)$`)
	previewSuffixRe = regexp.MustCompile(`(?i)-preview$`)
)

// CleanImageName maps a raw image filename to its canonical name by
// stripping the extension and any trailing size suffix. All size
// variants of one source image share the resulting name. Names without
// a suffix are returned unchanged (minus extension), so the function is
// idempotent.
func CleanImageName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return sizeSuffixRe.ReplaceAllString(base, "")
}

// CleanVideoName maps a raw video filename to its canonical name by
// stripping the extension and a trailing -preview suffix.
func CleanVideoName(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	return previewSuffixRe.ReplaceAllString(base, "")
}
