package mapper

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/joe-lloyd/model-blog/internal/config"
	"github.com/joe-lloyd/model-blog/internal/content"
	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/media"
	"github.com/joe-lloyd/model-blog/internal/mediatypes"
	"github.com/joe-lloyd/model-blog/internal/paints"
)

// Record is one canonical image with the best metadata seen across its
// size variants.
type Record struct {
	Name    string
	Width   int
	Height  int
	ModTime time.Time

	// fromProcessed marks dimensions read from the derived tree, which
	// are definitive and always win over source probes.
	fromProcessed bool
}

// Mapper derives canonical media lists from the media trees and injects
// them into each entry's front-matter document.
type Mapper struct {
	cfg    *config.Config
	paints paints.Table
}

// New creates a Mapper.
func New(cfg *config.Config, table paints.Table) *Mapper {
	return &Mapper{cfg: cfg, paints: table}
}

// Summary reports what a mapping run did.
type Summary struct {
	SlugsUpdated int
	SlugsSkipped int
	Images       int
	Videos       int
}

// Run maps every slug found in the image and video source trees. Slugs
// without a content document are warned about and skipped; a document
// is rewritten only when at least one derived list is non-empty, and an
// absent list never clears a previously written one.
func (m *Mapper) Run() (Summary, error) {
	var summary Summary

	slugs, err := m.discoverSlugs()
	if err != nil {
		return summary, err
	}

	for _, slug := range slugs {
		docPath := m.cfg.DocumentPath(slug)
		if _, err := os.Stat(docPath); err != nil {
			logging.Warn("No content document found for slug %q at %s", slug, docPath)
			summary.SlugsSkipped++
			continue
		}

		images := m.collectImages(slug)
		videos := m.collectVideos(slug)

		doc, err := content.Read(docPath)
		if err != nil {
			return summary, err
		}

		m.warnUnknownPaints(slug, doc)

		updated := false
		if len(images) > 0 {
			doc.Header.ImageNames = toImageRefs(images)
			doc.Header.CoverImage = images[len(images)-1].Name
			updated = true
		}
		if len(videos) > 0 {
			doc.Header.VideoNames = videos
			updated = true
		}

		if !updated {
			continue
		}
		if err := content.Write(docPath, doc); err != nil {
			return summary, err
		}

		logging.Info("Updated %s.mdx: %d images, %d videos", slug, len(images), len(videos))
		summary.SlugsUpdated++
		summary.Images += len(images)
		summary.Videos += len(videos)
	}

	return summary, nil
}

// discoverSlugs returns the union of slug directories across the image
// and video source trees, in first-seen order.
func (m *Mapper) discoverSlugs() ([]string, error) {
	var slugs []string
	seen := map[string]bool{}

	for _, dir := range []string{m.cfg.ImagesInDir(), m.cfg.VideosInDir()} {
		entries, err := os.ReadDir(dir)
		if os.IsNotExist(err) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", dir, err)
		}
		for _, entry := range entries {
			if entry.IsDir() && !seen[entry.Name()] {
				seen[entry.Name()] = true
				slugs = append(slugs, entry.Name())
			}
		}
	}
	return slugs, nil
}

// collectImages gathers canonical image records for one slug, deduped
// by canonical name with best-metadata-wins, then display-sorted.
func (m *Mapper) collectImages(slug string) []Record {
	dir := filepath.Join(m.cfg.ImagesInDir(), slug)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	byName := map[string]*Record{}
	var order []string

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		filename := entry.Name()
		ext := strings.ToLower(filepath.Ext(filename))
		if mediatypes.GetFileType(ext) != mediatypes.FileTypeImage {
			continue
		}

		clean := media.CleanImageName(filename)
		rec := Record{Name: clean}

		sourcePath := filepath.Join(dir, filename)
		if info, statErr := os.Stat(sourcePath); statErr == nil {
			rec.ModTime = info.ModTime()
		}

		// Prefer the generated extraLarge variant: it reflects exactly
		// what the site serves, rotation already applied.
		processedPath := filepath.Join(m.cfg.ImagesOutDir(), slug, clean+"-extraLarge.webp")
		if dims, probeErr := media.Probe(processedPath); probeErr == nil {
			rec.Width, rec.Height = dims.Width, dims.Height
			rec.fromProcessed = true
		} else {
			if dims, probeErr := media.Probe(sourcePath); probeErr == nil {
				rec.Width, rec.Height = dims.Width, dims.Height
			} else {
				logging.Warn("Could not read metadata for %s: %v", filename, probeErr)
			}
		}

		existing := byName[clean]
		if !shouldUpdate(existing, filename, rec) {
			continue
		}
		if existing == nil {
			order = append(order, clean)
		} else if !existing.ModTime.IsZero() {
			// Keep the earliest mtime seen for the canonical name.
			rec.ModTime = existing.ModTime
		}
		byName[clean] = &rec
	}

	records := make([]Record, 0, len(order))
	for _, name := range order {
		records = append(records, *byName[name])
	}

	sort.SliceStable(records, func(i, j int) bool {
		return displayLess(records[i], records[j])
	})
	return records
}

// shouldUpdate decides whether a newly probed variant replaces the
// record already held for its canonical name: first sighting, an
// explicit extraLarge file, larger dimensions, or definitive processed
// dimensions all win.
func shouldUpdate(existing *Record, filename string, rec Record) bool {
	if existing == nil {
		return true
	}
	if strings.Contains(filename, "extraLarge") {
		return true
	}
	if rec.Width > existing.Width {
		return true
	}
	return rec.fromProcessed
}

// collectVideos gathers unique canonical video names for one slug in
// first-seen order.
func (m *Mapper) collectVideos(slug string) []string {
	dir := filepath.Join(m.cfg.VideosInDir(), slug)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}

	var names []string
	seen := map[string]bool{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if mediatypes.GetFileType(ext) != mediatypes.FileTypeVideo {
			continue
		}
		clean := media.CleanVideoName(entry.Name())
		if !seen[clean] {
			seen[clean] = true
			names = append(names, clean)
		}
	}
	return names
}

func (m *Mapper) warnUnknownPaints(slug string, doc *content.Document) {
	lists := map[string][]string{
		"airbrushPaints": doc.Header.AirbrushPaints,
		"brushPaints":    doc.Header.BrushPaints,
		"speedPaints":    doc.Header.SpeedPaints,
		"washes":         doc.Header.Washes,
	}
	for field, keys := range lists {
		for _, key := range m.paints.UnknownKeys(keys) {
			logging.Warn("Unknown paint key %q in %s of %s", key, field, slug)
		}
	}
}

func toImageRefs(records []Record) []content.ImageRef {
	refs := make([]content.ImageRef, 0, len(records))
	for _, rec := range records {
		refs = append(refs, content.ImageRef{Name: rec.Name, Width: rec.Width, Height: rec.Height})
	}
	return refs
}

var timestampRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_(\d{2})(\d{2})(\d{2})$`)

// parseTimestamp extracts a YYYYMMDD_HHMMSS capture timestamp from a
// canonical name.
func parseTimestamp(name string) (time.Time, bool) {
	match := timestampRe.FindStringSubmatch(name)
	if match == nil {
		return time.Time{}, false
	}
	toInt := func(s string) int {
		n, _ := strconv.Atoi(s)
		return n
	}
	return time.Date(
		toInt(match[1]), time.Month(toInt(match[2])), toInt(match[3]),
		toInt(match[4]), toInt(match[5]), toInt(match[6]),
		0, time.Local,
	), true
}

// displayLess is the gallery display order: timestamp-named files go
// last (chronological among themselves), hand-named files come first,
// numerically when both names are plain integers, by modification time
// otherwise. The last element of the resulting order becomes the cover
// image.
func displayLess(a, b Record) bool {
	tsA, okA := parseTimestamp(a.Name)
	tsB, okB := parseTimestamp(b.Name)

	switch {
	case okA && okB:
		return tsA.Before(tsB)
	case okA:
		return false
	case okB:
		return true
	}

	numA, errA := strconv.Atoi(a.Name)
	numB, errB := strconv.Atoi(b.Name)
	if errA == nil && errB == nil {
		return numA < numB
	}

	return a.ModTime.Before(b.ModTime)
}
