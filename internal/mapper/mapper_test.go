package mapper

import (
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/joe-lloyd/model-blog/internal/config"
	"github.com/joe-lloyd/model-blog/internal/content"
	"github.com/joe-lloyd/model-blog/internal/paints"
)

func TestDisplayLessTimestampsChronological(t *testing.T) {
	a := Record{Name: "20230101_120000"}
	b := Record{Name: "20230615_080000"}

	if !displayLess(a, b) {
		t.Error("20230101_120000 should sort before 20230615_080000")
	}
	if displayLess(b, a) {
		t.Error("20230615_080000 should not sort before 20230101_120000")
	}
}

func TestDisplayLessTimestampsGoLast(t *testing.T) {
	numbered := Record{Name: "3", ModTime: time.Now()}
	stamped := Record{Name: "20230101_120000"}

	if !displayLess(numbered, stamped) {
		t.Error("non-timestamp name should always sort before a timestamp name")
	}
	if displayLess(stamped, numbered) {
		t.Error("timestamp name should never sort before a non-timestamp name")
	}
}

func TestDisplayLessNumericOrder(t *testing.T) {
	nine := Record{Name: "9"}
	ten := Record{Name: "10"}

	// String comparison would put "10" first; numeric order must win.
	if !displayLess(nine, ten) {
		t.Error(`"9" should sort before "10"`)
	}
	if displayLess(ten, nine) {
		t.Error(`"10" should not sort before "9"`)
	}
}

func TestDisplayLessModTimeFallback(t *testing.T) {
	older := Record{Name: "cockpit-detail", ModTime: time.Unix(1000, 0)}
	newer := Record{Name: "base-coat", ModTime: time.Unix(2000, 0)}

	if !displayLess(older, newer) {
		t.Error("older mtime should sort first when names are not comparable")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"20230101_120000", true},
		{"20231231_235959", true},
		{"20230101", false},
		{"20230101_120000x", false},
		{"IMG_0001", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ts, ok := parseTimestamp(tt.name)
			if ok != tt.ok {
				t.Fatalf("parseTimestamp(%q) ok = %v, want %v", tt.name, ok, tt.ok)
			}
			if ok && ts.IsZero() {
				t.Errorf("parseTimestamp(%q) returned zero time", tt.name)
			}
		})
	}
}

func TestShouldUpdate(t *testing.T) {
	existing := &Record{Name: "IMG_0001", Width: 800, Height: 600}

	tests := []struct {
		name     string
		existing *Record
		filename string
		rec      Record
		want     bool
	}{
		{"first sighting", nil, "IMG_0001.jpg", Record{}, true},
		{"extraLarge filename wins", existing, "IMG_0001-extraLarge.webp", Record{Width: 100}, true},
		{"larger wins", existing, "IMG_0001-large.webp", Record{Width: 1200}, true},
		{"processed wins", existing, "IMG_0001-small.webp", Record{Width: 100, fromProcessed: true}, true},
		{"smaller loses", existing, "IMG_0001-small.webp", Record{Width: 100}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := shouldUpdate(tt.existing, tt.filename, tt.rec); got != tt.want {
				t.Errorf("shouldUpdate() = %v, want %v", got, tt.want)
			}
		})
	}
}

// writeImage writes a gradient image. The extension does not have to
// match the encoding: probing sniffs content, exactly like production
// code probing derived files.
func writeImage(t *testing.T, path string, width, height int, format string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), B: 99, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	switch format {
	case "jpeg":
		err = jpeg.Encode(f, img, &jpeg.Options{Quality: 85})
	case "png":
		err = png.Encode(f, img)
	default:
		t.Fatalf("unsupported format %s", format)
	}
	if err != nil {
		t.Fatalf("Failed to encode %s: %v", path, err)
	}
}

func writeRaw(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(path, []byte(contents), 0644); err != nil {
		t.Fatalf("Failed to write %s: %v", path, err)
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()
	return &config.Config{
		MediaInDir:  filepath.Join(root, "media-in"),
		MediaOutDir: filepath.Join(root, "media-out"),
		ContentDir:  filepath.Join(root, "content"),
	}
}

func TestRunEndToEnd(t *testing.T) {
	cfg := testConfig(t)
	slugDir := filepath.Join(cfg.ImagesInDir(), "gundam-rx78")

	// A hand-named source with a derived extraLarge alongside it, plus
	// a portrait camera capture named by timestamp.
	writeImage(t, filepath.Join(slugDir, "IMG_0001.jpg"), 400, 225, "jpeg")
	writeImage(t, filepath.Join(slugDir, "IMG_0001-extraLarge.webp"), 1920, 1080, "png")
	writeImage(t, filepath.Join(slugDir, "20230101_120000.jpg"), 1080, 1920, "jpeg")

	writeRaw(t, filepath.Join(cfg.VideosInDir(), "gundam-rx78", "flight.mp4"), "v")
	writeRaw(t, filepath.Join(cfg.VideosInDir(), "gundam-rx78", "flight-preview.webm"), "v")

	writeRaw(t, cfg.DocumentPath("gundam-rx78"), "---\ntitle: RX-78\n---\nbody\n")

	table, err := paints.Load()
	if err != nil {
		t.Fatalf("paints.Load() error: %v", err)
	}

	summary, err := New(cfg, table).Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.SlugsUpdated != 1 {
		t.Errorf("SlugsUpdated = %d, want 1", summary.SlugsUpdated)
	}

	doc, err := content.Read(cfg.DocumentPath("gundam-rx78"))
	if err != nil {
		t.Fatalf("content.Read() error: %v", err)
	}

	h := doc.Header
	if len(h.ImageNames) != 2 {
		t.Fatalf("ImageNames = %+v, want 2 entries", h.ImageNames)
	}
	if h.ImageNames[0].Name != "IMG_0001" || h.ImageNames[0].Width != 1920 || h.ImageNames[0].Height != 1080 {
		t.Errorf("ImageNames[0] = %+v, want IMG_0001 1920x1080", h.ImageNames[0])
	}
	if h.ImageNames[1].Name != "20230101_120000" || h.ImageNames[1].Width != 1080 || h.ImageNames[1].Height != 1920 {
		t.Errorf("ImageNames[1] = %+v, want 20230101_120000 1080x1920", h.ImageNames[1])
	}
	if h.CoverImage != "20230101_120000" {
		t.Errorf("CoverImage = %q, want the last ordered image", h.CoverImage)
	}
	if len(h.VideoNames) != 1 || h.VideoNames[0] != "flight" {
		t.Errorf("VideoNames = %v, want [flight]", h.VideoNames)
	}
	if h.Title != "RX-78" {
		t.Errorf("Title = %q, existing header fields must survive", h.Title)
	}
	if !strings.Contains(doc.Body, "body") {
		t.Errorf("Body = %q, must survive rewrite", doc.Body)
	}
}

func TestRunPrefersProcessedDimensions(t *testing.T) {
	cfg := testConfig(t)
	writeImage(t, filepath.Join(cfg.ImagesInDir(), "slug", "IMG_0001.jpg"), 400, 225, "jpeg")
	// Derived tree holds the definitive, already-rotated dimensions.
	writeImage(t, filepath.Join(cfg.ImagesOutDir(), "slug", "IMG_0001-extraLarge.webp"), 1080, 1920, "png")
	writeRaw(t, cfg.DocumentPath("slug"), "---\ntitle: T\n---\n")

	if _, err := New(cfg, paints.Table{}).Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	doc, err := content.Read(cfg.DocumentPath("slug"))
	if err != nil {
		t.Fatalf("content.Read() error: %v", err)
	}
	if len(doc.Header.ImageNames) != 1 {
		t.Fatalf("ImageNames = %+v", doc.Header.ImageNames)
	}
	got := doc.Header.ImageNames[0]
	if got.Width != 1080 || got.Height != 1920 {
		t.Errorf("dimensions = %dx%d, want the derived tree's 1080x1920", got.Width, got.Height)
	}
}

func TestRunSkipsSlugWithoutDocument(t *testing.T) {
	cfg := testConfig(t)
	writeImage(t, filepath.Join(cfg.ImagesInDir(), "orphan", "IMG_0001.jpg"), 32, 32, "jpeg")

	summary, err := New(cfg, paints.Table{}).Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.SlugsSkipped != 1 || summary.SlugsUpdated != 0 {
		t.Errorf("summary = %+v, want 1 skipped", summary)
	}
}

func TestRunKeepsStaleListsWhenDirEmpty(t *testing.T) {
	cfg := testConfig(t)
	if err := os.MkdirAll(filepath.Join(cfg.ImagesInDir(), "slug"), 0755); err != nil {
		t.Fatal(err)
	}
	original := "---\ntitle: T\nimageNames:\n  - name: OLD\n---\n"
	writeRaw(t, cfg.DocumentPath("slug"), original)

	summary, err := New(cfg, paints.Table{}).Run()
	if err != nil {
		t.Fatalf("Run() error: %v", err)
	}
	if summary.SlugsUpdated != 0 {
		t.Errorf("empty media dir should not trigger a write, summary = %+v", summary)
	}

	doc, err := content.Read(cfg.DocumentPath("slug"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Header.ImageNames) != 1 || doc.Header.ImageNames[0].Name != "OLD" {
		t.Errorf("stale imageNames must be left untouched, got %+v", doc.Header.ImageNames)
	}
}

func TestRunDeduplicatesVariants(t *testing.T) {
	cfg := testConfig(t)
	slugDir := filepath.Join(cfg.ImagesInDir(), "slug")
	writeImage(t, filepath.Join(slugDir, "turret.jpg"), 300, 200, "jpeg")
	writeImage(t, filepath.Join(slugDir, "turret-small.webp"), 60, 40, "png")
	writeImage(t, filepath.Join(slugDir, "turret-large.webp"), 1200, 800, "png")
	writeRaw(t, cfg.DocumentPath("slug"), "---\ntitle: T\n---\n")

	if _, err := New(cfg, paints.Table{}).Run(); err != nil {
		t.Fatalf("Run() error: %v", err)
	}

	doc, err := content.Read(cfg.DocumentPath("slug"))
	if err != nil {
		t.Fatal(err)
	}
	if len(doc.Header.ImageNames) != 1 {
		t.Fatalf("variants must collapse to one record, got %+v", doc.Header.ImageNames)
	}
	got := doc.Header.ImageNames[0]
	if got.Name != "turret" || got.Width != 1200 || got.Height != 800 {
		t.Errorf("record = %+v, want turret with the largest variant's dimensions", got)
	}
}
