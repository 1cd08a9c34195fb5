package media

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/davidbyttow/govips/v2/vips"

	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/mediatypes"
)

// WebpQuality is the lossy quality used for every generated variant.
const WebpQuality = 80

// Breakpoint is one target size class in the derived media tree.
type Breakpoint struct {
	Name string
	Size int
	// Square breakpoints are center-cropped to Size x Size instead of
	// being resized by the long edge.
	Square bool
}

// Breakpoints lists the size classes generated for every source image,
// smallest first.
var Breakpoints = []Breakpoint{
	{Name: "thumbnail", Size: 480, Square: true},
	{Name: "small", Size: 600},
	{Name: "medium", Size: 800},
	{Name: "large", Size: 1200},
	{Name: "extraLarge", Size: 1920},
}

// Task is one (source image, breakpoint) unit of work.
type Task struct {
	SourcePath string
	OutputPath string
	Breakpoint Breakpoint
}

// Outcome records what happened to one task.
type Outcome struct {
	Task    Task
	Skipped bool
	Err     error
}

// Tally counts the generated and failed outcomes of a run. Pre-skipped
// outcomes count as neither.
func Tally(outcomes []Outcome) (generated, failed int) {
	for _, o := range outcomes {
		switch {
		case o.Err != nil:
			failed++
		case !o.Skipped:
			generated++
		}
	}
	return generated, failed
}

// Plan walks the source image tree and returns one task per missing
// variant, preserving the directory structure under outDir. Variants
// whose output file already exists are returned as pre-skipped
// outcomes, which is what makes re-runs idempotent.
func Plan(inDir, outDir string) (tasks []Task, skipped []Outcome, err error) {
	err = filepath.WalkDir(inDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		if !mediatypes.SourceImageExtensions[ext] {
			return nil
		}

		rel, relErr := filepath.Rel(inDir, filepath.Dir(path))
		if relErr != nil {
			return relErr
		}
		base := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))

		for _, bp := range Breakpoints {
			task := Task{
				SourcePath: path,
				OutputPath: filepath.Join(outDir, rel, fmt.Sprintf("%s-%s.webp", base, bp.Name)),
				Breakpoint: bp,
			}
			if _, statErr := os.Stat(task.OutputPath); statErr == nil {
				skipped = append(skipped, Outcome{Task: task, Skipped: true})
				continue
			}
			tasks = append(tasks, task)
		}
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to walk %s: %w", inDir, err)
	}
	return tasks, skipped, nil
}

// Generator runs variant tasks over a bounded worker pool.
type Generator struct {
	// encode produces one output file. Replaceable in tests.
	encode func(Task) error
}

// NewGenerator returns a Generator backed by libvips.
func NewGenerator() *Generator {
	return &Generator{encode: encodeWithVips}
}

// Run executes all tasks with the given number of workers and returns
// one outcome per task, in task order. A failed task never aborts its
// siblings.
func (g *Generator) Run(tasks []Task, numWorkers int) []Outcome {
	if numWorkers < 1 {
		numWorkers = 1
	}

	outcomes := make([]Outcome, len(tasks))
	jobs := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				task := tasks[i]
				err := g.encode(task)
				outcomes[i] = Outcome{Task: task, Err: err}
				if err != nil {
					logging.Error("Failed to generate %s: %v", task.OutputPath, err)
				} else {
					logging.Info("Generated: %s", task.OutputPath)
				}
			}
		}()
	}

	for i := range tasks {
		jobs <- i
	}
	close(jobs)
	wg.Wait()

	return outcomes
}

// encodeWithVips generates one variant: decode, rotate per EXIF, resize
// or center-crop, and export as lossy webp.
func encodeWithVips(task Task) error {
	ref, err := vips.LoadImageFromFile(task.SourcePath, vips.NewImportParams())
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", task.SourcePath, err)
	}
	defer ref.Close()

	if err := ref.AutoRotate(); err != nil {
		return fmt.Errorf("failed to auto-rotate %s: %w", task.SourcePath, err)
	}

	bp := task.Breakpoint
	if bp.Square {
		if err := ref.Thumbnail(bp.Size, bp.Size, vips.InterestingCentre); err != nil {
			return fmt.Errorf("failed to crop %s: %w", task.SourcePath, err)
		}
	} else {
		// Post-rotation dimensions: portrait scales by target height,
		// landscape by target width, so the long edge lands on the
		// breakpoint.
		width, height := ref.Width(), ref.Height()
		var scale float64
		if height > width {
			scale = float64(bp.Size) / float64(height)
		} else {
			scale = float64(bp.Size) / float64(width)
		}
		if err := ref.Resize(scale, vips.KernelLanczos3); err != nil {
			return fmt.Errorf("failed to resize %s: %w", task.SourcePath, err)
		}
	}

	params := vips.NewWebpExportParams()
	params.Quality = WebpQuality
	params.StripMetadata = true
	data, _, err := ref.ExportWebp(params)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", task.SourcePath, err)
	}

	if err := os.MkdirAll(filepath.Dir(task.OutputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(task.OutputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", task.OutputPath, err)
	}
	return nil
}
