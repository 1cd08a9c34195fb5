package content

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/joe-lloyd/model-blog/internal/logging"
)

const delimiter = "---"

// ImageRef describes one canonical image in a gallery entry. Width and
// Height, when present, are the display dimensions of the largest
// generated variant, already orientation-corrected.
type ImageRef struct {
	Name   string `yaml:"name"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// Header is the typed front-matter block of a gallery entry. Every
// field is optional; unknown keys are warned about and dropped on the
// next write.
type Header struct {
	Title       string   `yaml:"title,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Date        string   `yaml:"date,omitempty"`
	Tags        []string `yaml:"tags,omitempty"`

	CoverImage string     `yaml:"coverImage,omitempty"`
	ImageNames []ImageRef `yaml:"imageNames,omitempty"`
	VideoNames []string   `yaml:"videoNames,omitempty"`

	// Paint recipe keys, resolved against the bundled paint table at
	// render time.
	AirbrushPaints []string `yaml:"airbrushPaints,omitempty"`
	BrushPaints    []string `yaml:"brushPaints,omitempty"`
	SpeedPaints    []string `yaml:"speedPaints,omitempty"`
	Washes         []string `yaml:"washes,omitempty"`
}

// knownKeys is the recognized front-matter vocabulary, kept in sync
// with the Header yaml tags.
var knownKeys = map[string]bool{
	"title":          true,
	"description":    true,
	"date":           true,
	"tags":           true,
	"coverImage":     true,
	"imageNames":     true,
	"videoNames":     true,
	"airbrushPaints": true,
	"brushPaints":    true,
	"speedPaints":    true,
	"washes":         true,
}

// Document is one gallery entry: a typed header plus the free-form MDX
// body, which the pipeline never interprets.
type Document struct {
	Header Header
	Body   string
}

// Read parses the front-matter document at path. A file without a
// front-matter block yields an empty header and the whole file as body.
func Read(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read document %s: %w", path, err)
	}

	header, body, ok := split(string(raw))
	doc := &Document{Body: body}
	if !ok {
		return doc, nil
	}

	if err := yaml.Unmarshal([]byte(header), &doc.Header); err != nil {
		return nil, fmt.Errorf("failed to parse front-matter in %s: %w", path, err)
	}
	warnUnknownKeys(path, []byte(header))

	return doc, nil
}

// Write serializes the document back to path as a whole-file rewrite:
// front-matter header, delimiter, then the body byte-for-byte.
func Write(path string, doc *Document) error {
	var buf bytes.Buffer

	buf.WriteString(delimiter + "\n")
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(&doc.Header); err != nil {
		return fmt.Errorf("failed to encode front-matter for %s: %w", path, err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to encode front-matter for %s: %w", path, err)
	}
	buf.WriteString(delimiter + "\n")
	buf.WriteString(doc.Body)

	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return nil
}

// split separates a raw document into header text and body. ok is false
// when the file has no leading front-matter block.
func split(raw string) (header, body string, ok bool) {
	if !strings.HasPrefix(raw, delimiter+"\n") {
		return "", raw, false
	}

	rest := raw[len(delimiter)+1:]

	// Closing delimiter immediately after the opening one: an empty
	// header, not a body that happens to start with dashes.
	if strings.HasPrefix(rest, delimiter+"\n") {
		return "", rest[len(delimiter)+1:], true
	}
	if rest == delimiter {
		return "", "", true
	}

	idx := strings.Index(rest, "\n"+delimiter+"\n")
	if idx < 0 {
		// Closing delimiter at EOF without trailing newline.
		if strings.HasSuffix(rest, "\n"+delimiter) {
			return rest[:len(rest)-len(delimiter)-1], "", true
		}
		return "", raw, false
	}

	return rest[:idx+1], rest[idx+len(delimiter)+2:], true
}

func warnUnknownKeys(path string, header []byte) {
	var generic map[string]interface{}
	if err := yaml.Unmarshal(header, &generic); err != nil {
		return
	}
	for key := range generic {
		if !knownKeys[key] {
			logging.Warn("Unrecognized front-matter key %q in %s", key, path)
		}
	}
}
