package publisher

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/joe-lloyd/model-blog/internal/logging"
	"github.com/joe-lloyd/model-blog/internal/mediatypes"
)

// ErrTransport indicates a network or auth failure talking to the
// object store. It aborts the whole publish run.
var ErrTransport = errors.New("remote transport error")

// ObjectStore is the minimal object-storage surface the publisher
// needs. Existence is the only upload gate: objects are written at most
// once and never overwritten.
type ObjectStore interface {
	Exists(ctx context.Context, key string) (bool, error)
	Upload(ctx context.Context, key, filePath, contentType string) error
}

// Publisher copies a local derived-media tree into an object store,
// one file at a time.
type Publisher struct {
	store ObjectStore
}

// New creates a Publisher backed by the given store.
func New(store ObjectStore) *Publisher {
	return &Publisher{store: store}
}

// Summary reports what a publish run did.
type Summary struct {
	Uploaded int
	Skipped  int
}

// PublishTree walks localDir and uploads every file under the remote
// prefix, preserving the relative path with forward-slash separators.
// Files whose key already exists remotely are skipped. Any transport
// error aborts the run immediately.
func (p *Publisher) PublishTree(ctx context.Context, localDir, remotePrefix string) (Summary, error) {
	var summary Summary

	err := filepath.WalkDir(localDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}

		rel, relErr := filepath.Rel(localDir, path)
		if relErr != nil {
			return relErr
		}
		key := remotePrefix + "/" + filepath.ToSlash(rel)

		exists, existsErr := p.store.Exists(ctx, key)
		if existsErr != nil {
			return fmt.Errorf("%w: checking %s: %v", ErrTransport, key, existsErr)
		}
		if exists {
			logging.Info("Skipping %s (already exists remotely)", path)
			summary.Skipped++
			return nil
		}

		contentType := mediatypes.GetContentType(strings.ToLower(filepath.Ext(path)))
		if uploadErr := p.store.Upload(ctx, key, path, contentType); uploadErr != nil {
			return fmt.Errorf("%w: uploading %s: %v", ErrTransport, key, uploadErr)
		}
		logging.Info("Uploaded %s to %s", path, key)
		summary.Uploaded++
		return nil
	})
	if err != nil {
		return summary, err
	}
	return summary, nil
}
