package remote

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/vbagdi/Mood-Tracker-291/internal/tracker"
)

// FileSystemRemote is a filesystem-based implementation of the RemoteStore
// interface, storing one document per record:
//
//	<root>/
//	  records/
//	    <id>.json    (encoded record documents, named by record ID)
//
// A directory shared between machines (network mount, synced folder) gives a
// working multi-device collection without any cloud dependency.
type FileSystemRemote struct {
	name       string
	root       string
	recordsDir string
	codec      *Codec
}

// NewFileSystemRemote creates a new filesystem remote rooted at the given path.
func NewFileSystemRemote(name, root string, codec *Codec) (*FileSystemRemote, error) {
	recordsDir := filepath.Join(root, "records")
	if err := os.MkdirAll(recordsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create records directory: %w", err)
	}

	return &FileSystemRemote{
		name:       name,
		root:       root,
		recordsDir: recordsDir,
		codec:      codec,
	}, nil
}

// Push upserts a record document. The write is atomic (temp file + rename)
// so a concurrent pull never observes a partial document.
func (f *FileSystemRemote) Push(_ context.Context, record *tracker.DailyRecord) error {
	data, err := f.codec.Encode(record)
	if err != nil {
		return err
	}
	return f.writeFile(f.docPath(record.ID), data)
}

// PullAll reads every document in the collection, skips any that fail
// validation, and returns the rest ordered by Date ascending.
func (f *FileSystemRemote) PullAll(_ context.Context) ([]*tracker.DailyRecord, error) {
	entries, err := os.ReadDir(f.recordsDir)
	if err != nil {
		return nil, fmt.Errorf("reading records directory: %w", err)
	}

	var records []*tracker.DailyRecord
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		data, err := os.ReadFile(filepath.Join(f.recordsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("reading document %s: %w", entry.Name(), err)
		}

		record, err := f.codec.Decode(data)
		if err != nil {
			var verr *tracker.ValidationError
			if errors.As(err, &verr) {
				continue
			}
			return nil, err
		}
		records = append(records, record)
	}

	sortByDate(records)
	return records, nil
}

// ValidateSetup verifies that the remote directories are accessible.
func (f *FileSystemRemote) ValidateSetup(context.Context) error {
	for _, dir := range []string{f.root, f.recordsDir} {
		info, err := os.Stat(dir)
		if err != nil {
			return fmt.Errorf("remote directory not accessible: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("remote path is not a directory: %s", dir)
		}
	}
	return nil
}

func (f *FileSystemRemote) docPath(id string) string {
	return filepath.Join(f.recordsDir, id+".json")
}

// writeFile writes data to destPath using atomic write (temp file + rename).
func (f *FileSystemRemote) writeFile(destPath string, data []byte) error {
	dir := filepath.Dir(destPath)
	tmpFile, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.Write(data); err != nil {
		tmpFile.Close()
		return fmt.Errorf("failed to write document: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := os.Rename(tmpPath, destPath); err != nil {
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	success = true
	return nil
}

// Compile-time check that FileSystemRemote implements tracker.RemoteStore
var _ tracker.RemoteStore = (*FileSystemRemote)(nil)
