package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/naniedobe1/PoleBrothers/errs"
)

// PhotoStore persists captures to a local scratch directory before remote
// upload, as a durability backstop. The directory is shared with the legacy
// local gallery listing; the file move is expected to be atomic.
type PhotoStore struct {
	Dir string
}

func NewPhotoStore(dir string) *PhotoStore {
	return &PhotoStore{Dir: dir}
}

// EnsureDir creates the scratch directory. Safe to call repeatedly.
func (s *PhotoStore) EnsureDir() error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return errs.LocalIO("create photo directory", err)
	}
	return nil
}

// Save moves (not copies) the source file into the scratch directory under a
// timestamp-derived name and returns the new path.
func (s *PhotoStore) Save(sourcePath string) (string, error) {
	if err := s.EnsureDir(); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("photo_%d.jpg", time.Now().UnixMilli())
	destPath := filepath.Join(s.Dir, filename)

	if err := os.Rename(sourcePath, destPath); err != nil {
		return "", errs.LocalIO("move photo", err)
	}
	return destPath, nil
}

// List returns image files in the scratch directory sorted newest-first by
// modification time. Used only by the local gallery view.
func (s *PhotoStore) List() ([]string, error) {
	if err := s.EnsureDir(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.Dir)
	if err != nil {
		return nil, errs.LocalIO("read photo directory", err)
	}

	type photo struct {
		path  string
		mtime time.Time
	}
	var photos []photo
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".jpg") && !strings.HasSuffix(name, ".png") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		photos = append(photos, photo{path: filepath.Join(s.Dir, name), mtime: info.ModTime()})
	}

	sort.Slice(photos, func(i, j int) bool { return photos[i].mtime.After(photos[j].mtime) })

	paths := make([]string, len(photos))
	for i, p := range photos {
		paths[i] = p.path
	}
	return paths, nil
}

// Metadata describes a stored photo, recovered from its filename.
type Metadata struct {
	Filename  string
	Timestamp time.Time
	Path      string
}

// PhotoMetadata parses the capture timestamp embedded in a saved photo's
// filename (photo_<unix-ms>.jpg).
func PhotoMetadata(path string) (Metadata, error) {
	filename := filepath.Base(path)
	stamp := strings.TrimSuffix(strings.TrimPrefix(filename, "photo_"), ".jpg")
	ms, err := strconv.ParseInt(stamp, 10, 64)
	if err != nil {
		return Metadata{}, errs.LocalIO("parse photo filename", err)
	}
	return Metadata{
		Filename:  filename,
		Timestamp: time.UnixMilli(ms),
		Path:      path,
	}, nil
}
