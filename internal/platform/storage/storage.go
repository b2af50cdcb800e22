package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ebaiagbor/tourcam-backend/internal/platform/logger"
)

const (
	CategorySites    = "sites"
	CategoryEvents   = "events"
	CategoryProfiles = "profiles"
)

// Upload is a fixed-shape descriptor for one staged file. Handlers build these
// from the multipart form; services only ever see this shape.
type Upload struct {
	ID         uuid.UUID
	Name       string // original client filename
	FileName   string // stored filename, unique
	Category   string
	StagedPath string
	Size       int64
	MimeType   string
}

// Store is the upload lifecycle services and handlers depend on. *DiskStore is
// the disk-backed implementation; tests swap in fakes.
type Store interface {
	Stage(ctx context.Context, category string, fh *multipart.FileHeader) (*Upload, error)
	StageAll(ctx context.Context, category string, fhs []*multipart.FileHeader) ([]*Upload, error)
	Put(ctx context.Context, category, name string, r io.Reader) (*Upload, error)
	URL(category, fileName string) string
	Promote(uploads []*Upload)
	Discard(uploads []*Upload)
	Remove(category, fileName string)
	RemoveByURL(url string)
}

// DiskStore persists uploads under a public root, one directory per category.
// Files are written to a staging directory first and only promoted (renamed)
// into the public tree once the database transaction that references them has
// committed. Anything still staged on a failure path gets discarded.
type DiskStore struct {
	log     *logger.Logger
	root    string
	staging string
	baseURL string
}

func NewDiskStore(baseLog *logger.Logger, root, baseURL string) (*DiskStore, error) {
	storeLog := baseLog.With("service", "DiskStore")
	staging := filepath.Join(root, ".staging")
	for _, dir := range []string{root, staging, filepath.Join(root, CategorySites), filepath.Join(root, CategoryEvents), filepath.Join(root, CategoryProfiles)} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("Failed to create upload dir %s: %w", dir, err)
		}
	}
	return &DiskStore{log: storeLog, root: root, staging: staging, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Stage(ctx context.Context, category string, fh *multipart.FileHeader) (*Upload, error) {
	id := uuid.New()
	ext := safeExt(fh.Filename)
	fileName := id.String() + ext
	stagedPath := filepath.Join(s.staging, category+"__"+fileName)

	src, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("Failed to open uploaded file %q: %w", fh.Filename, err)
	}
	defer src.Close()

	dst, err := os.Create(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to create staged file: %w", err)
	}
	written, err := io.Copy(dst, src)
	if cErr := dst.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = os.Remove(stagedPath)
		return nil, fmt.Errorf("Failed to write staged file: %w", err)
	}

	return &Upload{
		ID:         id,
		Name:       fh.Filename,
		FileName:   fileName,
		Category:   category,
		StagedPath: stagedPath,
		Size:       written,
		MimeType:   fh.Header.Get("Content-Type"),
	}, nil
}

// Put stages server-generated bytes under the same lifecycle as client
// uploads: the file only becomes public once Promote runs.
func (s *DiskStore) Put(ctx context.Context, category, name string, r io.Reader) (*Upload, error) {
	id := uuid.New()
	ext := safeExt(name)
	fileName := id.String() + ext
	stagedPath := filepath.Join(s.staging, category+"__"+fileName)

	dst, err := os.Create(stagedPath)
	if err != nil {
		return nil, fmt.Errorf("Failed to create staged file: %w", err)
	}
	written, err := io.Copy(dst, r)
	if cErr := dst.Close(); err == nil {
		err = cErr
	}
	if err != nil {
		_ = os.Remove(stagedPath)
		return nil, fmt.Errorf("Failed to write staged file: %w", err)
	}

	return &Upload{
		ID:         id,
		Name:       name,
		FileName:   fileName,
		Category:   category,
		StagedPath: stagedPath,
		Size:       written,
	}, nil
}

// StageAll stages every file or none: a failure discards what was already staged.
func (s *DiskStore) StageAll(ctx context.Context, category string, fhs []*multipart.FileHeader) ([]*Upload, error) {
	uploads := make([]*Upload, 0, len(fhs))
	for _, fh := range fhs {
		up, err := s.Stage(ctx, category, fh)
		if err != nil {
			s.Discard(uploads)
			return nil, err
		}
		uploads = append(uploads, up)
	}
	return uploads, nil
}

// Promote moves staged files into their public category directory. Called after
// the transaction referencing them has committed, so a failure here leaves the
// rows authoritative and is only logged.
func (s *DiskStore) Promote(uploads []*Upload) {
	for _, up := range uploads {
		if up == nil || up.StagedPath == "" {
			continue
		}
		finalPath := filepath.Join(s.root, up.Category, up.FileName)
		if err := os.Rename(up.StagedPath, finalPath); err != nil {
			s.log.Error("Failed to promote staged upload", "error", err, "file_name", up.FileName)
			continue
		}
		up.StagedPath = ""
	}
}

// Discard removes staged files on a failure path. Best effort, logged.
func (s *DiskStore) Discard(uploads []*Upload) {
	for _, up := range uploads {
		if up == nil || up.StagedPath == "" {
			continue
		}
		if err := os.Remove(up.StagedPath); err != nil && !os.IsNotExist(err) {
			s.log.Warn("Failed to discard staged upload", "error", err, "file_name", up.FileName)
		}
		up.StagedPath = ""
	}
}

func (s *DiskStore) URL(category, fileName string) string {
	return fmt.Sprintf("%s/uploads/%s/%s", s.baseURL, category, fileName)
}

// Remove deletes a promoted file. Best effort: the row delete is authoritative,
// so a missing or stubborn file is logged and swallowed.
func (s *DiskStore) Remove(category, fileName string) {
	path := filepath.Join(s.root, category, filepath.Base(fileName))
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		s.log.Warn("Failed to remove stored file", "error", err, "path", path)
	}
}

// RemoveByURL deletes the file behind a stored public URL.
func (s *DiskStore) RemoveByURL(url string) {
	idx := strings.Index(url, "/uploads/")
	if idx < 0 {
		s.log.Warn("Stored URL has no uploads prefix, skipping removal", "url", url)
		return
	}
	rest := strings.TrimPrefix(url[idx:], "/uploads/")
	parts := strings.SplitN(rest, "/", 2)
	if len(parts) != 2 {
		s.log.Warn("Stored URL is not category/file shaped, skipping removal", "url", url)
		return
	}
	s.Remove(parts[0], parts[1])
}

func (s *DiskStore) Root() string { return s.root }

func safeExt(name string) string {
	ext := strings.ToLower(filepath.Ext(filepath.Base(name)))
	if len(ext) > 10 || strings.ContainsAny(ext, `/\`) {
		return ""
	}
	return ext
}
