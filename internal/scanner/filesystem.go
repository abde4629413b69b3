package scanner

import (
	"context"
	"fmt"
	"io/fs"
	"net/url"
	"path/filepath"
	"sort"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/ionnetwork/dlpick/internal/models"
	"github.com/sirupsen/logrus"
)

// FileSystemScanner implements Scanner for local directories
type FileSystemScanner struct{}

// NewFileSystemScanner creates a new filesystem scanner
func NewFileSystemScanner() *FileSystemScanner {
	return &FileSystemScanner{}
}

// Scan recursively scans dir. Hidden files and directories are skipped.
// Each asset's download URL is a file:// URL to the absolute path, and
// assets are returned sorted by path.
func (s *FileSystemScanner) Scan(ctx context.Context, dir string) ([]models.Asset, error) {
	root, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	var paths []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		// Check context cancellation
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if path != root && strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}

		paths = append(paths, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory: %w", err)
	}

	sort.Strings(paths)

	assets := make([]models.Asset, 0, len(paths))
	for _, path := range paths {
		u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
		assets = append(assets, models.Asset{
			Name:        filepath.Base(path),
			DownloadURL: u.String(),
		})
		logrus.Debugf("Found asset: %s", path)
	}

	logrus.Infof("Found %d files in %s", len(assets), dir)
	return assets, nil
}

// DirSource serves a local directory as the latest release
type DirSource struct {
	dir     string
	scanner Scanner
}

// NewDirSource creates an asset source over dir
func NewDirSource(dir string) *DirSource {
	return &DirSource{dir: dir, scanner: NewFileSystemScanner()}
}

// Name returns the directory
func (s *DirSource) Name() string {
	return "dir:" + s.dir
}

// FetchRelease scans the directory. The release is tagged with the
// directory's base name.
func (s *DirSource) FetchRelease(ctx context.Context) (*models.Release, error) {
	assets, err := s.scanner.Scan(ctx, s.dir)
	if err != nil {
		return nil, &models.DLError{Type: models.ErrFileOp, Source: s.dir, Err: err}
	}
	release := &models.Release{
		Tag:    filepath.Base(filepath.Clean(s.dir)),
		Assets: assets,
	}
	if version, err := semver.NewVersion(release.Tag); err == nil {
		release.Version = version
	}
	return release, nil
}
