package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/sinataee/ielts-reading-app/internal/domain"

	"golang.org/x/sync/errgroup"
)

// FilePackageStore persists reading packages as one JSON file per package,
// named by package ID, in a base directory. The on-disk schema is the
// package's canonical JSON form and round-trips losslessly.
type FilePackageStore struct {
	base string
}

// NewFilePackageStore creates the base directory if needed.
func NewFilePackageStore(base string) (*FilePackageStore, error) {
	if base == "" {
		base = "./data/packages"
	}
	if err := os.MkdirAll(base, 0o755); err != nil {
		return nil, domain.NewPersistenceError("could not create packages directory", err)
	}
	return &FilePackageStore{base: base}, nil
}

func (s *FilePackageStore) path(packageID string) string {
	return filepath.Join(s.base, filepath.Clean(packageID)+".json")
}

// Save writes the package under its ID, replacing any previous version.
func (s *FilePackageStore) Save(_ context.Context, pkg *domain.ReadingPackage) error {
	if err := pkg.Validate(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(pkg, "", "  ")
	if err != nil {
		return domain.NewPersistenceError("could not encode package", err)
	}
	if err := os.WriteFile(s.path(pkg.PackageID), data, 0o644); err != nil {
		return domain.NewPersistenceError(fmt.Sprintf("could not write package file for %s", pkg.PackageID), err)
	}
	return nil
}

// Load reads a package back verbatim.
func (s *FilePackageStore) Load(_ context.Context, packageID string) (*domain.ReadingPackage, error) {
	data, err := os.ReadFile(s.path(packageID))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.NewPackageNotFoundError(packageID)
		}
		return nil, domain.NewPersistenceError(fmt.Sprintf("could not read package file for %s", packageID), err)
	}
	var pkg domain.ReadingPackage
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, domain.NewPersistenceError(fmt.Sprintf("malformed package file for %s", packageID), err)
	}
	return &pkg, nil
}

// List loads every stored package, reading files concurrently. Results are
// ordered newest first.
func (s *FilePackageStore) List(ctx context.Context) ([]*domain.ReadingPackage, error) {
	entries, err := os.ReadDir(s.base)
	if err != nil {
		return nil, domain.NewPersistenceError("could not read packages directory", err)
	}

	var (
		mu       sync.Mutex
		packages []*domain.ReadingPackage
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		packageID := strings.TrimSuffix(entry.Name(), ".json")
		g.Go(func() error {
			pkg, err := s.Load(ctx, packageID)
			if err != nil {
				return err
			}
			mu.Lock()
			packages = append(packages, pkg)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(packages, func(i, j int) bool {
		if packages[i].CreatedAt.Equal(packages[j].CreatedAt) {
			return packages[i].PackageID < packages[j].PackageID
		}
		return packages[i].CreatedAt.After(packages[j].CreatedAt)
	})
	return packages, nil
}
