package collection

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"imgdiff/core/locator"
	"imgdiff/core/resource"
	"imgdiff/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source lists the resources below one batch root.
type Source struct {
	root   locator.Locator
	client storage.Client
	logger *zap.Logger
}

// NewSource parses root and prepares its backend. Object-store roots have
// their bucket validated and receive a dedicated client from factory.
func NewSource(root string, factory storage.Factory, logger *zap.Logger) (*Source, error) {
	loc, err := locator.Parse(root)
	if err != nil {
		return nil, err
	}

	src := &Source{root: loc, logger: logger}
	switch loc.Kind {
	case locator.KindFile:
		logger.Info("Batch file system processing", zap.String("root", root))
	case locator.KindObject:
		if err := locator.ValidateBucket(loc.Bucket); err != nil {
			return nil, err
		}
		if factory == nil {
			return nil, fmt.Errorf("object root %s: no storage client factory configured", root)
		}
		client, err := factory()
		if err != nil {
			return nil, storage.WrapIO("connect", root, err)
		}
		src.client = client
		logger.Info("Batch S3 object processing", zap.String("root", root))
	}
	return src, nil
}

// Root returns the parsed root locator.
func (s *Source) Root() locator.Locator { return s.root }

// Client returns the storage client of an object-store source, nil otherwise.
func (s *Source) Client() storage.Client { return s.client }

// List returns the locators of every PNG below the root, in listing order.
func (s *Source) List(ctx context.Context) ([]string, error) {
	switch s.root.Kind {
	case locator.KindFile:
		return s.listFiles()
	case locator.KindObject:
		return s.listObjects(ctx)
	}
	return nil, &locator.UnsupportedError{Locator: s.root.Raw}
}

// listFiles walks the root depth-first with an explicit stack: an entry is
// visited, then its subtree, then its next sibling. Symlinked directories are
// followed, each real directory is entered at most once, and emitted locators
// keep the linked path.
func (s *Source) listFiles() ([]string, error) {
	children, err := readDir(s.root.Path)
	if err != nil {
		return nil, storage.WrapIO("list", s.root.Raw, err)
	}
	visited := map[string]struct{}{}
	if real, err := filepath.EvalSymlinks(s.root.Path); err == nil {
		visited[real] = struct{}{}
	}

	stack := reversed(children)
	var uris []string
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		info, err := os.Stat(p)
		if err != nil {
			return nil, storage.WrapIO("list", locator.FileURI(p), err)
		}

		if info.IsDir() {
			real, err := filepath.EvalSymlinks(p)
			if err != nil {
				return nil, storage.WrapIO("list", locator.FileURI(p), err)
			}
			if _, seen := visited[real]; seen {
				s.logger.Debug("Skipping visited directory", zap.String("dir", p), zap.String("target", real))
				continue
			}
			visited[real] = struct{}{}

			children, err := readDir(p)
			if err != nil {
				return nil, storage.WrapIO("list", locator.FileURI(p), err)
			}
			stack = append(stack, reversed(children)...)
			continue
		}

		if strings.HasSuffix(p, locator.ImageExtension) {
			uris = append(uris, locator.FileURI(p))
		}
	}
	return uris, nil
}

func readDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(entries))
	for _, e := range entries {
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	return paths, nil
}

func reversed(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[len(paths)-1-i] = p
	}
	return out
}

func (s *Source) listObjects(ctx context.Context) ([]string, error) {
	prefix := s.root.Key()
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}

	opts := minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}

	var uris []string
	for obj := range s.client.ListObjects(ctx, s.root.Bucket, opts) {
		if obj.Err != nil {
			return nil, storage.WrapIO("list", s.root.Raw, obj.Err)
		}
		if strings.HasSuffix(obj.Key, locator.ImageExtension) {
			uris = append(uris, locator.ObjectURI(s.root.Bucket, obj.Key))
		}
	}
	return uris, nil
}

// Hydrate lists the root and builds its collection.
func (s *Source) Hydrate(ctx context.Context) (*Collection, error) {
	uris, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	c := New(s.root.Raw)
	for _, uri := range uris {
		h, err := resource.Parse(uri, s.client)
		if err != nil {
			return nil, err
		}
		c.Set(h)
	}

	s.logger.Debug("Hydrated collection",
		zap.String("root", s.root.Raw),
		zap.Int("listed", len(uris)),
		zap.Int("keys", c.Len()))
	return c, nil
}

// HydratePair hydrates a and b concurrently and returns both collections.
// The first failure is returned once both hydrations have finished.
func HydratePair(ctx context.Context, a, b *Source) (*Collection, *Collection, error) {
	var collA, collB *Collection

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		collA, err = a.Hydrate(ctx)
		return err
	})
	g.Go(func() error {
		var err error
		collB, err = b.Hydrate(ctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return collA, collB, nil
}
