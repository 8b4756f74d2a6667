package sink

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"imgdiff/core/locator"
	"imgdiff/core/storage"

	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

var errNoFactory = errors.New("no object-store client configured for sink")

// Writer writes bytes under a sink locator.
type Writer struct {
	factory storage.Factory
	logger  *zap.Logger

	mu      sync.RWMutex
	clients map[string]storage.Client
	sf      singleflight.Group
}

// NewWriter creates a Writer. factory may be nil when only file:// sinks are used.
func NewWriter(factory storage.Factory, logger *zap.Logger) *Writer {
	return &Writer{
		factory: factory,
		logger:  logger,
		clients: make(map[string]storage.Client),
	}
}

// ContentType returns the MIME type written for an object name.
func ContentType(name string) string {
	switch {
	case strings.HasSuffix(name, ".json"):
		return "application/json"
	case strings.HasSuffix(name, locator.ImageExtension):
		return "image/png"
	default:
		return ""
	}
}

// Write persists data under uri.
func (w *Writer) Write(ctx context.Context, uri string, data []byte) error {
	loc, err := locator.Parse(uri)
	if err != nil {
		return err
	}

	switch loc.Kind {
	case locator.KindFile:
		return w.writeFile(loc, data)
	case locator.KindObject:
		return w.writeObject(ctx, loc, data)
	}
	return &locator.UnsupportedError{Locator: uri}
}

func (w *Writer) writeFile(loc locator.Locator, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(loc.Path), 0o755); err != nil {
		return storage.WrapIO("put", loc.Raw, err)
	}
	if err := os.WriteFile(loc.Path, data, 0o644); err != nil {
		return storage.WrapIO("put", loc.Raw, err)
	}
	w.logger.Debug("Wrote file", zap.String("path", loc.Path), zap.Int("bytes", len(data)))
	return nil
}

func (w *Writer) writeObject(ctx context.Context, loc locator.Locator, data []byte) error {
	if err := locator.ValidateBucket(loc.Bucket); err != nil {
		return err
	}

	client, err := w.clientFor(loc.Bucket)
	if err != nil {
		return storage.WrapIO("put", loc.Raw, err)
	}

	opts := minio.PutObjectOptions{
		ContentType:  ContentType(loc.Key()),
		UserMetadata: map[string]string{"x-amz-acl": "public-read"},
	}
	if _, err := client.PutObject(ctx, loc.Bucket, loc.Key(), bytes.NewReader(data), int64(len(data)), opts); err != nil {
		return storage.WrapIO("put", loc.Raw, err)
	}
	w.logger.Debug("Wrote object",
		zap.String("bucket", loc.Bucket),
		zap.String("key", loc.Key()),
		zap.Int("bytes", len(data)))
	return nil
}

// clientFor returns the client for bucket, creating it on first use.
func (w *Writer) clientFor(bucket string) (storage.Client, error) {
	w.mu.RLock()
	client, ok := w.clients[bucket]
	w.mu.RUnlock()
	if ok {
		return client, nil
	}

	result, err, _ := w.sf.Do(bucket, func() (interface{}, error) {
		w.mu.RLock()
		client, ok := w.clients[bucket]
		w.mu.RUnlock()
		if ok {
			return client, nil
		}

		if w.factory == nil {
			return nil, errNoFactory
		}
		client, err := w.factory()
		if err != nil {
			return nil, err
		}

		w.mu.Lock()
		w.clients[bucket] = client
		w.mu.Unlock()
		return client, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(storage.Client), nil
}

// Saver writes named artifacts below a fixed sink root.
type Saver struct {
	root   string
	writer *Writer
	logger *zap.Logger
}

// NewSaver binds w to root. root must be a file:// or s3:// locator.
func NewSaver(root string, w *Writer, logger *zap.Logger) *Saver {
	return &Saver{root: root, writer: w, logger: logger}
}

// Root returns the sink root.
func (s *Saver) Root() string { return s.root }

// Save writes data under root/name.
func (s *Saver) Save(ctx context.Context, name string, data []byte) error {
	full := locator.Join(s.root, name)
	s.logger.Info("Saving artifact", zap.String("name", name), zap.String("to", full))
	return s.writer.Write(ctx, full, data)
}
