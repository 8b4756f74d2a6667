package resource

import (
	"context"
	"fmt"
	"io"
	"os"

	"imgdiff/core/locator"
	"imgdiff/core/report"
	"imgdiff/core/storage"

	"github.com/minio/minio-go/v7"
)

// Handle is the identity and lazy fetcher of one image resource.
type Handle struct {
	loc      locator.Locator
	basename string
	keyname  string
	client   storage.Client

	cached []byte
	loaded bool
}

// Info is backend-independent resource metadata.
type Info struct {
	Size  int64
	IsDir bool
}

// New builds a handle for loc. Object handles require a client; filesystem
// handles ignore it.
func New(loc locator.Locator, client storage.Client) (*Handle, error) {
	h := &Handle{
		loc:      loc,
		basename: locator.Basename(loc.Raw),
		keyname:  locator.Keyname(loc.Raw),
	}

	switch loc.Kind {
	case locator.KindFile:
	case locator.KindObject:
		if client == nil {
			return nil, fmt.Errorf("object handle %s: storage client is required", loc.Raw)
		}
		h.client = client
	default:
		return nil, &locator.UnsupportedError{Locator: loc.Raw}
	}

	return h, nil
}

// Parse classifies raw and builds the matching handle.
func Parse(raw string, client storage.Client) (*Handle, error) {
	loc, err := locator.Parse(raw)
	if err != nil {
		return nil, err
	}
	return New(loc, client)
}

// URI returns the locator the handle was built from.
func (h *Handle) URI() string { return h.loc.Raw }

// Basename returns the last path segment of the locator.
func (h *Handle) Basename() string { return h.basename }

// Keyname returns the join key of the handle.
func (h *Handle) Keyname() string { return h.keyname }

// Kind returns the backend kind.
func (h *Handle) Kind() locator.Kind { return h.loc.Kind }

// Locator returns the parsed locator.
func (h *Handle) Locator() locator.Locator { return h.loc }

// Cached reports whether a fetched buffer is held.
func (h *Handle) Cached() bool { return h.loaded }

// Fetch returns the resource bytes. The first successful fetch is cached and
// returned by later calls unless force is set, which refetches and replaces
// the cache. A failed fetch leaves any previous cache untouched.
func (h *Handle) Fetch(ctx context.Context, force bool) ([]byte, error) {
	if h.loaded && !force {
		return h.cached, nil
	}

	var (
		data []byte
		err  error
	)
	switch h.loc.Kind {
	case locator.KindFile:
		data, err = h.fetchFile()
	case locator.KindObject:
		data, err = h.fetchObject(ctx)
	}
	if err != nil {
		return nil, err
	}

	h.cached = data
	h.loaded = true
	return data, nil
}

func (h *Handle) fetchFile() ([]byte, error) {
	info, err := os.Stat(h.loc.Path)
	if err != nil {
		return nil, storage.WrapIO("read", h.loc.Raw, err)
	}
	if info.IsDir() {
		return nil, &DirectoryError{Path: h.loc.Path}
	}

	data, err := os.ReadFile(h.loc.Path)
	if err != nil {
		return nil, storage.WrapIO("read", h.loc.Raw, err)
	}
	return data, nil
}

func (h *Handle) fetchObject(ctx context.Context) ([]byte, error) {
	obj, err := h.client.GetObject(ctx, h.loc.Bucket, h.loc.Key(), minio.GetObjectOptions{})
	if err != nil {
		return nil, storage.WrapIO("get", h.loc.Raw, err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, storage.WrapIO("get", h.loc.Raw, err)
	}
	return data, nil
}

// Stat returns resource metadata without fetching the content.
func (h *Handle) Stat(ctx context.Context) (Info, error) {
	switch h.loc.Kind {
	case locator.KindFile:
		fi, err := os.Stat(h.loc.Path)
		if err != nil {
			return Info{}, storage.WrapIO("stat", h.loc.Raw, err)
		}
		return Info{Size: fi.Size(), IsDir: fi.IsDir()}, nil
	case locator.KindObject:
		oi, err := h.client.StatObject(ctx, h.loc.Bucket, h.loc.Key(), minio.StatObjectOptions{})
		if err != nil {
			return Info{}, storage.WrapIO("stat", h.loc.Raw, err)
		}
		return Info{Size: oi.Size}, nil
	}
	return Info{}, &locator.UnsupportedError{Locator: h.loc.Raw}
}

// RequireFile fails with a DirectoryError when the handle addresses a directory
// (or a bare bucket) instead of a single resource.
func (h *Handle) RequireFile(ctx context.Context) error {
	if h.loc.Kind == locator.KindObject && h.loc.Key() == "" {
		return &DirectoryError{Path: h.loc.Raw}
	}
	info, err := h.Stat(ctx)
	if err != nil {
		return err
	}
	if info.IsDir {
		return &DirectoryError{Path: h.loc.Raw}
	}
	return nil
}

// Serialize returns the report entry describing the handle.
func (h *Handle) Serialize() report.Entry {
	return report.Entry{
		URI:     h.loc.Raw,
		Keyname: h.keyname,
		Path:    h.loc.Path,
		Bucket:  h.loc.Bucket,
	}
}
