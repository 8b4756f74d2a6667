package checks

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"imgdiff/core/collection"
	"imgdiff/core/locator"
	"imgdiff/core/storage"
	"imgdiff/core/storage/mocks"

	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func pngBytes(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, 2, 2))))
	return buf.Bytes()
}

func fileSource(t *testing.T, root string) *collection.Source {
	t.Helper()
	src, err := collection.NewSource(locator.FileURI(root), nil, zap.NewNop())
	require.NoError(t, err)
	return src
}

func objectSource(t *testing.T, root string, client storage.Client) *collection.Source {
	t.Helper()
	src, err := collection.NewSource(root, func() (storage.Client, error) { return client, nil }, zap.NewNop())
	require.NoError(t, err)
	return src
}

func TestCheckRoot(t *testing.T) {
	t.Run("Directory", func(t *testing.T) {
		assert.NoError(t, CheckRoot(context.Background(), fileSource(t, t.TempDir())))
	})

	t.Run("Missing Directory", func(t *testing.T) {
		err := CheckRoot(context.Background(), fileSource(t, filepath.Join(t.TempDir(), "nope")))
		assert.ErrorIs(t, err, ErrRootMissing)
	})

	t.Run("Plain File", func(t *testing.T) {
		dir := t.TempDir()
		p := filepath.Join(dir, "a.png")
		require.NoError(t, os.WriteFile(p, pngBytes(t), 0o644))
		err := CheckRoot(context.Background(), fileSource(t, p))
		assert.ErrorIs(t, err, ErrRootMissing)
	})

	t.Run("Bucket Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "assets").Return(false, nil)

		err := CheckRoot(context.Background(), objectSource(t, "s3://assets/run", client))
		assert.ErrorIs(t, err, ErrRootMissing)
		assert.Contains(t, err.Error(), "assets")
	})

	t.Run("Bucket Error", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "assets").Return(false, assert.AnError)

		err := CheckRoot(context.Background(), objectSource(t, "s3://assets", client))
		assert.ErrorIs(t, err, storage.ErrIO)
	})
}

func TestCheckImages(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "mobile"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "home.png"), pngBytes(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mobile", "home.png"), pngBytes(t), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("junk"), 0o644))

	rep, err := CheckImages(context.Background(), fileSource(t, dir))
	require.NoError(t, err)

	assert.Equal(t, 3, rep.Total)
	assert.Equal(t, []string{locator.FileURI(filepath.Join(dir, "broken.png"))}, rep.Undecodable)
	require.Contains(t, rep.Collisions, "home")
	assert.Len(t, rep.Collisions["home"], 2)
	assert.False(t, rep.OK())
}

func TestCheckImagesObjectStore(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "shots", mock.Anything).
		Return(mocks.Objects(minio.ObjectInfo{Key: "home.png"}, minio.ObjectInfo{Key: "login.png"}))
	client.On("GetObject", mock.Anything, "shots", "home.png", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(pngBytes(t))), nil)
	client.On("GetObject", mock.Anything, "shots", "login.png", mock.Anything).
		Return(io.NopCloser(bytes.NewReader(pngBytes(t))), nil)

	rep, err := CheckImages(context.Background(), objectSource(t, "s3://shots", client))
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Total)
	assert.True(t, rep.OK())
}

func TestCheckImagesFetchError(t *testing.T) {
	client := new(mocks.Client)
	client.On("ListObjects", mock.Anything, "shots", mock.Anything).
		Return(mocks.Objects(minio.ObjectInfo{Key: "home.png"}))
	client.On("GetObject", mock.Anything, "shots", "home.png", mock.Anything).
		Return(nil, assert.AnError)

	rep, err := CheckImages(context.Background(), objectSource(t, "s3://shots", client))
	assert.ErrorIs(t, err, storage.ErrIO)
	assert.Nil(t, rep)
}
