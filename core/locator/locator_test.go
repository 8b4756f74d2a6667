package locator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Kind
		wantErr bool
	}{
		{"File", "file:///tmp/a.png", KindFile, false},
		{"Object", "s3://bucket/a.png", KindObject, false},
		{"HTTP", "http://example.com/a.png", 0, true},
		{"NoScheme", "/tmp/a.png", 0, true},
		{"Empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			kind, err := Classify(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrUnsupportedLocator))
				assert.Contains(t, err.Error(), tt.raw)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, kind)
		})
	}
}

func TestParse(t *testing.T) {
	t.Run("File", func(t *testing.T) {
		loc, err := Parse("file:///dir1/file1.png")
		require.NoError(t, err)
		assert.Equal(t, KindFile, loc.Kind)
		assert.Equal(t, "/dir1/file1.png", loc.Path)
		assert.Empty(t, loc.Bucket)
		assert.Empty(t, loc.Key())
	})

	t.Run("FileEscaped", func(t *testing.T) {
		loc, err := Parse("file:///some%20dir/a.png")
		require.NoError(t, err)
		assert.Equal(t, "/some dir/a.png", loc.Path)
	})

	t.Run("FileDotSegments", func(t *testing.T) {
		loc, err := Parse("file:///srv/shots/../private/./a.png")
		require.NoError(t, err)
		assert.Equal(t, "/srv/private/a.png", loc.Path)
	})

	t.Run("Object", func(t *testing.T) {
		loc, err := Parse("s3://test--bucket/dir/file1.png")
		require.NoError(t, err)
		assert.Equal(t, KindObject, loc.Kind)
		assert.Equal(t, "test--bucket", loc.Bucket)
		assert.Equal(t, "dir/file1.png", loc.Key())
	})

	t.Run("BucketOnly", func(t *testing.T) {
		loc, err := Parse("s3://diff-bucket")
		require.NoError(t, err)
		assert.Equal(t, "diff-bucket", loc.Bucket)
		assert.Empty(t, loc.Key())
	})

	t.Run("Unsupported", func(t *testing.T) {
		_, err := Parse("ftp://host/a.png")
		assert.ErrorIs(t, err, ErrUnsupportedLocator)
	})
}

func TestValidateBucket(t *testing.T) {
	err := ValidateBucket("my_bucket")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNamingConstraint)

	var nameErr *NamingError
	require.True(t, errors.As(err, &nameErr))
	assert.Equal(t, "my_bucket", nameErr.Bucket)

	assert.NoError(t, ValidateBucket("my-bucket"))
	assert.ErrorIs(t, ValidateBucket(""), ErrNamingConstraint)
}

func TestNames(t *testing.T) {
	assert.Equal(t, "login.png", Basename("s3://bucket/a/b/login.png"))
	assert.Equal(t, "login", Keyname("file:///x/login.png"))
	assert.Equal(t, "notes.txt", Keyname("file:///x/notes.txt"))
	assert.Equal(t, "login.diff.png", DiffName("[name].diff.png", "login"))
	assert.Equal(t, "login.diff.png", DiffName("[name].diff.png", "login.png"))
	assert.Equal(t, "diffs/home-diff.png", DiffName("diffs/[name]-diff.png", "home.png"))
}

func TestProtocolify(t *testing.T) {
	assert.Equal(t, "file:///work/dirB_2", Protocolify("dirB_2", "/work"))
	assert.Equal(t, "file:///abs/dir", Protocolify("/abs/dir/", "/work"))
	assert.Equal(t, "file://dirA_1", Protocolify("file://dirA_1", "/work"))
	assert.Equal(t, "s3://bucket/x", Protocolify("s3://bucket/x", "/work"))
}

func TestJoin(t *testing.T) {
	assert.Equal(t, "s3://diff-bucket/files/file1.diff.png", Join("s3://diff-bucket/files/", "file1.diff.png"))
	assert.Equal(t, "file:///out/a.png", Join("file:///out", "/a.png"))
}

func TestURIs(t *testing.T) {
	assert.Equal(t, "file:///dir1/file1.png", FileURI("/dir1/file1.png"))
	assert.Equal(t, "s3://bucket/dir/file1.png", ObjectURI("bucket", "dir/file1.png"))
	assert.Equal(t, "s3", KindObject.String())
	assert.Equal(t, "file", KindFile.String())
}
