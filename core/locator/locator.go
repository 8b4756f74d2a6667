package locator

import (
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Kind identifies the storage backend addressed by a locator.
type Kind int

const (
	// KindFile addresses the local filesystem.
	KindFile Kind = iota + 1
	// KindObject addresses an S3-compatible object store.
	KindObject
)

const (
	// SchemeFile is the filesystem locator prefix.
	SchemeFile = "file://"
	// SchemeObject is the object-store locator prefix.
	SchemeObject = "s3://"
	// ImageExtension is the only resource extension collected in batch mode.
	ImageExtension = ".png"
	// NameToken is replaced by the keyname in diff file patterns.
	NameToken = "[name]"
)

// String returns the scheme name of the kind.
func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindObject:
		return "s3"
	default:
		return "unknown"
	}
}

// Locator is a parsed resource address. It is immutable once parsed.
type Locator struct {
	// Kind is the backend the locator addresses.
	Kind Kind
	// Raw is the locator as given, scheme included.
	Raw string
	// Path is the local path for KindFile, or the object key for KindObject.
	Path string
	// Bucket is the object-store bucket. Empty for KindFile.
	Bucket string
}

// Key returns the object key of an object-store locator.
func (l Locator) Key() string {
	if l.Kind != KindObject {
		return ""
	}
	return l.Path
}

// Classify returns the backend kind of a raw locator.
func Classify(raw string) (Kind, error) {
	switch {
	case strings.HasPrefix(raw, SchemeFile):
		return KindFile, nil
	case strings.HasPrefix(raw, SchemeObject):
		return KindObject, nil
	default:
		return 0, &UnsupportedError{Locator: raw}
	}
}

// Parse classifies raw and splits it into backend-specific addressing.
func Parse(raw string) (Locator, error) {
	kind, err := Classify(raw)
	if err != nil {
		return Locator{}, err
	}

	loc := Locator{Kind: kind, Raw: raw}
	switch kind {
	case KindFile:
		loc.Path = filePath(raw)
	case KindObject:
		bucket, key, _ := strings.Cut(strings.TrimPrefix(raw, SchemeObject), "/")
		loc.Bucket = bucket
		loc.Path = key
	}
	return loc, nil
}

// filePath converts a file:// URI to a clean local path, decoding percent
// escapes and resolving dot segments.
func filePath(raw string) string {
	p := strings.TrimPrefix(raw, SchemeFile)
	// file://localhost/abs is equivalent to file:///abs
	p = strings.TrimPrefix(p, "localhost/")
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if decoded, err := url.PathUnescape(p); err == nil {
		p = decoded
	}
	return filepath.FromSlash(path.Clean(p))
}

// FileURI builds a file:// locator for an absolute local path.
func FileURI(p string) string {
	return SchemeFile + filepath.ToSlash(p)
}

// ObjectURI builds an s3:// locator for an object key.
func ObjectURI(bucket, key string) string {
	return SchemeObject + bucket + "/" + strings.TrimPrefix(key, "/")
}

var schemePattern = regexp.MustCompile(`^\w+?://`)

// HasScheme reports whether raw starts with any scheme prefix.
func HasScheme(raw string) bool {
	return schemePattern.MatchString(raw)
}

// Protocolify turns a scheme-less path into a file:// locator relative to cwd.
// Values that already carry a scheme are returned unchanged.
func Protocolify(raw, cwd string) string {
	if HasScheme(raw) {
		return raw
	}
	if filepath.IsAbs(raw) {
		return FileURI(filepath.Clean(raw))
	}
	return FileURI(filepath.Join(cwd, raw))
}

// ValidateBucket enforces the object-store bucket naming rules the batch
// pipeline depends on.
func ValidateBucket(bucket string) error {
	if bucket == "" {
		return &NamingError{Bucket: bucket, Reason: "bucket name is empty"}
	}
	if strings.Contains(bucket, "_") {
		return &NamingError{Bucket: bucket, Reason: "bucket names cannot contain underscores"}
	}
	return nil
}

// Basename returns the last path segment of a locator.
func Basename(raw string) string {
	return path.Base("/" + raw)
}

// Keyname returns the basename with the image extension stripped.
func Keyname(raw string) string {
	return strings.TrimSuffix(Basename(raw), ImageExtension)
}

// DiffName substitutes the keyname of name into pattern.
// DiffName("[name].diff.png", "login.png") returns "login.diff.png".
func DiffName(pattern, name string) string {
	return strings.Replace(pattern, NameToken, strings.TrimSuffix(name, ImageExtension), 1)
}

// Join appends name to a sink root locator, normalising the separating slash.
func Join(root, name string) string {
	return strings.TrimSuffix(root, "/") + "/" + strings.TrimPrefix(name, "/")
}
