package server

import (
	"path"
	"path/filepath"
	"strings"

	"imgdiff/core/locator"
)

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the API.
	ApiKey string `mapstructure:"api_key" default:""`
	// AllowedRoots restricts the locators accepted over HTTP to these
	// comma-separated roots. Empty allows everything.
	AllowedRoots string `mapstructure:"allowed_roots" default:""`
}

// Address returns the listen address for Port.
func (c Config) Address() string {
	return ":" + strings.TrimPrefix(c.Port, ":")
}

// Roots returns the allowed root locators.
func (c Config) Roots() []string {
	var roots []string
	for _, r := range strings.Split(c.AllowedRoots, ",") {
		if r = strings.TrimSpace(r); r != "" {
			roots = append(roots, r)
		}
	}
	return roots
}

// Allows reports whether uri falls under one of the allowed roots. Both sides
// are parsed and dot segments resolved before comparing. File paths and
// object keys must match a root on a segment boundary, buckets must match
// exactly. Unparsable locators are never allowed.
func (c Config) Allows(uri string) bool {
	roots := c.Roots()
	if len(roots) == 0 {
		return true
	}
	target, err := locator.Parse(uri)
	if err != nil {
		return false
	}
	for _, r := range roots {
		root, err := locator.Parse(r)
		if err != nil {
			continue
		}
		if within(root, target) {
			return true
		}
	}
	return false
}

func within(root, target locator.Locator) bool {
	if root.Kind != target.Kind || root.Bucket != target.Bucket {
		return false
	}
	base, p := cleanPath(root), cleanPath(target)
	return base == "/" || p == base || strings.HasPrefix(p, base+"/")
}

func cleanPath(loc locator.Locator) string {
	if loc.Kind == locator.KindObject {
		return path.Clean("/" + loc.Key())
	}
	return path.Clean(filepath.ToSlash(loc.Path))
}
