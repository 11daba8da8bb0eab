package httpd

import (
	"errors"
	"path"
	"path/filepath"
	"strings"

	securejoin "github.com/cyphar/filepath-securejoin"
)

// ErrTraversal is returned for request paths that would escape the
// document root.
var ErrTraversal = errors.New("path escapes document root")

// Resolve maps a decoded request URL path to a path relative to the
// document root, or fails with ErrTraversal. The result is suitable for
// lookups on a filesystem rooted at root; it is never absolute and never
// starts with "..". This is the only place request paths are turned into
// file paths.
func Resolve(root, urlPath string) (string, error) {
	// Reject parent references before any joining. Clients asking for
	// ".." get a denial, not a silently clamped path.
	for _, part := range strings.Split(urlPath, "/") {
		if part == ".." {
			return "", ErrTraversal
		}
	}
	full, err := securejoin.SecureJoin(root, path.Clean("/"+urlPath))
	if err != nil {
		return "", err
	}
	rel, err := filepath.Rel(root, full)
	if err != nil {
		return "", ErrTraversal
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", ErrTraversal
	}
	return rel, nil
}
