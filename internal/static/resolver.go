// Package static serves files from a public directory as the fallback for
// requests that match no API route.
package static

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

var (
	ErrNotFound    = errors.New("static file not found")
	ErrOutsideRoot = errors.New("path escapes public root")
)

// IndexFile is served for "/".
const IndexFile = "index.html"

// Resolver maps URL paths to files under a public root.
type Resolver struct {
	root        string
	contentType func(ext string) string
}

// NewResolver returns a Resolver rooted at dir. A nil contentType uses ContentType.
func NewResolver(dir string, contentType func(ext string) string) *Resolver {
	if contentType == nil {
		contentType = ContentType
	}
	return &Resolver{root: dir, contentType: contentType}
}

// Resolve turns a URL path into a slash-separated name relative to the root.
func (rs *Resolver) Resolve(urlPath string) (string, error) {
	if urlPath == "" || urlPath == "/" {
		return IndexFile, nil
	}
	if strings.ContainsRune(urlPath, 0) {
		return "", fmt.Errorf("%q: %w", urlPath, ErrOutsideRoot)
	}
	for _, seg := range strings.Split(urlPath, "/") {
		if seg == ".." {
			return "", fmt.Errorf("%q: %w", urlPath, ErrOutsideRoot)
		}
	}
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" {
		return IndexFile, nil
	}
	return name, nil
}

// ReadFile returns the bytes of the file a URL path resolves to.
func (rs *Resolver) ReadFile(urlPath string) ([]byte, string, error) {
	name, err := rs.Resolve(urlPath)
	if err != nil {
		return nil, "", err
	}

	// OpenInRoot refuses names and symlinks that leave the root.
	f, err := os.OpenInRoot(rs.root, filepath.FromSlash(name))
	if err != nil {
		return nil, "", fmt.Errorf("open %s: %w: %v", name, ErrNotFound, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read %s: %w: %v", name, ErrNotFound, err)
	}
	return data, rs.contentType(path.Ext(name)), nil
}

// ServeHTTP implements http.Handler
func (rs *Resolver) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	data, contentType, err := rs.ReadFile(r.URL.Path)
	if err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, "Not Found")
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}
