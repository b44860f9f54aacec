// Package archive builds Walk abstraction on top of "archive/zip".
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"path"
	"strings"

	"golang.org/x/text/encoding"
)

// WalkFunc is the type of the function called for each file in archive
// visited by Walk. The archive argument contains path to archive passed to Walk.
// The file argument is the zip.File structure for file in archive which satisfies
// match condition. If an error is returned, processing stops.
type WalkFunc func(archive string, file *zip.File) error

// Walk walks all regular files in the archive located under prefix for which
// match returns true (nil match accepts everything), calling walkFn for each
// item. Archives with path traversal components ("..") or absolute paths are
// rejected as a whole to prevent Zip Slip attacks.
func Walk(archive, prefix string, match func(name string) bool, walkFn WalkFunc) error {

	r, err := zip.OpenReader(archive)
	if err != nil {
		return err
	}
	defer r.Close()

	for _, f := range r.File {
		name := f.FileHeader.Name
		if !isSafePath(name) {
			return fmt.Errorf("zip entry %q: unsafe path (absolute or contains path traversal)", name)
		}
		if f.FileInfo().IsDir() || !strings.HasPrefix(name, prefix) {
			continue
		}
		if match != nil && !match(name) {
			continue
		}
		if err := walkFn(archive, f); err != nil {
			return err
		}
	}
	return nil
}

// ReadFile returns at most limit bytes of uncompressed entry content.
// Declared sizes in zip headers are not trusted, reading simply stops at the
// limit, so caller could detect oversized entries by length of the result.
func ReadFile(f *zip.File, limit int64) ([]byte, error) {
	r, err := f.Open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, limit))
	if err != nil {
		return nil, fmt.Errorf("zip entry %q: %w", f.FileHeader.Name, err)
	}
	return data, nil
}

// Name returns entry path. Zip "standard" does not define file name encoding
// so names not flagged as UTF-8 are decoded with cp when it is provided.
func Name(f *zip.File, cp encoding.Encoding) (string, error) {
	name := f.FileHeader.Name
	if cp == nil || !f.FileHeader.NonUTF8 {
		return name, nil
	}
	decoded, err := cp.NewDecoder().String(name)
	if err != nil {
		return name, fmt.Errorf("zip entry %q: unable to decode name: %w", name, err)
	}
	return decoded, nil
}

// isSafePath returns false for paths that could escape the extraction
// directory: absolute paths and those containing ".." components.
func isSafePath(name string) bool {
	if path.IsAbs(name) || strings.HasPrefix(name, "/") || strings.HasPrefix(name, `\`) {
		return false
	}
	for part := range strings.SplitSeq(name, "/") {
		if part == ".." {
			return false
		}
	}
	return true
}
