// Package locator resolves equipment identifiers to PDF documents in a
// nested folder tree.
package locator

import (
	"io/fs"
	"path/filepath"
	"strings"
)

// Locate recursively searches root for a PDF whose filename matches
// identifier: either the identifier (lower-cased) is a substring of the
// filename, or the filename with its extension stripped equals the
// identifier case-insensitively. The identifier is trimmed of surrounding
// whitespace first.
//
// The walk stops at the first hit and its path is returned. Traversal
// order is not specified, so with several matching files the result is
// some match, not necessarily the nearest. A missing root or unreadable
// subtree is not an error; it simply yields no match.
func Locate(root, identifier string) (string, bool) {
	id := strings.ToLower(strings.TrimSpace(identifier))
	if id == "" {
		return "", false
	}

	var found string
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if d == nil {
				// root itself is unreadable or absent
				return err
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}

		name := strings.ToLower(d.Name())
		if !strings.HasSuffix(name, ".pdf") {
			return nil
		}
		if strings.Contains(name, id) || strings.TrimSuffix(name, ".pdf") == id {
			found = path
			return fs.SkipAll
		}
		return nil
	})

	return found, found != ""
}
