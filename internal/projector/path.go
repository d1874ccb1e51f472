package projector

import (
	"fmt"
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Ancestors returns dir followed by each of its parents, ending at the root.
//
// The root is the first path whose parent is itself ("/" on Unix, a volume
// name on Windows), so the chain is always finite.
func Ancestors(dir string) []string {
	chain := []string{dir}
	for {
		parent := filepath.Dir(dir)
		if parent == dir {
			return chain
		}
		chain = append(chain, parent)
		dir = parent
	}
}

// NormalizePath returns the absolute, cleaned form of dir.
// Strings are NFC normalized so that the same directory reported in
// decomposed form (as macOS does) maps to the same Store key.
func NormalizePath(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("normalize path %q: %w", dir, err)
	}
	return norm.NFC.String(abs), nil
}
