package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureHomeDir resolves dirName under the user's home directory, creating it
// if needed, and returns the absolute path. When the home directory cannot be
// determined it falls back to the current working directory.
func EnsureHomeDir(dirName string) (string, error) {
	base, err := os.UserHomeDir()
	if err != nil {
		base, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("resolve base dir: %w", err)
		}
	}

	dir := filepath.Join(base, dirName)

	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
