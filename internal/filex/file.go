// Package filex holds small filesystem helpers shared by the CLI tools.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// EnsureStagingDir creates dirName under the current working directory
// if it does not exist yet and returns its absolute path. The uploader
// stages album archives there before pushing them to object storage.
func EnsureStagingDir(dirName string) (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}

	dir := filepath.Join(cwd, dirName)

	if err := os.MkdirAll(dir, 0o770); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}

	return dir, nil
}
