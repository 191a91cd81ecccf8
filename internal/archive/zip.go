// Package archive bundles a client's album directory into a single
// deflate-compressed zip and sanitizes externally supplied name components
// used in paths and object-storage keys.
package archive

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

// CreateAlbumArchive walks srcDir and writes a deflate-compressed zip to
// destPath. Entry names are relative to the album root, so the archive
// never leaks absolute paths. Existing zip files inside the album are
// skipped to avoid nesting a previous bundle.
//
// Archive creation is local and synchronous; a missing directory or any
// I/O error is fatal to the request and surfaced to the caller.
func CreateAlbumArchive(srcDir, destPath string) (err error) {
	info, err := os.Stat(srcDir)
	if err != nil {
		return fmt.Errorf("album directory %s: %w", srcDir, common.ErrValidation)
	}
	if !info.IsDir() {
		return fmt.Errorf("album path %s is not a directory: %w", srcDir, common.ErrValidation)
	}

	out, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create archive: %w", err)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close archive: %w", cerr)
		}
	}()

	zw := zip.NewWriter(out)
	defer func() {
		if cerr := zw.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("finalize archive: %w", cerr)
		}
	}()

	err = filepath.WalkDir(srcDir, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) == ".zip" {
			return nil
		}

		rel, err := filepath.Rel(srcDir, path)
		if err != nil {
			return err
		}

		return addFile(zw, path, filepath.ToSlash(rel))
	})
	if err != nil {
		return fmt.Errorf("bundle %s: %w", srcDir, err)
	}

	return nil
}

func addFile(zw *zip.Writer, path, name string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w, err := zw.CreateHeader(&zip.FileHeader{
		Name:   name,
		Method: zip.Deflate,
	})
	if err != nil {
		return err
	}

	_, err = io.Copy(w, f)
	return err
}
