package uploader

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

// ListClients returns the client folder names under the media root.
func ListClients(root string) ([]string, error) {
	return listDirs(root)
}

// ListAlbums returns the album folder names under {root}/{client}/albums.
func ListAlbums(root, client string) ([]string, error) {
	albums, err := listDirs(filepath.Join(root, client, "albums"))
	if err != nil {
		return nil, fmt.Errorf("client %s: %w", client, err)
	}
	return albums, nil
}

func listDirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", dir, common.ErrNotFound)
		}
		return nil, fmt.Errorf("read %s: %w", dir, err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}
