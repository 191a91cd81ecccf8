package transfer

import (
	"fmt"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/archive"
)

// Object key layout. Individual assets live under clients/, bundled
// archives under zipped-albums/. Every externally supplied component is
// sanitized before key construction.

// PhotoKey returns the object key for a single album asset.
func PhotoKey(client, album, file string) string {
	return fmt.Sprintf("clients/%s/%s/%s",
		archive.SanitizeName(client), archive.SanitizeName(album), archive.SanitizeName(file))
}

// AlbumPrefix returns the key prefix holding an album's assets.
func AlbumPrefix(client, album string) string {
	return fmt.Sprintf("clients/%s/%s/",
		archive.SanitizeName(client), archive.SanitizeName(album))
}

// AlbumArchiveKey returns the object key for an album's zip bundle.
func AlbumArchiveKey(client, album string) string {
	return fmt.Sprintf("zipped-albums/%s/%s.zip",
		archive.SanitizeName(client), archive.SanitizeName(album))
}
