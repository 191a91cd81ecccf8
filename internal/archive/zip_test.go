package archive

import (
	"archive/zip"
	"io"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestCreateAlbumArchive(t *testing.T) {
	src := t.TempDir()
	writeFile(t, filepath.Join(src, "one.jpg"), "first")
	writeFile(t, filepath.Join(src, "two.png"), "second")
	writeFile(t, filepath.Join(src, "raw", "three.jpg"), "nested")
	// A previous bundle must not end up inside the new one.
	writeFile(t, filepath.Join(src, "summer.zip"), "old bundle")

	dest := filepath.Join(t.TempDir(), "summer.zip")
	require.NoError(t, CreateAlbumArchive(src, dest))

	r, err := zip.OpenReader(dest)
	require.NoError(t, err)
	defer r.Close()

	var names []string
	contents := map[string]string{}
	for _, f := range r.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		b, err := io.ReadAll(rc)
		require.NoError(t, err)
		rc.Close()
		contents[f.Name] = string(b)

		assert.Equal(t, uint16(zip.Deflate), f.Method)
		assert.False(t, filepath.IsAbs(f.Name), "archive must not contain absolute paths")
	}
	sort.Strings(names)

	assert.Equal(t, []string{"one.jpg", "raw/three.jpg", "two.png"}, names)
	assert.Equal(t, "first", contents["one.jpg"])
	assert.Equal(t, "nested", contents["raw/three.jpg"])
}

func TestCreateAlbumArchive_MissingDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "out.zip")
	err := CreateAlbumArchive(filepath.Join(t.TempDir(), "nope"), dest)
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestCreateAlbumArchive_SourceIsFile(t *testing.T) {
	src := filepath.Join(t.TempDir(), "file.jpg")
	writeFile(t, src, "x")
	err := CreateAlbumArchive(src, filepath.Join(t.TempDir(), "out.zip"))
	assert.ErrorIs(t, err, common.ErrValidation)
}

func TestSanitizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "clean", in: "summer-2026", want: "summer-2026"},
		{name: "traversal dots", in: "../../etc", want: "____etc"},
		{name: "embedded traversal", in: "a/../b", want: "a___b"},
		{name: "separators", in: "a/b\\c", want: "a_b_c"},
		{name: "invalid chars", in: `we<dd>ing:"x"|?*`, want: "we_dd_ing__x____"},
		{name: "control chars", in: "a\x00b\nc", want: "a_b_c"},
		{name: "leading and trailing slash", in: "/acme/", want: "_acme_"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SanitizeName(tc.in)
			assert.Equal(t, tc.want, got)
			assert.NotContains(t, got, "..")
			assert.NotContains(t, got, "/")
		})
	}
}
