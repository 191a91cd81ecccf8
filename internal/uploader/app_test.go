package uploader

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/transfer"
)

type fakeS3Uploader struct {
	keys []string
}

func (f *fakeS3Uploader) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	if input.Body != nil {
		if _, err := io.Copy(io.Discard, input.Body); err != nil {
			return nil, err
		}
	}
	f.keys = append(f.keys, *input.Key)
	return &manager.UploadOutput{}, nil
}

func newTestApp(t *testing.T, root string) (*App, *fakeS3Uploader, *bytes.Buffer) {
	t.Helper()
	fake := &fakeS3Uploader{}
	counter := &transfer.Counter{}
	out := &bytes.Buffer{}
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.MediaRoot = root
	app := &App{
		cfg:      cfg,
		uploader: transfer.NewManager(nil, "test-bucket", transfer.WithUploader(fake), transfer.WithProgress(counter.Add)),
		progress: counter,
		out:      out,
	}
	return app, fake, out
}

func TestRun_Usage(t *testing.T) {
	app, _, _ := newTestApp(t, t.TempDir())

	for _, args := range [][]string{
		nil,
		{"frobnicate"},
		{"upload", "acme"},
		{"deliver", "acme", "summer"},
		{"create-client", "acme"},
	} {
		err := app.Run(context.Background(), args)
		require.ErrorIs(t, err, common.ErrValidation, "args=%v", args)
	}
}

func TestRun_List(t *testing.T) {
	root := seedMediaRoot(t)
	app, _, out := newTestApp(t, root)

	require.NoError(t, app.Run(context.Background(), []string{"list"}))
	assert.Equal(t, "acme\nbravo\n", out.String())

	out.Reset()
	require.NoError(t, app.Run(context.Background(), []string{"list", "acme"}))
	assert.Equal(t, "summer\nwinter\n", out.String())
}

func TestUploadAlbum(t *testing.T) {
	root := seedMediaRoot(t)
	albumDir := filepath.Join(root, "acme", "albums", "summer")
	require.NoError(t, os.WriteFile(filepath.Join(albumDir, "photo1.jpg"), []byte("jpeg"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(albumDir, "photo2.png"), []byte("png"), 0o644))
	// Pre-existing archives are not re-uploaded as photos.
	require.NoError(t, os.WriteFile(filepath.Join(albumDir, "old.zip"), []byte("zip"), 0o644))

	// The zip is staged under the current working directory.
	defer chdirTemp(t)()

	app, fake, out := newTestApp(t, root)
	require.NoError(t, app.Run(context.Background(), []string{"upload", "acme", "summer"}))

	assert.Equal(t, []string{
		"clients/acme/summer/photo1.jpg",
		"clients/acme/summer/photo2.png",
		"zipped-albums/acme/summer.zip",
	}, fake.keys)
	assert.Greater(t, app.progress.Total(), int64(0))
	assert.Contains(t, out.String(), "zipped-albums/acme/summer.zip")

	// The staged archive stays on disk for the photographer.
	_, err := os.Stat(filepath.Join(stagingDirName, "acme-summer.zip"))
	assert.NoError(t, err)
}

func TestUploadAlbum_EmptyAlbum(t *testing.T) {
	root := seedMediaRoot(t)
	app, _, _ := newTestApp(t, root)

	err := app.Run(context.Background(), []string{"upload", "acme", "winter"})
	require.ErrorIs(t, err, common.ErrValidation)
}

func TestUploadAlbum_MissingAlbum(t *testing.T) {
	app, _, _ := newTestApp(t, t.TempDir())

	err := app.Run(context.Background(), []string{"upload", "acme", "nope"})
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestDeliverAlbum(t *testing.T) {
	srv := httptest.NewServer(signatureChecker(t, nil, func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"message":"ok","download_link":"https://s3.example/signed"}`)
	}))
	defer srv.Close()

	app, _, out := newTestApp(t, t.TempDir())
	app.api = NewAPIClient(srv.URL, testProvider(), "test")

	require.NoError(t, app.Run(context.Background(), []string{"deliver", "acme", "summer", "a@b.com"}))
	assert.Contains(t, out.String(), "https://s3.example/signed")
}

func chdirTemp(t *testing.T) func() {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	return func() { _ = os.Chdir(old) }
}
