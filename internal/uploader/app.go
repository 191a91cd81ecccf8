package uploader

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/archive"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/common"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/filex"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/secrets"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/transfer"
)

const stagingDirName = "zipped-albums"

// App wires the uploader commands to the transfer manager and the
// delivery API.
type App struct {
	cfg      *Config
	uploader *transfer.Manager
	api      *APIClient
	progress *transfer.Counter
	out      io.Writer
}

func NewApp(ctx context.Context, cfg *Config) (*App, error) {

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("aws config init error: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})

	sp := secrets.NewCached(secrets.NewSSMProvider(ssm.NewFromConfig(awsCfg)), cfg.SecretCacheTTL)

	bucket := cfg.S3Bucket
	if bucket == "" {
		bucket, err = sp.Get(ctx, secrets.ParamName(cfg.Env, secrets.KeyS3BucketName))
		if err != nil {
			return nil, fmt.Errorf("resolve bucket: %w", err)
		}
	}

	counter := &transfer.Counter{}
	return &App{
		cfg:      cfg,
		uploader: transfer.NewManager(s3Client, bucket, transfer.WithProgress(counter.Add)),
		api:      NewAPIClient(cfg.APIBaseURL, sp, cfg.Env),
		progress: counter,
		out:      os.Stdout,
	}, nil
}

// Run dispatches one command: list, upload, deliver or create-client.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return usageError()
	}

	switch args[0] {
	case "list":
		if len(args) == 2 {
			return a.listAlbums(args[1])
		}
		return a.listClients()
	case "upload":
		if len(args) != 3 {
			return usageError()
		}
		return a.uploadAlbum(ctx, args[1], args[2])
	case "deliver":
		if len(args) != 4 {
			return usageError()
		}
		return a.deliverAlbum(ctx, args[1], args[2], args[3])
	case "create-client":
		if len(args) != 3 {
			return usageError()
		}
		return a.createClient(ctx, args[1], args[2])
	default:
		return usageError()
	}
}

func usageError() error {
	return fmt.Errorf("usage: uploader list [client] | upload <client> <album> | deliver <client> <album> <email> | create-client <name> <email>: %w",
		common.ErrValidation)
}

func (a *App) listClients() error {
	clients, err := ListClients(a.cfg.MediaRoot)
	if err != nil {
		return err
	}
	for _, c := range clients {
		fmt.Fprintln(a.out, c)
	}
	return nil
}

func (a *App) listAlbums(client string) error {
	albums, err := ListAlbums(a.cfg.MediaRoot, client)
	if err != nil {
		return err
	}
	for _, al := range albums {
		fmt.Fprintln(a.out, al)
	}
	return nil
}

// uploadAlbum pushes every photo of the album and a locally staged
// archive to object storage, reporting accumulated bytes as it goes.
func (a *App) uploadAlbum(ctx context.Context, client, album string) error {
	albumDir := filepath.Join(a.cfg.MediaRoot, client, "albums", album)
	entries, err := os.ReadDir(albumDir)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("album %s/%s: %w", client, album, common.ErrNotFound)
		}
		return fmt.Errorf("read album %s/%s: %w", client, album, err)
	}

	uploaded := 0
	for _, e := range entries {
		if e.IsDir() || strings.HasSuffix(strings.ToLower(e.Name()), ".zip") {
			continue
		}
		key := transfer.PhotoKey(client, album, e.Name())
		if err := a.uploader.UploadFile(ctx, key, filepath.Join(albumDir, e.Name())); err != nil {
			return err
		}
		uploaded++
		fmt.Fprintf(a.out, "uploaded %s (%d bytes total)\n", key, a.progress.Total())
	}
	if uploaded == 0 {
		return fmt.Errorf("album %s/%s has no photos: %w", client, album, common.ErrValidation)
	}

	stageDir, err := filex.EnsureStagingDir(stagingDirName)
	if err != nil {
		return errors.Join(common.ErrInternal, err)
	}
	zipPath := filepath.Join(stageDir, archive.SanitizeName(client)+"-"+archive.SanitizeName(album)+".zip")
	if err := archive.CreateAlbumArchive(albumDir, zipPath); err != nil {
		return err
	}

	zipKey := transfer.AlbumArchiveKey(client, album)
	if err := a.uploader.UploadFile(ctx, zipKey, zipPath); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "uploaded %s (%d bytes total)\n", zipKey, a.progress.Total())

	return nil
}

func (a *App) deliverAlbum(ctx context.Context, client, album, email string) error {
	link, err := a.api.RequestAlbumZip(ctx, client, album, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "download link: %s\n", link)
	return nil
}

func (a *App) createClient(ctx context.Context, name, email string) error {
	id, err := a.api.CreateClient(ctx, name, email)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "client created: %s\n", id)
	return nil
}
