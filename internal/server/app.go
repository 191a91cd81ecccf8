// Package server initializes and runs the album delivery server.
// It builds the AWS clients, wires the delivery pipeline, handles
// graceful shutdown and starts the HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ssm"

	"github.com/jon-the-dev/aws-album-manager-sls/internal/audit"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/links"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/logging"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/mail"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/paypal"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/records"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/secrets"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/config"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/delivery"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/httpapi"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/server/metrics"
	"github.com/jon-the-dev/aws-album-manager-sls/internal/transfer"
)

const shutdownTimeout = 10 * time.Second

type App struct {
	config  *config.Config
	logger  logging.Logger
	handler http.Handler
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {

	logger := logging.NewJSON(os.Stdout)

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(c.AWSRegion))
	if err != nil {
		return nil, fmt.Errorf("aws config init error: %w", err)
	}

	s3Client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if c.S3BaseEndpoint != "" {
			o.BaseEndpoint = aws.String(c.S3BaseEndpoint)
			o.UsePathStyle = true
		}
	})
	ssmClient := ssm.NewFromConfig(awsCfg)
	sesClient := ses.NewFromConfig(awsCfg)
	dbClient := dynamodb.NewFromConfig(awsCfg)

	sp := secrets.NewCached(secrets.NewSSMProvider(ssmClient), c.SecretCacheTTL)

	bucket, err := resolveSetting(ctx, c.S3Bucket, sp, c.Env, secrets.KeyS3BucketName)
	if err != nil {
		return nil, fmt.Errorf("resolve bucket: %w", err)
	}
	sender, err := resolveSetting(ctx, c.SenderEmail, sp, c.Env, secrets.KeySESSenderEmail)
	if err != nil {
		return nil, fmt.Errorf("resolve sender: %w", err)
	}

	uploader := transfer.NewManager(s3Client, bucket, transfer.WithProgress(func(delta int64) {
		metrics.UploadedBytesTotal.Add(float64(delta))
	}))
	issuer := links.NewIssuer(s3.NewPresignClient(s3Client))
	notifier := mail.NewNotifier(sesClient, sender)
	store := records.NewStore(dbClient, c.ClientsTable, c.DeliveriesTable)
	recorder := audit.NewRecorder(dbClient, c.AuditTable, logger)
	verifier := paypal.NewVerifier(sp, c.Env,
		paypal.WithBaseURL(c.PayPalBaseURL),
		paypal.WithTimeout(c.VerifyTimeout))

	svc := delivery.NewService(delivery.Deps{
		Uploader:  uploader,
		Links:     issuer,
		Notifier:  notifier,
		Store:     store,
		Verifier:  verifier,
		Audit:     recorder,
		Logger:    logger,
		MediaRoot: c.MediaRoot,
		LinkTTL:   c.LinkTTL,
	})

	handler := httpapi.NewHandler(svc, store, sp, c.Env, logger)

	return &App{config: c, logger: logger, handler: handler.Router()}, nil
}

// resolveSetting prefers the configured value and falls back to the
// environment's parameter store entry.
func resolveSetting(ctx context.Context, configured string, sp secrets.Provider, env, key string) (string, error) {
	if configured != "" {
		return configured, nil
	}
	return sp.Get(ctx, secrets.ParamName(env, key))
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	// Channel to catch OS signals.
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

func (app *App) startHTTPServer(ctx context.Context, cancelFunc context.CancelFunc) {

	srv := &http.Server{Addr: app.config.Addr, Handler: app.handler}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			app.logger.Error(ctx, "http server shutdown error", "error", err)
		}
	}()

	app.logger.Info(ctx, "http server listening", "addr", app.config.Addr, "env", app.config.Env)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		app.logger.Error(ctx, err.Error())
		cancelFunc()
	}
}

func (app *App) Run(ctx context.Context) {

	ctx, cancelFunc := context.WithCancel(ctx)

	app.logger.Info(ctx, "Starting app...")

	app.initSignalHandler(cancelFunc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		app.startHTTPServer(ctx, cancelFunc)
	}()

	wg.Wait()
}
