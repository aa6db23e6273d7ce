package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/stackmelt/funcgate/pkg/docsync"
	"github.com/stackmelt/funcgate/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log := logger.NewWithSentry(logger.SentryConfig{
		DSN:         os.Getenv("SENTRY_DSN"),
		Environment: getenv("SENTRY_ENVIRONMENT", "production"),
	})

	if err := run(log); err != nil {
		log.Error("sync failed", slog.Any("error", err))
		if errors.Is(err, errUsage) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}

var errUsage = errors.New("DOCSYNC_REPO must be owner/name")

func run(log *slog.Logger) error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	owner, repo, err := parseRepo(os.Getenv("DOCSYNC_REPO"))
	if err != nil {
		return err
	}

	var source docsync.Source
	if bucket := os.Getenv("DOCSYNC_S3_BUCKET"); bucket != "" {
		source = &docsync.S3Source{
			Bucket: bucket,
			Key:    os.Getenv("DOCSYNC_S3_KEY"),
			Client: docsync.NewS3Client(
				getenv("AWS_REGION", "us-east-1"),
				os.Getenv("AWS_ACCESS_KEY_ID"),
				os.Getenv("AWS_SECRET_ACCESS_KEY"),
			),
		}
	} else {
		source = &docsync.HTTPSource{URL: os.Getenv("DOCSYNC_TARBALL_URL")}
	}

	client := docsync.NewDiscussionsClient(os.Getenv("GITHUB_TOKEN"))

	opts := []docsync.SyncOption{docsync.WithLogger(log)}
	if prefix := os.Getenv("DOCSYNC_PREFIX"); prefix != "" {
		opts = append(opts, docsync.WithDocsPrefix(prefix))
	}
	if os.Getenv("DOCSYNC_DRY_RUN") == "true" {
		opts = append(opts, docsync.WithDryRun())
	}

	s := docsync.NewSyncer(source, client,
		owner, repo,
		getenv("DOCSYNC_CATEGORY", "Comments"),
		os.Getenv("DOCSYNC_SITE_URL"),
		opts...,
	)
	return s.Run(ctx)
}

func parseRepo(s string) (owner, repo string, err error) {
	owner, repo, ok := strings.Cut(s, "/")
	if !ok || owner == "" || repo == "" {
		return "", "", errUsage
	}
	return owner, repo, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
