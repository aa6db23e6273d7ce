package docsync

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/stackmelt/funcgate/pkg/logger"
)

const defaultExcerptLimit = 200

// Syncer mirrors documentation pages into a discussion category: one thread
// per visible page, titled after the page, body holding the excerpt and a
// canonical link. Existing threads are updated only when their body drifted.
type Syncer struct {
	source   Source
	client   *DiscussionsClient
	owner    string
	repo     string
	category string
	siteURL  string
	prefix   string
	logger   *slog.Logger
	dryRun   bool
}

// SyncOption configures the Syncer.
type SyncOption func(*Syncer)

// WithLogger sets the sync logger (default: discard).
func WithLogger(log *slog.Logger) SyncOption {
	return func(s *Syncer) {
		if log != nil {
			s.logger = log
		}
	}
}

// WithDocsPrefix sets the archive path prefix selecting documentation files
// (default "docs/").
func WithDocsPrefix(prefix string) SyncOption {
	return func(s *Syncer) {
		s.prefix = prefix
	}
}

// WithDryRun logs planned mutations without executing them.
func WithDryRun() SyncOption {
	return func(s *Syncer) {
		s.dryRun = true
	}
}

// NewSyncer creates a Syncer for owner/repo's category. siteURL is the docs
// site base used for canonical links in thread bodies.
func NewSyncer(source Source, client *DiscussionsClient, owner, repo, category, siteURL string, opts ...SyncOption) *Syncer {
	s := &Syncer{
		source:   source,
		client:   client,
		owner:    owner,
		repo:     repo,
		category: category,
		siteURL:  strings.TrimSuffix(siteURL, "/"),
		prefix:   "docs/",
		logger:   logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run performs one sync pass. The archive fetch and the discussion index
// fetch overlap; mutations run sequentially afterwards.
func (s *Syncer) Run(ctx context.Context) error {
	var (
		pages      []Page
		existing   []Discussion
		repoID     string
		categoryID string
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rc, err := s.source.Fetch(gctx)
		if err != nil {
			return err
		}
		defer rc.Close()

		pages, err = collectPages(rc, s.prefix)
		return err
	})
	g.Go(func() error {
		var err error
		repoID, categoryID, err = s.client.RepositoryInfo(gctx, s.owner, s.repo, s.category)
		if err != nil {
			return err
		}
		existing, err = s.client.ListDiscussions(gctx, s.owner, s.repo, categoryID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	byTitle := make(map[string]Discussion, len(existing))
	for _, d := range existing {
		byTitle[d.Title] = d
	}

	var created, updated, unchanged, skipped int
	for _, page := range pages {
		if page.Hidden {
			skipped++
			continue
		}

		body := s.threadBody(page)
		current, ok := byTitle[page.Title]
		switch {
		case !ok:
			s.logger.InfoContext(ctx, "creating discussion", slog.String("title", page.Title))
			if !s.dryRun {
				if _, err := s.client.CreateDiscussion(ctx, repoID, categoryID, page.Title, body); err != nil {
					return fmt.Errorf("create %q: %w", page.Title, err)
				}
			}
			created++
		case current.Body != body:
			s.logger.InfoContext(ctx, "updating discussion", slog.String("title", page.Title))
			if !s.dryRun {
				if err := s.client.UpdateDiscussion(ctx, current.ID, body); err != nil {
					return fmt.Errorf("update %q: %w", page.Title, err)
				}
			}
			updated++
		default:
			unchanged++
		}
	}

	s.logger.InfoContext(ctx, "sync completed",
		slog.Int("created", created),
		slog.Int("updated", updated),
		slog.Int("unchanged", unchanged),
		slog.Int("hidden", skipped),
	)
	return nil
}

// threadBody renders the discussion body for a page.
func (s *Syncer) threadBody(page Page) string {
	var b strings.Builder
	if excerpt := page.Excerpt(defaultExcerptLimit); excerpt != "" {
		b.WriteString(excerpt)
		b.WriteString("\n\n")
	}
	b.WriteString(s.siteURL)
	b.WriteString("/")
	b.WriteString(strings.TrimSuffix(page.Path, ".md"))
	return b.String()
}
