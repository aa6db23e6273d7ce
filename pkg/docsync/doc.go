// Package docsync mirrors documentation pages into GitHub Discussions.
//
// It is build-time glue, not a service: fetch the docs source archive (HTTPS
// or S3), parse YAML front-matter from every markdown page, and diff the
// result against the discussion threads in one category. Pages without a
// thread get one created; pages whose rendered body drifted get their thread
// updated; hidden pages are skipped.
//
//	source := &docsync.HTTPSource{URL: archiveURL}
//	client := docsync.NewDiscussionsClient(token)
//
//	s := docsync.NewSyncer(source, client, "acme", "docs", "Comments", siteURL,
//		docsync.WithLogger(log),
//	)
//	err := s.Run(ctx)
//
// Mutations are sequential and rate-limited client-side; requests the API
// rejects with 429 or RATE_LIMITED are retried with backoff.
package docsync
