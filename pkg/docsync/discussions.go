package docsync

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

// Errors.
var (
	ErrCategoryNotFound = errors.New("docsync: discussion category not found")
	ErrRateLimited      = errors.New("docsync: rate limited")
)

const defaultEndpoint = "https://api.github.com/graphql"

// Discussion is an existing discussion thread, keyed by title during the
// diff.
type Discussion struct {
	ID    string
	Title string
	Body  string
}

// DiscussionsClient talks to the GitHub GraphQL API. Mutations share a
// client-side rate limiter, and requests rejected with 429 or RATE_LIMITED
// are retried with backoff.
type DiscussionsClient struct {
	endpoint   string
	http       *http.Client
	limiter    *rate.Limiter
	maxRetries int
}

// ClientOption configures the DiscussionsClient.
type ClientOption func(*DiscussionsClient)

// WithEndpoint overrides the GraphQL endpoint (used against test servers
// and GitHub Enterprise installs).
func WithEndpoint(endpoint string) ClientOption {
	return func(c *DiscussionsClient) {
		c.endpoint = endpoint
	}
}

// WithRateLimit replaces the default limiter of one request per second.
func WithRateLimit(limiter *rate.Limiter) ClientOption {
	return func(c *DiscussionsClient) {
		c.limiter = limiter
	}
}

// WithMaxRetries sets how many times a rate-limited request is retried
// before giving up (default 3).
func WithMaxRetries(n int) ClientOption {
	return func(c *DiscussionsClient) {
		c.maxRetries = n
	}
}

// NewDiscussionsClient creates a client authenticated with the given token.
func NewDiscussionsClient(token string, opts ...ClientOption) *DiscussionsClient {
	c := &DiscussionsClient{
		endpoint:   defaultEndpoint,
		limiter:    rate.NewLimiter(rate.Every(time.Second), 1),
		maxRetries: 3,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.http == nil {
		c.http = oauth2.NewClient(context.Background(), oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		))
	}
	return c
}

// gqlError is one entry of a GraphQL error response.
type gqlError struct {
	Type    string `json:"type"`
	Message string `json:"message"`
}

// do posts one GraphQL request and decodes the data payload into out.
// Rate-limit rejections are retried up to maxRetries times, honoring
// Retry-After when the server supplies it.
func (c *DiscussionsClient) do(ctx context.Context, query string, variables map[string]any, out any) error {
	payload, err := json.Marshal(map[string]any{
		"query":     query,
		"variables": variables,
	})
	if err != nil {
		return fmt.Errorf("docsync: encode query: %w", err)
	}

	var lastErr error
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return err
		}

		retryAfter, err := c.post(ctx, payload, out)
		if err == nil {
			return nil
		}
		if !errors.Is(err, ErrRateLimited) {
			return err
		}
		lastErr = err

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(retryAfter):
		}
	}
	return lastErr
}

// post performs a single request. On a rate-limit rejection it returns
// ErrRateLimited together with the wait hinted by Retry-After (or a one
// second default).
func (c *DiscussionsClient) post(ctx context.Context, payload []byte, out any) (time.Duration, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return 0, fmt.Errorf("docsync: build query: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, fmt.Errorf("docsync: post query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return retryAfter(resp), ErrRateLimited
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return 0, fmt.Errorf("docsync: query failed: status %d: %s", resp.StatusCode, body)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []gqlError      `json:"errors"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return 0, fmt.Errorf("docsync: decode response: %w", err)
	}

	for _, e := range envelope.Errors {
		if e.Type == "RATE_LIMITED" {
			return retryAfter(resp), ErrRateLimited
		}
	}
	if len(envelope.Errors) > 0 {
		return 0, fmt.Errorf("docsync: query failed: %s", envelope.Errors[0].Message)
	}

	if out != nil {
		if err := json.Unmarshal(envelope.Data, out); err != nil {
			return 0, fmt.Errorf("docsync: decode data: %w", err)
		}
	}
	return 0, nil
}

func retryAfter(resp *http.Response) time.Duration {
	if v := resp.Header.Get("Retry-After"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs >= 0 {
			return time.Duration(secs) * time.Second
		}
	}
	return time.Second
}

// RepositoryInfo resolves the repository node ID and the discussion
// category ID for the named category.
func (c *DiscussionsClient) RepositoryInfo(ctx context.Context, owner, repo, category string) (repoID, categoryID string, err error) {
	const query = `
		query($owner: String!, $repo: String!) {
			repository(owner: $owner, name: $repo) {
				id
				discussionCategories(first: 25) {
					nodes { id name }
				}
			}
		}`

	var data struct {
		Repository struct {
			ID         string `json:"id"`
			Categories struct {
				Nodes []struct {
					ID   string `json:"id"`
					Name string `json:"name"`
				} `json:"nodes"`
			} `json:"discussionCategories"`
		} `json:"repository"`
	}
	if err := c.do(ctx, query, map[string]any{"owner": owner, "repo": repo}, &data); err != nil {
		return "", "", err
	}

	for _, node := range data.Repository.Categories.Nodes {
		if node.Name == category {
			return data.Repository.ID, node.ID, nil
		}
	}
	return "", "", fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
}

// ListDiscussions pages through every discussion in the category.
func (c *DiscussionsClient) ListDiscussions(ctx context.Context, owner, repo, categoryID string) ([]Discussion, error) {
	const query = `
		query($owner: String!, $repo: String!, $category: ID!, $after: String) {
			repository(owner: $owner, name: $repo) {
				discussions(first: 100, after: $after, categoryId: $category) {
					nodes { id title body }
					pageInfo { hasNextPage endCursor }
				}
			}
		}`

	var all []Discussion
	var after any
	for {
		var data struct {
			Repository struct {
				Discussions struct {
					Nodes    []Discussion `json:"nodes"`
					PageInfo struct {
						HasNextPage bool   `json:"hasNextPage"`
						EndCursor   string `json:"endCursor"`
					} `json:"pageInfo"`
				} `json:"discussions"`
			} `json:"repository"`
		}

		vars := map[string]any{"owner": owner, "repo": repo, "category": categoryID, "after": after}
		if err := c.do(ctx, query, vars, &data); err != nil {
			return nil, err
		}

		all = append(all, data.Repository.Discussions.Nodes...)
		if !data.Repository.Discussions.PageInfo.HasNextPage {
			return all, nil
		}
		after = data.Repository.Discussions.PageInfo.EndCursor
	}
}

// CreateDiscussion opens a new thread and returns its node ID.
func (c *DiscussionsClient) CreateDiscussion(ctx context.Context, repoID, categoryID, title, body string) (string, error) {
	const mutation = `
		mutation($repo: ID!, $category: ID!, $title: String!, $body: String!) {
			createDiscussion(input: {repositoryId: $repo, categoryId: $category, title: $title, body: $body}) {
				discussion { id }
			}
		}`

	var data struct {
		CreateDiscussion struct {
			Discussion struct {
				ID string `json:"id"`
			} `json:"discussion"`
		} `json:"createDiscussion"`
	}
	vars := map[string]any{"repo": repoID, "category": categoryID, "title": title, "body": body}
	if err := c.do(ctx, mutation, vars, &data); err != nil {
		return "", err
	}
	return data.CreateDiscussion.Discussion.ID, nil
}

// UpdateDiscussion replaces a thread's body.
func (c *DiscussionsClient) UpdateDiscussion(ctx context.Context, id, body string) error {
	const mutation = `
		mutation($id: ID!, $body: String!) {
			updateDiscussion(input: {discussionId: $id, body: $body}) {
				discussion { id }
			}
		}`

	return c.do(ctx, mutation, map[string]any{"id": id, "body": body}, nil)
}
