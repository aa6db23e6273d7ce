package docsync

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// Errors.
var (
	ErrSourceNotFound = errors.New("docsync: source archive not found")
)

// Source fetches the documentation tarball. The reader yields gzip'd tar
// data and must be closed by the caller.
type Source interface {
	Fetch(ctx context.Context) (io.ReadCloser, error)
}

// HTTPSource downloads the tarball from a URL (e.g. a codeload archive
// link).
type HTTPSource struct {
	URL    string
	Client *http.Client
}

// Fetch downloads the archive.
func (s *HTTPSource) Fetch(ctx context.Context) (io.ReadCloser, error) {
	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("docsync: build archive request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("docsync: fetch archive: %w", err)
	}
	if resp.StatusCode == http.StatusNotFound {
		resp.Body.Close()
		return nil, ErrSourceNotFound
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("docsync: fetch archive: unexpected status %d", resp.StatusCode)
	}
	return resp.Body, nil
}

// S3Source reads the tarball from an S3 object, for pipelines that stage
// docs archives in a bucket instead of serving them over HTTPS.
type S3Source struct {
	Bucket string
	Key    string
	Client *s3.Client
}

// NewS3Client builds an S3 client from static credentials.
func NewS3Client(region, accessKey, secretKey string) *s3.Client {
	return s3.New(s3.Options{
		Region:      region,
		Credentials: aws.NewCredentialsCache(credentials.NewStaticCredentialsProvider(accessKey, secretKey, "")),
	})
}

// Fetch reads the archive object. A missing object maps to
// ErrSourceNotFound; other API failures pass through.
func (s *S3Source) Fetch(ctx context.Context) (io.ReadCloser, error) {
	out, err := s.Client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.Bucket),
		Key:    aws.String(s.Key),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil, ErrSourceNotFound
		}
		return nil, fmt.Errorf("docsync: fetch s3 object: %w", err)
	}
	return out.Body, nil
}
