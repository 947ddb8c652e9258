package store

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

// S3API is the subset of *s3.Client used by S3Store.
type S3API interface {
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

// S3Store keeps each post's comments as one JSON object under
// prefix + slug + ".json". Append is a read-modify-write, so concurrent
// writers to the same slug can lose updates.
type S3Store struct {
	client S3API
	bucket string
	prefix string
}

// NewS3Store creates a store over bucket. The prefix is used as given; pass
// "comments/" to keep objects under a folder.
func NewS3Store(client S3API, bucket, prefix string) *S3Store {
	return &S3Store{client: client, bucket: bucket, prefix: prefix}
}

// NewS3Client builds a client for region. A non-empty endpoint selects an
// S3-compatible server with path-style addressing. Credentials come from the
// AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY and AWS_SESSION_TOKEN variables;
// without them requests are sent unsigned.
func NewS3Client(region, endpoint string) *s3.Client {
	opts := s3.Options{
		Region:      region,
		Credentials: envCredentials(),
	}
	if endpoint != "" {
		opts.BaseEndpoint = aws.String(endpoint)
		opts.UsePathStyle = true
		opts.RequestChecksumCalculation = aws.RequestChecksumCalculationWhenRequired
		opts.ResponseChecksumValidation = aws.ResponseChecksumValidationWhenRequired
	}
	return s3.New(opts)
}

func envCredentials() aws.CredentialsProvider {
	id, secret := os.Getenv("AWS_ACCESS_KEY_ID"), os.Getenv("AWS_SECRET_ACCESS_KEY")
	if id == "" || secret == "" {
		return aws.AnonymousCredentials{}
	}
	token := os.Getenv("AWS_SESSION_TOKEN")
	return aws.NewCredentialsCache(aws.CredentialsProviderFunc(func(context.Context) (aws.Credentials, error) {
		return aws.Credentials{
			AccessKeyID:     id,
			SecretAccessKey: secret,
			SessionToken:    token,
			Source:          "Environment",
		}, nil
	}))
}

func (s *S3Store) key(slug string) string {
	return s.prefix + slug + ".json"
}

// List implements CommentStore. A missing object is an empty list.
func (s *S3Store) List(ctx context.Context, slug string) ([]Comment, error) {
	if err := checkSlug(slug); err != nil {
		return nil, err
	}
	return s.get(ctx, slug)
}

// Append implements CommentStore.
func (s *S3Store) Append(ctx context.Context, slug string, c Comment) error {
	if err := checkSlug(slug); err != nil {
		return err
	}
	comments, err := s.get(ctx, slug)
	if err != nil {
		return err
	}
	comments = append(comments, c)

	data, err := json.Marshal(comments)
	if err != nil {
		return fmt.Errorf("store: encode comments: %w", err)
	}
	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(s.key(slug)),
		Body:        bytes.NewReader(data),
		ContentType: aws.String("application/json"),
	})
	if err != nil {
		return fmt.Errorf("store: s3 put %s: %w", slug, err)
	}
	return nil
}

// Close implements CommentStore. The client has nothing to release.
func (s *S3Store) Close() error {
	return nil
}

func (s *S3Store) get(ctx context.Context, slug string) ([]Comment, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(slug)),
	})
	if isNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("store: s3 get %s: %w", slug, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("store: s3 read %s: %w", slug, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, nil
	}
	var comments []Comment
	if err := json.Unmarshal(data, &comments); err != nil {
		return nil, fmt.Errorf("store: s3 decode %s: %w", slug, err)
	}
	return comments, nil
}

func isNotFound(err error) bool {
	if err == nil {
		return false
	}
	var nsk *types.NoSuchKey
	if errors.As(err, &nsk) {
		return true
	}
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		code := apiErr.ErrorCode()
		return code == "NoSuchKey" || code == "NotFound" || strings.EqualFold(code, "404")
	}
	return false
}
