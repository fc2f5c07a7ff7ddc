// Package media implements the MediaStore port on an S3-compatible object
// store (AWS S3, MinIO, or any host exposing the S3 API).
package media

import (
	"context"
	"fmt"
	"io"
	"mime"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// Config captures the settings for the S3-compatible media store.
type Config struct {
	Region    string
	Bucket    string
	AccessKey string
	SecretKey string
	// Endpoint overrides the AWS endpoint for S3-compatible hosts
	// (e.g. MinIO). Empty means AWS.
	Endpoint string
	// PublicBaseURL is the prefix of the stable URLs handed to clients,
	// e.g. "https://media.rentease.example/listings". Object keys are
	// appended to it.
	PublicBaseURL string
}

// Store uploads listing images to a bucket and derives the deletable
// object key back out of a public URL.
//
// URL contract: the final path segment of every public URL, with any file
// extension stripped, is the object key. Store keeps its own keys
// extension-less so the mapping is exact, and the same derivation deletes
// legacy URLs from providers that do embed an extension.
type Store struct {
	client *s3.Client
	cfg    Config
}

// New builds an S3 client from static credentials and returns the Store.
func New(ctx context.Context, cfg Config) (*Store, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.AccessKey,
			cfg.SecretKey,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("media: load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})

	return &Store{client: client, cfg: cfg}, nil
}

// Upload stores the image content under a fresh key and returns its
// public URL. The content type is taken from the submitted filename's
// extension since the key itself carries none.
func (s *Store) Upload(ctx context.Context, filename string, content io.Reader) (string, error) {
	key := uuid.NewString()

	input := &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
		Body:   content,
	}
	if ct := mime.TypeByExtension(strings.ToLower(path.Ext(filename))); ct != "" {
		input.ContentType = aws.String(ct)
	}

	if _, err := s.client.PutObject(ctx, input); err != nil {
		return "", fmt.Errorf("media: upload %s: %w", filename, err)
	}

	return strings.TrimSuffix(s.cfg.PublicBaseURL, "/") + "/" + key, nil
}

// Delete removes the object addressed by a URL previously returned by
// Upload.
func (s *Store) Delete(ctx context.Context, url string) error {
	key := KeyFromURL(url)
	if key == "" {
		return fmt.Errorf("media: cannot derive object key from %q", url)
	}

	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("media: delete %s: %w", key, err)
	}
	return nil
}

// KeyFromURL derives the deletable object identifier from a public image
// URL: the last path segment with any file extension stripped. This is the
// contract the media host must satisfy (predictable identifier embedded in
// the final segment).
func KeyFromURL(url string) string {
	seg := url
	if i := strings.LastIndex(seg, "/"); i >= 0 {
		seg = seg[i+1:]
	}
	if seg == "" {
		return ""
	}
	return strings.TrimSuffix(seg, path.Ext(seg))
}
