package imagestore

import (
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/shashiranjanraj/akxton/config"
)

// rootPrefix namespaces every object key so the bucket can be shared.
const rootPrefix = "akxton"

// S3Store hosts images on an S3-compatible object store.
// Works with AWS S3, MinIO, DigitalOcean Spaces, Cloudflare R2.
type S3Store struct {
	client  *s3.Client
	bucket  string
	baseURL string
}

// NewS3Store builds a store from the S3_* config values.
func NewS3Store(ctx context.Context) (*S3Store, error) {
	bucket := config.S3Bucket()
	region := config.S3Region()
	key := config.S3Key()
	secret := config.S3Secret()
	endpoint := config.S3Endpoint()
	baseURL := strings.TrimRight(config.S3URL(), "/")

	if bucket == "" {
		return nil, fmt.Errorf("imagestore: S3_BUCKET is not configured")
	}

	opts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(region),
	}

	// Static credentials (required for MinIO / R2 / Spaces)
	if key != "" && secret != "" {
		opts = append(opts, awscfg.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(key, secret, ""),
		))
	}

	cfg, err := awscfg.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("imagestore: load config: %w", err)
	}

	clientOpts := []func(*s3.Options){}
	if endpoint != "" {
		clientOpts = append(clientOpts, func(o *s3.Options) {
			o.BaseEndpoint = aws.String(endpoint)
			o.UsePathStyle = true // required for MinIO
		})
	}
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", bucket, region)
	}

	return &S3Store{
		client:  s3.NewFromConfig(cfg, clientOpts...),
		bucket:  bucket,
		baseURL: baseURL,
	}, nil
}

// Upload stores the image under <root>/<folder>/<random id> and returns its
// public URL. Keys carry no extension; the content type travels as object
// metadata, which keeps URL → public ID derivation lossless.
func (s *S3Store) Upload(ctx context.Context, data []byte, contentType, folder string) (string, error) {
	id := make([]byte, 12)
	_, _ = rand.Read(id)
	key := path.Join(rootPrefix, folder, hex.EncodeToString(id))

	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("imagestore: put %s: %w", key, err)
	}

	return s.baseURL + "/" + key, nil
}

// Delete removes the object addressed by a public ID.
func (s *S3Store) Delete(ctx context.Context, publicID string) error {
	key := path.Join(rootPrefix, publicID)
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("imagestore: delete %s: %w", key, err)
	}
	return nil
}

// Recognizes reports whether the URL was issued by this store.
func (s *S3Store) Recognizes(url string) bool {
	return strings.HasPrefix(url, s.baseURL+"/")
}
