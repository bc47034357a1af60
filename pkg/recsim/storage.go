package recsim

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// Storage is an interface for reading/writing input and output files
// Supports both local filesystem and S3
type Storage interface {
	// Open opens a file for reading
	Open(path string) (io.ReadCloser, error)

	// Create creates or truncates a file for writing
	Create(path string) (io.WriteCloser, error)

	// Exists checks if a file exists
	Exists(path string) (bool, error)

	// IsS3 returns true if this is S3 storage
	IsS3() bool
}

// LocalStorage implements Storage for local filesystem
type LocalStorage struct{}

// NewLocalStorage creates a new local storage backend
func NewLocalStorage() *LocalStorage {
	return &LocalStorage{}
}

func (s *LocalStorage) Open(path string) (io.ReadCloser, error) {
	return os.Open(path)
}

func (s *LocalStorage) Create(path string) (io.WriteCloser, error) {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

func (s *LocalStorage) Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, err
}

func (s *LocalStorage) IsS3() bool {
	return false
}

// S3URI represents a parsed S3 URI
type S3URI struct {
	Bucket string
	Key    string
}

// ParseS3URI parses an S3 URI like s3://bucket/path/to/object
func ParseS3URI(uri string) (*S3URI, error) {
	if !strings.HasPrefix(uri, "s3://") {
		return nil, fmt.Errorf("invalid S3 URI: must start with s3://")
	}

	path := strings.TrimPrefix(uri, "s3://")
	parts := strings.SplitN(path, "/", 2)
	if len(parts) == 0 || parts[0] == "" {
		return nil, fmt.Errorf("invalid S3 URI: missing bucket name")
	}

	u := &S3URI{Bucket: parts[0]}
	if len(parts) == 2 {
		u.Key = parts[1]
	}
	if u.Key == "" {
		return nil, fmt.Errorf("invalid S3 URI: missing object key")
	}
	return u, nil
}

// IsS3URI checks if a path is an S3 URI
func IsS3URI(path string) bool {
	return strings.HasPrefix(path, "s3://")
}

// S3Storage implements Storage for AWS S3
type S3Storage struct {
	client     *s3.Client
	uploader   *manager.Uploader
	downloader *manager.Downloader
	ctx        context.Context
}

// NewS3Storage creates a new S3 storage backend
func NewS3Storage(ctx context.Context, region string) (*S3Storage, error) {
	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	client := s3.NewFromConfig(cfg)

	return &S3Storage{
		client: client,
		uploader: manager.NewUploader(client, func(u *manager.Uploader) {
			u.PartSize = 10 * 1024 * 1024
			u.Concurrency = 3
		}),
		downloader: manager.NewDownloader(client),
		ctx:        ctx,
	}, nil
}

func (s *S3Storage) Open(path string) (io.ReadCloser, error) {
	uri, err := ParseS3URI(path)
	if err != nil {
		return nil, err
	}

	// Download to memory
	buf := manager.NewWriteAtBuffer([]byte{})
	_, err = s.downloader.Download(s.ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(uri.Bucket),
		Key:    aws.String(uri.Key),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", path, err)
	}

	return io.NopCloser(bytes.NewReader(buf.Bytes())), nil
}

func (s *S3Storage) Create(path string) (io.WriteCloser, error) {
	uri, err := ParseS3URI(path)
	if err != nil {
		return nil, err
	}
	return &s3Object{storage: s, uri: uri}, nil
}

func (s *S3Storage) Exists(path string) (bool, error) {
	uri, err := ParseS3URI(path)
	if err != nil {
		return false, err
	}

	_, err = s.client.HeadObject(s.ctx, &s3.HeadObjectInput{
		Bucket: aws.String(uri.Bucket),
		Key:    aws.String(uri.Key),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NotFound") || strings.Contains(err.Error(), "404") {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

func (s *S3Storage) IsS3() bool {
	return true
}

// s3Object buffers writes and uploads them on Close
type s3Object struct {
	storage *S3Storage
	uri     *S3URI
	buf     bytes.Buffer
	closed  bool
}

func (o *s3Object) Write(p []byte) (int, error) {
	if o.closed {
		return 0, fmt.Errorf("write to closed object s3://%s/%s", o.uri.Bucket, o.uri.Key)
	}
	return o.buf.Write(p)
}

func (o *s3Object) Close() error {
	if o.closed {
		return nil
	}
	o.closed = true

	_, err := o.storage.uploader.Upload(o.storage.ctx, &s3.PutObjectInput{
		Bucket: aws.String(o.uri.Bucket),
		Key:    aws.String(o.uri.Key),
		Body:   bytes.NewReader(o.buf.Bytes()),
	})
	if err != nil {
		return fmt.Errorf("failed to upload to s3://%s/%s: %w", o.uri.Bucket, o.uri.Key, err)
	}
	return nil
}

// NewStorage creates the appropriate storage backend based on path
func NewStorage(ctx context.Context, path string) (Storage, error) {
	if IsS3URI(path) {
		return NewS3Storage(ctx, "")
	}
	return NewLocalStorage(), nil
}
