package storage

import (
	"context"
	"io"

	"ecotech_server/internal/config"
	"ecotech_server/pkg/errorx"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// MinioStore keeps resumes as objects in one bucket of an S3-compatible service.
type MinioStore struct {
	client *minio.Client
	bucket string
	region string
}

// NewMinioStore connects to the configured endpoint and makes sure the bucket exists.
func NewMinioStore(ctx context.Context, cfg *config.StorageConfig) (*MinioStore, error) {
	client, err := minio.New(cfg.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.S3AccessKey, cfg.S3SecretKey, ""),
		Secure: cfg.S3UseSSL,
		Region: cfg.S3Region,
	})
	if err != nil {
		return nil, errorx.Wrap(err, errorx.CodeStorageError, "init minio client")
	}
	s := &MinioStore{client: client, bucket: cfg.S3Bucket, region: cfg.S3Region}
	if err := s.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return s, nil
}

// EnsureBucket creates the bucket on first use.
func (s *MinioStore) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errorx.Wrapf(err, errorx.CodeStorageError, "check bucket %s", s.bucket)
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: s.region}); err != nil {
			return errorx.Wrapf(err, errorx.CodeStorageError, "make bucket %s", s.bucket)
		}
	}
	return nil
}

// Save picks a name that is not taken yet, then uploads.
func (s *MinioStore) Save(ctx context.Context, base string, r io.Reader, size int64) (string, error) {
	name := base
	for attempt := 1; attempt <= maxNameAttempts; attempt++ {
		exists, err := s.exists(ctx, name)
		if err != nil {
			return "", err
		}
		if !exists {
			break
		}
		name = withSuffix(base, attempt)
	}
	opts := minio.PutObjectOptions{ContentType: "application/pdf"}
	if _, err := s.client.PutObject(ctx, s.bucket, name, r, size, opts); err != nil {
		return "", errorx.Wrapf(err, errorx.CodeStorageError, "upload resume %s", name)
	}
	return name, nil
}

func (s *MinioStore) exists(ctx context.Context, name string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, name, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, errorx.Wrapf(err, errorx.CodeStorageError, "stat resume %s", name)
}

func (s *MinioStore) Open(ctx context.Context, name string) (io.ReadCloser, int64, error) {
	if !validName(name) {
		return nil, 0, errorx.Newf(errorx.CodeFileMissing, "invalid resume name %q", name)
	}
	obj, err := s.client.GetObject(ctx, s.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, 0, errorx.Wrapf(err, errorx.CodeStorageError, "get resume %s", name)
	}
	// GetObject is lazy; Stat performs the request.
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		if isNoSuchKey(err) {
			return nil, 0, errorx.Wrapf(err, errorx.CodeFileMissing, "resume %s not found", name)
		}
		return nil, 0, errorx.Wrapf(err, errorx.CodeStorageError, "stat resume %s", name)
	}
	return obj, info.Size, nil
}

func (s *MinioStore) Delete(ctx context.Context, name string) error {
	if !validName(name) {
		return nil
	}
	if err := s.client.RemoveObject(ctx, s.bucket, name, minio.RemoveObjectOptions{}); err != nil {
		return errorx.Wrapf(err, errorx.CodeStorageError, "remove resume %s", name)
	}
	return nil
}

func isNoSuchKey(err error) bool {
	return minio.ToErrorResponse(err).Code == "NoSuchKey"
}
