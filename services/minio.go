package services

import (
	"context"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/naniedobe1/PoleBrothers/config"
)

// UploadExpiry is how long an issued presigned PUT URL stays valid.
const UploadExpiry = time.Hour

// ObjectSigner signs upload URLs against the storage backend and derives the
// matching long-lived public URLs. It is constructed once at process start
// and passed down; there is no package-level client.
type ObjectSigner struct {
	client        *minio.Client
	bucket        string
	publicBaseURL string
}

// NewObjectSigner builds the MinIO client. Signing is a local computation,
// so no network I/O happens here; call EnsureBucket for that.
func NewObjectSigner(cfg *config.Config) (*ObjectSigner, error) {
	client, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
		// Pinning the region keeps presigning a purely local computation;
		// otherwise the client issues a bucket-location lookup first.
		Region: "us-east-1",
	})
	if err != nil {
		return nil, err
	}

	return &ObjectSigner{
		client:        client,
		bucket:        cfg.Bucket,
		publicBaseURL: cfg.PublicBaseURL,
	}, nil
}

// EnsureBucket creates the bucket if it does not exist.
func (s *ObjectSigner) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return err
	}
	if !exists {
		if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{}); err != nil {
			return err
		}
		log.Printf("Created bucket %s\n", s.bucket)
	}
	return nil
}

// PresignPut returns a presigned PUT URL for objectName, valid for
// UploadExpiry. No object is created until the caller performs the PUT.
func (s *ObjectSigner) PresignPut(ctx context.Context, objectName string) (string, error) {
	presignedURL, err := s.client.PresignedPutObject(ctx, s.bucket, objectName, UploadExpiry)
	if err != nil {
		return "", err
	}
	return presignedURL.String(), nil
}

// PublicURL derives the long-lived public URL for objectName from the
// configured public base.
func (s *ObjectSigner) PublicURL(objectName string) string {
	return s.publicBaseURL + "/" + objectName
}

// Remove deletes an object from the bucket.
func (s *ObjectSigner) Remove(ctx context.Context, objectName string) error {
	return s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{})
}
