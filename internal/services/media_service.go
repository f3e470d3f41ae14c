package services

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// BrandingBucket holds partner logos and banners
const BrandingBucket = "slotify-branding"

// MediaService stores partner branding assets in object storage. Objects are
// keyed under the owning partner so assets never collide across partners.
type MediaService interface {
	UploadBrandingAsset(ctx context.Context, partnerID uuid.UUID, kind, filename, contentType string, reader io.Reader, size int64) (string, error)
	PresignedURL(objectName string, expiry time.Duration) (string, error)
	DeleteAsset(ctx context.Context, objectName string) error
	EnsureBucket(ctx context.Context) error
}

type mediaService struct {
	client *minio.Client
}

func NewMediaService(endpoint, accessKey, secretKey string, useSSL bool) (MediaService, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &mediaService{client: client}, nil
}

// UploadBrandingAsset stores the asset and returns its object name. Kind is
// "logo" or "banner"; a fresh UUID in the key makes every upload a new
// object so stale presigned URLs never serve replaced content.
func (m *mediaService) UploadBrandingAsset(ctx context.Context, partnerID uuid.UUID, kind, filename, contentType string, reader io.Reader, size int64) (string, error) {
	objectName := fmt.Sprintf("%s/%s/%s-%s", partnerID.String(), kind, uuid.NewString(), filename)
	_, err := m.client.PutObject(ctx, BrandingBucket, objectName, reader, size, minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}
	return objectName, nil
}

func (m *mediaService) PresignedURL(objectName string, expiry time.Duration) (string, error) {
	url, err := m.client.PresignedGetObject(context.Background(), BrandingBucket, objectName, expiry, nil)
	if err != nil {
		return "", err
	}
	return url.String(), nil
}

func (m *mediaService) DeleteAsset(ctx context.Context, objectName string) error {
	return m.client.RemoveObject(ctx, BrandingBucket, objectName, minio.RemoveObjectOptions{})
}

func (m *mediaService) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, BrandingBucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, BrandingBucket, minio.MakeBucketOptions{})
	}
	return nil
}
