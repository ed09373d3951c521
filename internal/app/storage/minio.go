package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"

	"estimator/internal/app/config"
)

// MaxAssetSize is the upload limit for logos, signatures and stamps.
const MaxAssetSize = 1 << 20

type MinIOClient struct {
	client     *minio.Client
	bucketName string
	publicURL  string
}

// NewMinIOClient connects to the object store and creates the bucket if needed.
func NewMinIOClient(cfg config.MinioConfig) (*MinIOClient, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket: %w", err)
	}

	if !exists {
		err = client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
		logrus.Infof("Bucket %s created successfully", cfg.Bucket)
	}

	publicURL := cfg.PublicURL
	if publicURL == "" {
		scheme := "http"
		if cfg.UseSSL {
			scheme = "https"
		}
		publicURL = scheme + "://" + cfg.Endpoint
	}

	return &MinIOClient{
		client:     client,
		bucketName: cfg.Bucket,
		publicURL:  strings.TrimRight(publicURL, "/"),
	}, nil
}

// ObjectName lays assets out per user: <userID>/<kind>_<unixMillis>.<ext>.
func ObjectName(userID uint, kind, originalFilename string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(originalFilename))
	return fmt.Sprintf("%d/%s_%d%s", userID, kind, now.UnixMilli(), ext)
}

// ContentType maps an image extension to its MIME type; ok is false for
// anything that is not an accepted image.
func ContentType(filename string) (string, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return "image/jpeg", true
	case ".png":
		return "image/png", true
	case ".gif":
		return "image/gif", true
	case ".webp":
		return "image/webp", true
	}
	return "application/octet-stream", false
}

// UploadFile stores an asset and returns its public URL.
func (m *MinIOClient) UploadFile(ctx context.Context, userID uint, kind string, fileData []byte, originalFilename string) (string, error) {
	objectName := ObjectName(userID, kind, originalFilename, time.Now())
	contentType, _ := ContentType(originalFilename)

	reader := bytes.NewReader(fileData)
	_, err := m.client.PutObject(ctx, m.bucketName, objectName, reader, int64(len(fileData)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", err
	}

	logrus.Infof("File %s uploaded successfully", objectName)
	return m.objectURL(objectName), nil
}

// DeleteFile removes the object behind a URL returned by UploadFile.
func (m *MinIOClient) DeleteFile(ctx context.Context, fileURL string) error {
	objectName, ok := m.objectName(fileURL)
	if !ok {
		return fmt.Errorf("url %s is not in bucket %s", fileURL, m.bucketName)
	}

	err := m.client.RemoveObject(ctx, m.bucketName, objectName, minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file: %w", err)
	}

	logrus.Infof("File %s deleted successfully", objectName)
	return nil
}

// DownloadFile reads the object behind a URL returned by UploadFile.
func (m *MinIOClient) DownloadFile(ctx context.Context, fileURL string) ([]byte, error) {
	objectName, ok := m.objectName(fileURL)
	if !ok {
		return nil, fmt.Errorf("url %s is not in bucket %s", fileURL, m.bucketName)
	}

	object, err := m.client.GetObject(ctx, m.bucketName, objectName, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}
	defer object.Close()

	data, err := io.ReadAll(object)
	if err != nil {
		return nil, fmt.Errorf("failed to read object: %w", err)
	}

	return data, nil
}

func (m *MinIOClient) objectURL(objectName string) string {
	return m.publicURL + "/" + m.bucketName + "/" + objectName
}

func (m *MinIOClient) objectName(fileURL string) (string, bool) {
	prefix := m.publicURL + "/" + m.bucketName + "/"
	if !strings.HasPrefix(fileURL, prefix) {
		return "", false
	}
	return strings.TrimPrefix(fileURL, prefix), true
}
