package oss

import (
	"context"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/pkg/errors"
)

// Asset a stored media object
type Asset struct {
	URL string
	// Duration in seconds, zero for images
	Duration float64
}

// Gateway 媒体存储网关
type Gateway interface {
	// Upload stores the local file and always removes it afterwards
	Upload(ctx context.Context, localPath string) (*Asset, error)
	// Delete removes the object behind a URL returned by Upload
	Delete(ctx context.Context, url string) error
}

type MinioStorage struct {
	client  *minio.Client
	bucket  string
	baseURL string
	probe   func(path string) (float64, error)
}

var _ Gateway = (*MinioStorage)(nil)

func (s *MinioStorage) Upload(ctx context.Context, localPath string) (*Asset, error) {
	defer func() {
		if err := os.Remove(localPath); err != nil && !os.IsNotExist(err) {
			hlog.CtxWarnf(ctx, "remove temp file %s failed: %v", localPath, err)
		}
	}()

	if localPath == "" {
		return nil, errors.New("empty upload path")
	}
	contentType := contentTypeOf(localPath)
	objectName := objectKey(contentType, filepath.Ext(localPath), time.Now())

	asset := &Asset{}
	if strings.HasPrefix(contentType, "video/") {
		d, err := s.probe(localPath)
		if err != nil {
			hlog.CtxWarnf(ctx, "probe duration of %s failed: %v", localPath, err)
		}
		asset.Duration = d
	}

	// 上传文件到 MinIO
	if _, err := s.client.FPutObject(ctx, s.bucket, objectName, localPath, minio.PutObjectOptions{ContentType: contentType}); err != nil {
		return nil, errors.Wrapf(err, "upload %s failed", objectName)
	}
	asset.URL = s.objectURL(objectName)
	return asset, nil
}

func (s *MinioStorage) Delete(ctx context.Context, url string) error {
	if url == "" {
		return nil
	}
	objectName, err := s.objectName(url)
	if err != nil {
		return err
	}
	if err := s.client.RemoveObject(ctx, s.bucket, objectName, minio.RemoveObjectOptions{}); err != nil {
		return errors.Wrapf(err, "remove %s failed", objectName)
	}
	return nil
}

func (s *MinioStorage) objectURL(objectName string) string {
	return fmt.Sprintf("%s/%s/%s", s.baseURL, s.bucket, objectName)
}

// objectName 由公开地址反推对象名，只接受本存储桶的地址
func (s *MinioStorage) objectName(url string) (string, error) {
	prefix := fmt.Sprintf("%s/%s/", s.baseURL, s.bucket)
	if !strings.HasPrefix(url, prefix) || len(url) == len(prefix) {
		return "", errors.Errorf("url %q does not belong to bucket %s", url, s.bucket)
	}
	return strings.TrimPrefix(url, prefix), nil
}

// Go's builtin mime table has no video types, /etc/mime.types is not always present
var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/mp4",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

func contentTypeOf(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if ct, ok := videoTypes[ext]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(ext); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

// objectKey <kind>/<yyyy>/<mm>/<uuid><ext>
func objectKey(contentType, ext string, now time.Time) string {
	kind := "raw"
	switch {
	case strings.HasPrefix(contentType, "video/"):
		kind = "video"
	case strings.HasPrefix(contentType, "image/"):
		kind = "image"
	}
	return fmt.Sprintf("%s/%04d/%02d/%s%s", kind, now.Year(), int(now.Month()), uuid.NewString(), strings.ToLower(ext))
}
