package oss

import (
	"context"
	"strings"

	"VideoTube.com/config"
	"VideoTube.com/pkg/utils"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/pkg/errors"
)

const location = "us-east-1" // MinIO默认区域

// NewMinioStorage 创建 MinIO 客户端，不会建立连接
func NewMinioStorage(c config.Minio) (*MinioStorage, error) {
	hlog.Infof("Initializing MinIO client with endpoint: %s, accessKey: %s", c.Endpoint, c.AccessKey)

	client, err := minio.New(c.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(c.AccessKey, c.SecretKey, ""),
		Secure: c.UseSSL,
	})
	if err != nil {
		return nil, errors.Wrap(err, "create minio client failed")
	}

	return &MinioStorage{
		client:  client,
		bucket:  c.Bucket,
		baseURL: strings.TrimRight(c.PublicBaseURL, "/"),
		probe:   utils.ProbeDuration,
	}, nil
}

// EnsureBucket 检查存储桶是否存在，不存在则创建
func (s *MinioStorage) EnsureBucket(ctx context.Context) error {
	exists, err := s.client.BucketExists(ctx, s.bucket)
	if err != nil {
		return errors.Wrap(err, "check bucket error")
	}
	if exists {
		return nil
	}
	if err := s.client.MakeBucket(ctx, s.bucket, minio.MakeBucketOptions{Region: location}); err != nil {
		return errors.Wrap(err, "create bucket error")
	}
	hlog.Infof("Created MinIO bucket %s", s.bucket)
	return nil
}
