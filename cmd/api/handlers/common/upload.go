package common

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// SaveUpload stores the multipart file under field into dir and returns its path.
// A missing file yields "" and no error.
func SaveUpload(ctx context.Context, c *app.RequestContext, field, dir string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil || fh == nil {
		return "", nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", errors.Wrapf(err, "create temp dir %s failed", dir)
	}
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	dst := filepath.Join(dir, uuid.NewString()+ext)
	if err := c.SaveUploadedFile(fh, dst); err != nil {
		return "", errors.Wrapf(err, "save upload %s failed", field)
	}
	hlog.CtxDebugf(ctx, "saved upload %s (%s, %d bytes) to %s", field, fh.Filename, fh.Size, dst)
	return dst, nil
}

// SaveUploads saves each field, removing what was already saved when one fails
func SaveUploads(ctx context.Context, c *app.RequestContext, dir string, fields ...string) (map[string]string, error) {
	paths := make(map[string]string, len(fields))
	for _, field := range fields {
		path, err := SaveUpload(ctx, c, field, dir)
		if err != nil {
			for _, p := range paths {
				os.Remove(p)
			}
			return nil, err
		}
		if path != "" {
			paths[field] = path
		}
	}
	return paths, nil
}
