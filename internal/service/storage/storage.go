// Package storage hides the object store behind ObjectRepository so the job
// controller can run against TOS, S3 or a local directory.
package storage

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
)

// ErrObjectNotFound is returned by Get when the key does not exist (yet).
var ErrObjectNotFound = errors.New("object not found")

// ObjectRepository is the subset of object storage the job controller needs.
type ObjectRepository interface {
	// Put uploads r to key, attaching user metadata to the object.
	Put(ctx context.Context, key string, r io.Reader, meta map[string]string) error
	// Get reads the whole object. Missing keys yield ErrObjectNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// URL returns a time-limited download link for key.
	URL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// IsNotFound reports whether err means the object is absent.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrObjectNotFound)
}

// New builds the repository selected by storage.provider.
func New(ctx context.Context) (ObjectRepository, error) {
	provider := g.Cfg().MustGet(ctx, "storage.provider", "local").String()
	switch provider {
	case "tos", "volcengine":
		return NewTOS(ctx, TOSConfig{
			Endpoint: g.Cfg().MustGet(ctx, "storage.tos.endpoint").String(),
			Region:   g.Cfg().MustGet(ctx, "storage.tos.region").String(),
			Bucket:   g.Cfg().MustGet(ctx, "storage.tos.bucket").String(),
			AK:       g.Cfg().MustGet(ctx, "storage.tos.ak").String(),
			SK:       g.Cfg().MustGet(ctx, "storage.tos.sk").String(),
		})
	case "s3", "aws":
		return NewS3(ctx, S3Config{
			Region:          g.Cfg().MustGet(ctx, "storage.s3.region", "us-east-1").String(),
			Bucket:          g.Cfg().MustGet(ctx, "storage.s3.bucket").String(),
			Endpoint:        g.Cfg().MustGet(ctx, "storage.s3.endpoint").String(),
			AccessKeyID:     g.Cfg().MustGet(ctx, "storage.s3.accessKeyId").String(),
			SecretAccessKey: g.Cfg().MustGet(ctx, "storage.s3.secretAccessKey").String(),
		})
	case "local", "filesystem":
		return NewLocal(g.Cfg().MustGet(ctx, "storage.local.root", "./data/objects").String())
	default:
		return nil, gerror.Newf("不支持的对象存储类型：%s", provider)
	}
}
