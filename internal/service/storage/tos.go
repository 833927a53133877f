package storage

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos"
	"github.com/volcengine/ve-tos-golang-sdk/v2/tos/enum"
)

type TOSConfig struct {
	Endpoint string
	Region   string
	Bucket   string
	AK       string
	SK       string
}

// TOS stores objects in a Volcengine TOS bucket.
type TOS struct {
	client *tos.ClientV2
	bucket string
}

func NewTOS(ctx context.Context, cfg TOSConfig) (*TOS, error) {
	if cfg.Endpoint == "" || cfg.Bucket == "" {
		return nil, gerror.New("TOS 配置缺失，请检查 storage.tos.endpoint / storage.tos.bucket")
	}
	g.Log().Info(ctx, "Volcengine TOS GO SDK Version:", tos.Version)

	client, err := tos.NewClientV2(
		cfg.Endpoint,
		tos.WithCredentials(tos.NewStaticCredentials(cfg.AK, cfg.SK)),
		tos.WithRegion(cfg.Region),
	)
	if err != nil {
		return nil, gerror.Wrap(err, "初始化 TOS 客户端失败")
	}
	g.Log().Info(ctx, "Volcengine TOS Client initialized")
	return &TOS{client: client, bucket: cfg.Bucket}, nil
}

func (s *TOS) Put(ctx context.Context, key string, r io.Reader, meta map[string]string) error {
	output, err := s.client.PutObjectV2(ctx, &tos.PutObjectV2Input{
		PutObjectBasicInput: tos.PutObjectBasicInput{
			Bucket: s.bucket,
			Key:    key,
			Meta:   meta,
		},
		Content: r,
	})
	if err != nil {
		if serverErr, ok := err.(*tos.TosServerError); ok {
			g.Log().Errorf(ctx, "TOS 上传失败 key=%s request_id=%s status=%d code=%s message=%s",
				key, serverErr.RequestID, serverErr.StatusCode, serverErr.Code, serverErr.Message)
			return gerror.Wrap(serverErr, "TOS 上传失败")
		}
		return gerror.Wrap(err, "TOS 上传失败")
	}
	g.Log().Debugf(ctx, "TOS 上传成功 key=%s request_id=%s", key, output.RequestID)
	return nil
}

func (s *TOS) Get(ctx context.Context, key string) ([]byte, error) {
	output, err := s.client.GetObjectV2(ctx, &tos.GetObjectV2Input{
		Bucket: s.bucket,
		Key:    key,
	})
	if err != nil {
		if serverErr, ok := err.(*tos.TosServerError); ok && serverErr.StatusCode == http.StatusNotFound {
			return nil, gerror.Wrapf(ErrObjectNotFound, "key=%s", key)
		}
		return nil, gerror.Wrap(err, "TOS 下载失败")
	}
	defer output.Content.Close()

	data, err := io.ReadAll(output.Content)
	if err != nil {
		return nil, gerror.Wrap(err, "读取 TOS 对象失败")
	}
	return data, nil
}

func (s *TOS) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObjectV2(ctx, &tos.DeleteObjectV2Input{
		Bucket: s.bucket,
		Key:    key,
	}); err != nil {
		return gerror.Wrapf(err, "删除 TOS 对象失败 key=%s", key)
	}
	return nil
}

// URL 获取预签名下载地址
func (s *TOS) URL(ctx context.Context, key string, expires time.Duration) (string, error) {
	url, err := s.client.PreSignedURL(&tos.PreSignedURLInput{
		HTTPMethod: enum.HttpMethodGet,
		Bucket:     s.bucket,
		Key:        key,
		Expires:    int64(expires / time.Second),
	})
	if err != nil {
		return "", gerror.Wrap(err, "获取文件访问地址失败")
	}
	return url.SignedUrl, nil
}
