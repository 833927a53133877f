package storage

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/os/gfile"
)

const localMetaSuffix = ".meta.json"

// Local keeps objects as plain files under root. Metadata goes to a
// "<key>.meta.json" sidecar so a local transcription trigger can read it.
type Local struct {
	root string
}

func NewLocal(root string) (*Local, error) {
	if root == "" {
		return nil, gerror.New("storage.local.root 不能为空")
	}
	if err := gfile.Mkdir(root); err != nil {
		return nil, gerror.Wrap(err, "创建本地存储目录失败")
	}
	return &Local{root: gfile.Abs(root)}, nil
}

func (s *Local) path(key string) (string, error) {
	p := filepath.Join(s.root, filepath.FromSlash(key))
	if p != s.root && !strings.HasPrefix(p, s.root+string(filepath.Separator)) {
		return "", gerror.Newf("非法对象路径：%s", key)
	}
	return p, nil
}

func (s *Local) Put(ctx context.Context, key string, r io.Reader, meta map[string]string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return gerror.Wrap(err, "读取上传内容失败")
	}
	if err = gfile.PutBytes(p, data); err != nil {
		return gerror.Wrap(err, "写入本地文件失败")
	}
	if len(meta) > 0 {
		if err = gfile.PutContents(p+localMetaSuffix, gjson.MustEncodeString(meta)); err != nil {
			return gerror.Wrap(err, "写入元数据失败")
		}
	}
	return nil
}

func (s *Local) Get(ctx context.Context, key string) ([]byte, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if !gfile.IsFile(p) {
		return nil, gerror.Wrapf(ErrObjectNotFound, "key=%s", key)
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, gerror.Wrap(err, "读取本地文件失败")
	}
	return data, nil
}

// Meta returns the metadata stored alongside key, if any.
func (s *Local) Meta(key string) (map[string]string, error) {
	p, err := s.path(key)
	if err != nil {
		return nil, err
	}
	if !gfile.IsFile(p + localMetaSuffix) {
		return nil, nil
	}
	j, err := gjson.LoadContent(gfile.GetBytes(p + localMetaSuffix))
	if err != nil {
		return nil, gerror.Wrap(err, "解析元数据失败")
	}
	return j.Var().MapStrStr(), nil
}

func (s *Local) Delete(ctx context.Context, key string) error {
	p, err := s.path(key)
	if err != nil {
		return err
	}
	for _, f := range []string{p, p + localMetaSuffix} {
		if err := os.Remove(f); err != nil && !os.IsNotExist(err) {
			return gerror.Wrapf(err, "删除本地文件失败 key=%s", key)
		}
	}
	return nil
}

func (s *Local) URL(ctx context.Context, key string, expires time.Duration) (string, error) {
	p, err := s.path(key)
	if err != nil {
		return "", err
	}
	return "file://" + filepath.ToSlash(p), nil
}
