package job

import (
	"context"

	"github.com/gogf/gf/v2/errors/gerror"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) GetFileURL(ctx context.Context, req *v1.GetFileURLReq) (res *v1.GetFileURLRes, err error) {
	fileURL, err := c.svc.AudioURL(ctx, owner(ctx), req.Id)
	if err != nil {
		return nil, gerror.Wrap(err, "获取文件URL失败")
	}
	return &v1.GetFileURLRes{FileURL: fileURL}, nil
}
