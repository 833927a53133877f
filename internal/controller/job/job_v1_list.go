package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) List(ctx context.Context, req *v1.ListReq) (res *v1.ListRes, err error) {
	list := c.svc.ListJobs(ctx, owner(ctx))
	return &v1.ListRes{Total: len(list), JobMetas: toMetas(list)}, nil
}
