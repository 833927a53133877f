package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) Query(ctx context.Context, req *v1.QueryReq) (res *v1.QueryRes, err error) {
	list, err := c.svc.QueryJobs(ctx, owner(ctx), req.Ids)
	if err != nil {
		return nil, err
	}
	return &v1.QueryRes{JobMetas: toMetas(list)}, nil
}
