package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) Get(ctx context.Context, req *v1.GetReq) (res *v1.GetRes, err error) {
	job, err := c.svc.GetJob(ctx, owner(ctx), req.Id)
	if err != nil {
		return nil, err
	}
	detail := v1.GetRes(toJob(job))
	return &detail, nil
}
