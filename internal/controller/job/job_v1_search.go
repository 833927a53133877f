package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) Search(ctx context.Context, req *v1.SearchReq) (res *v1.SearchRes, err error) {
	list, err := c.svc.SearchJobs(ctx, owner(ctx), req.Keyword, req.Limit)
	if err != nil {
		return nil, err
	}
	metas := v1.SearchRes(toMetas(list))
	return &metas, nil
}
