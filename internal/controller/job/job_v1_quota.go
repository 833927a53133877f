package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) Quota(ctx context.Context, req *v1.QuotaReq) (res *v1.QuotaRes, err error) {
	quota, err := c.svc.Quota(ctx, owner(ctx))
	if err != nil {
		return nil, err
	}
	return &v1.QuotaRes{Used: quota.Used, Limit: quota.Limit, Remaining: quota.Remaining}, nil
}
