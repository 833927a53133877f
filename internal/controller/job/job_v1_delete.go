package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

func (c *ControllerV1) Delete(ctx context.Context, req *v1.DeleteReq) (res *v1.DeleteRes, err error) {
	if err = c.svc.DeleteJob(ctx, owner(ctx), req.Id); err != nil {
		return nil, err
	}
	return &v1.DeleteRes{Success: true}, nil
}
