package job

import (
	"context"

	v1 "audio-notes-service/api/job/v1"
)

// GenerateNotes 同步生成会议纪要，失败时任务置为 Failed 并返回错误信息。
func (c *ControllerV1) GenerateNotes(ctx context.Context, req *v1.GenerateNotesReq) (res *v1.GenerateNotesRes, err error) {
	job, err := c.svc.GenerateMeetingNotes(ctx, owner(ctx), req.Id, req.SpeakerDetection)
	if err != nil {
		return nil, err
	}
	detail := v1.GenerateNotesRes(toJob(job))
	return &detail, nil
}
