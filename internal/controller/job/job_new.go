package job

import (
	"context"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/frame/g"

	"audio-notes-service/api/job"
	v1 "audio-notes-service/api/job/v1"
	"audio-notes-service/internal/consts"
	"audio-notes-service/internal/model/entity"
	"audio-notes-service/internal/service/jobs"
)

type ControllerV1 struct {
	svc *jobs.Controller
}

func NewV1(svc *jobs.Controller) job.IJobV1 {
	return &ControllerV1{svc: svc}
}

// owner 由 IdentityMiddleware 校验后写入，空身份在进入控制器前已被拒绝
func owner(ctx context.Context) string {
	return g.RequestFromCtx(ctx).GetCtxVar(consts.CtxKeyOwner).String()
}

func toMeta(j entity.Job) v1.JobMeta {
	return v1.JobMeta{
		Id:           j.Id,
		Owner:        j.Owner,
		FileName:     j.FileName,
		Status:       j.Status,
		StatusMsg:    consts.GetStatusMsg(j.Status),
		MeetingNotes: j.MeetingNotes,
		CreatedAt:    j.CreatedAt,
		UpdatedAt:    j.UpdatedAt,
	}
}

func toMetas(list []entity.Job) []v1.JobMeta {
	ret := make([]v1.JobMeta, 0, len(list))
	for _, j := range list {
		ret = append(ret, toMeta(j))
	}
	return ret
}

func toJob(j entity.Job) v1.Job {
	ret := v1.Job{JobMeta: toMeta(j), Transcription: j.Transcription}
	if j.Results != "" {
		ret.Results, _ = gjson.LoadContent([]byte(j.Results))
	}
	return ret
}
