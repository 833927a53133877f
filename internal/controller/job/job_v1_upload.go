package job

import (
	"context"
	"mime/multipart"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/net/ghttp"

	v1 "audio-notes-service/api/job/v1"
	"audio-notes-service/internal/service/jobs"
)

// Upload 音频上传接口（支持单文件和多文件）
func (c *ControllerV1) Upload(ctx context.Context, req *v1.UploadReq) (res *v1.UploadRes, err error) {
	uploadFiles := g.RequestFromCtx(ctx).GetUploadFiles("files")
	if uploadFiles == nil {
		return nil, gerror.NewCode(gcode.CodeMissingParameter, "上传文件为空，请使用字段名'files'上传文件")
	}

	sources := make([]jobs.UploadSource, 0, len(uploadFiles))
	for _, file := range uploadFiles {
		sources = append(sources, &httpUploadSource{file: file})
	}
	results, err := c.svc.SubmitJobs(ctx, owner(ctx), sources)
	if err != nil {
		return nil, err
	}

	res = &v1.UploadRes{Total: len(uploadFiles)}
	for _, result := range results {
		if result.Error == nil {
			res.JobMetas = append(res.JobMetas, toMeta(*result.Job))
			continue
		}
		fileErr := v1.FileError{FileName: result.FileName, Error: result.Error.Error()}
		if result.Job != nil {
			fileErr.JobId = result.Job.Id
		}
		res.Errors = append(res.Errors, fileErr)
	}
	res.Success = len(res.JobMetas)
	res.Failed = len(res.Errors)
	return res, nil
}

type httpUploadSource struct {
	file *ghttp.UploadFile
}

func (h *httpUploadSource) FileName() string {
	return h.file.Filename
}

func (h *httpUploadSource) FileSize() int64 {
	return h.file.Size
}

func (h *httpUploadSource) Open() (multipart.File, error) {
	return h.file.Open()
}
