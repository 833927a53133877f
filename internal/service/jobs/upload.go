package jobs

import (
	"mime/multipart"
	"path/filepath"

	"github.com/gabriel-vasile/mimetype"
	"github.com/gogf/gf/v2/errors/gerror"

	"audio-notes-service/internal/consts"
	"audio-notes-service/internal/model/entity"
)

// UploadSource 抽象上传文件来源，HTTP 上传和测试都实现它。
type UploadSource interface {
	FileName() string
	FileSize() int64
	Open() (multipart.File, error)
}

// SubmitResult is the outcome for one submitted file. Job is set once a job
// record exists, even if the upload of its audio failed afterwards.
type SubmitResult struct {
	FileName string
	MimeType string
	Job      *entity.Job
	Error    error
}

// inspect checks size and content type of one file.
func (c *Controller) inspect(file UploadSource) (string, error) {
	if file.FileSize() >= c.opts.MaxUploadSize {
		return "", gerror.Wrapf(ErrFileTooLarge, "%d / %d 字节", file.FileSize(), c.opts.MaxUploadSize)
	}

	reader, err := file.Open()
	if err != nil {
		return "", gerror.Wrap(err, "打开文件失败")
	}
	defer reader.Close()

	mType, err := mimetype.DetectReader(reader)
	if err != nil {
		return "", gerror.Wrap(err, "检测文件类型失败")
	}
	if !consts.IsAudio(mType.String(), filepath.Ext(file.FileName())) {
		return mType.String(), gerror.Wrapf(ErrNotAudio, "%s (%s)", file.FileName(), mType.String())
	}
	return mType.String(), nil
}
