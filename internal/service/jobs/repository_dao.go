package jobs

import (
	"context"
	"fmt"
	"strings"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gtime"

	"audio-notes-service/internal/dao"
	"audio-notes-service/internal/model/do"
	"audio-notes-service/internal/model/entity"
)

// daoRepository stores jobs in the "job" table through the GoFrame ORM.
type daoRepository struct{}

func NewDaoRepository() JobRepository {
	return &daoRepository{}
}

func (r *daoRepository) Create(ctx context.Context, job entity.Job) error {
	if _, err := dao.Job.Ctx(ctx).Data(do.Job{
		Id:        job.Id,
		Owner:     job.Owner,
		FileName:  job.FileName,
		Status:    job.Status,
		Deleted:   0,
		CreatedAt: job.CreatedAt,
		UpdatedAt: job.UpdatedAt,
	}).Insert(); err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "数据库新建记录失败")
	}
	return nil
}

func (r *daoRepository) Update(ctx context.Context, job entity.Job) error {
	cols := dao.Job.Columns()
	res, err := dao.Job.Ctx(ctx).Data(g.Map{
		cols.Status:        job.Status,
		cols.Transcription: job.Transcription,
		cols.Results:       job.Results,
		cols.MeetingNotes:  job.MeetingNotes,
		cols.UpdatedAt:     gtime.Now(),
	}).Where(cols.Id, job.Id).Update()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "更新任务记录失败")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return gerror.WrapCodef(gcode.CodeNotFound, ErrJobNotFound, "id=%s", job.Id)
	}
	return nil
}

func (r *daoRepository) MarkDeleted(ctx context.Context, id string) error {
	cols := dao.Job.Columns()
	res, err := dao.Job.Ctx(ctx).Data(g.Map{
		cols.Deleted:   1,
		cols.UpdatedAt: gtime.Now(),
	}).Where(cols.Id, id).Update()
	if err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "删除任务失败")
	}
	if n, err := res.RowsAffected(); err != nil {
		return gerror.WrapCode(gcode.CodeDbOperationError, err, "检查任务删除情况失败")
	} else if n == 0 {
		return gerror.WrapCodef(gcode.CodeNotFound, ErrJobNotFound, "id=%s", id)
	}
	return nil
}

func (r *daoRepository) Get(ctx context.Context, id string) (*entity.Job, error) {
	record, err := dao.Job.Ctx(ctx).Where(dao.Job.Columns().Id, id).One()
	if err != nil {
		return nil, gerror.WrapCode(gcode.CodeDbOperationError, err, "查询任务失败")
	}
	if record.IsEmpty() {
		return nil, gerror.WrapCodef(gcode.CodeNotFound, ErrJobNotFound, "id=%s", id)
	}
	var job entity.Job
	if err = record.Struct(&job); err != nil {
		return nil, gerror.Wrap(err, "解析任务数据失败")
	}
	return &job, nil
}

func (r *daoRepository) List(ctx context.Context, filter ListFilter) ([]entity.Job, error) {
	cols := dao.Job.Columns()
	model := dao.Job.Ctx(ctx)
	if filter.Owner != "" {
		model = model.Where(cols.Owner, filter.Owner)
	}
	if !filter.IncludeDeleted {
		model = model.Where(cols.Deleted, 0)
	}
	if filter.Since != nil {
		model = model.WhereGTE(cols.CreatedAt, gtime.New(*filter.Since))
	}
	if len(filter.Statuses) > 0 {
		model = model.WhereIn(cols.Status, filter.Statuses)
	}

	jobs := make([]entity.Job, 0)
	if err := model.OrderDesc(cols.CreatedAt).Scan(&jobs); err != nil {
		return nil, gerror.WrapCode(gcode.CodeDbOperationError, err, "查询数据库失败")
	}
	return jobs, nil
}

func (r *daoRepository) Search(ctx context.Context, owner, keyword string, limit int) ([]entity.Job, error) {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return nil, gerror.NewCode(gcode.CodeInvalidParameter, "关键词不能为空")
	}
	cols := dao.Job.Columns()
	condition := fmt.Sprintf(
		"(LOWER(%s) LIKE ? OR LOWER(%s) LIKE ? OR LOWER(%s) LIKE ? OR LOWER(%s) LIKE ?)",
		cols.Id, cols.FileName, cols.Status, cols.Transcription,
	)
	like := "%" + keyword + "%"

	jobs := make([]entity.Job, 0)
	if err := dao.Job.Ctx(ctx).
		Where(cols.Owner, owner).
		Where(cols.Deleted, 0).
		Where(condition, like, like, like, like).
		OrderDesc(cols.CreatedAt).
		OrderDesc(cols.Id).
		Limit(limit).
		Scan(&jobs); err != nil {
		return nil, gerror.WrapCode(gcode.CodeDbOperationError, err, "查询数据库失败")
	}
	return jobs, nil
}
