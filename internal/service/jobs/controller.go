// Package jobs drives an audio job from upload through transcription polling
// to meeting notes. The Controller owns the job board and every status
// change; the repositories and the notes generator are injected.
package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
	"github.com/gogf/gf/v2/os/gctx"
	"github.com/gogf/gf/v2/os/gtime"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"audio-notes-service/internal/consts"
	"audio-notes-service/internal/model/entity"
	"audio-notes-service/internal/service/notes"
	"audio-notes-service/internal/service/storage"
)

type SleepFunc func(ctx context.Context, d time.Duration) error

type Option func(*Controller)

// WithClock replaces time.Now, mainly for quota tests.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithSleep replaces the wait between poll attempts.
func WithSleep(sleep SleepFunc) Option {
	return func(c *Controller) { c.sleep = sleep }
}

func WithIDGenerator(newID func() string) Option {
	return func(c *Controller) { c.newID = newID }
}

type Controller struct {
	jobs    JobRepository
	objects storage.ObjectRepository
	notes   notes.Generator
	board   *Board
	opts    Options

	now   func() time.Time
	sleep SleepFunc
	newID func() string

	// 轮询协程挂在 rootCtx 上，与请求生命周期无关
	rootCtx context.Context
	quotaMu sync.Mutex
	loopsMu sync.Mutex
	loops   map[string]*pollLoop
	wg      sync.WaitGroup
}

type pollLoop struct {
	cancel context.CancelFunc
}

// New creates a controller. Poll loops started by it stop when rootCtx is done.
func New(rootCtx context.Context, jobs JobRepository, objects storage.ObjectRepository, gen notes.Generator, opts Options, options ...Option) *Controller {
	c := &Controller{
		jobs:    jobs,
		objects: objects,
		notes:   gen,
		board:   NewBoard(),
		opts:    opts.withDefaults(),
		now:     time.Now,
		sleep:   sleepContext,
		newID:   func() string { return uuid.New().String() },
		rootCtx: rootCtx,
		loops:   make(map[string]*pollLoop),
	}
	for _, o := range options {
		o(c)
	}
	return c
}

func (c *Controller) Board() *Board {
	return c.board
}

func (c *Controller) Options() Options {
	return c.opts
}

// Wait blocks until every poll loop has returned.
func (c *Controller) Wait() {
	c.wg.Wait()
}

// SubmitJobs validates files, enforces the daily quota for the whole batch,
// creates one job per audio file and uploads them. Each successful upload
// starts a poll loop. The returned slice has one entry per input file.
func (c *Controller) SubmitJobs(ctx context.Context, owner string, files []UploadSource) ([]SubmitResult, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	results := make([]SubmitResult, len(files))
	accepted := make([]int, 0, len(files))
	for i, file := range files {
		mimeType, err := c.inspect(file)
		results[i] = SubmitResult{FileName: file.FileName(), MimeType: mimeType, Error: err}
		if err == nil {
			accepted = append(accepted, i)
		}
	}
	if len(accepted) == 0 {
		return results, gerror.WrapCode(gcode.CodeInvalidParameter, ErrNotAudio, "请选择音频文件")
	}

	c.quotaMu.Lock()
	used, err := c.usedToday(ctx, owner)
	if err != nil {
		c.quotaMu.Unlock()
		return results, err
	}
	if used+len(accepted) > c.opts.DailyQuota {
		c.quotaMu.Unlock()
		return results, gerror.WrapCodef(gcode.CodeOperationFailed, ErrQuotaExceeded,
			"今日已创建 %d 个任务，上限 %d 个", used, c.opts.DailyQuota)
	}
	created := make([]int, 0, len(accepted))
	for _, i := range accepted {
		job, err := c.createJob(ctx, owner, results[i].FileName)
		if err != nil {
			results[i].Error = err
			continue
		}
		results[i].Job = &job
		created = append(created, i)
	}
	c.quotaMu.Unlock()

	eg := new(errgroup.Group)
	eg.SetLimit(consts.UploadConcurrency)
	for _, i := range created {
		eg.Go(func() error {
			if err := c.upload(ctx, owner, *results[i].Job, files[i]); err != nil {
				// 上传失败的任务停留在 Uploading，不重试
				g.Log().Errorf(ctx, "[%s] 上传音频 %s 失败：%+v", results[i].Job.Id, results[i].FileName, err)
				results[i].Error = err
				return nil
			}
			if !c.startPolling(*results[i].Job) && c.board.Removed(results[i].Job.Id) {
				c.discardUpload(ctx, owner, *results[i].Job)
			}
			return nil
		})
	}
	_ = eg.Wait()
	return results, nil
}

// SubmitJob is SubmitJobs for a single file.
func (c *Controller) SubmitJob(ctx context.Context, owner string, file UploadSource) (*entity.Job, error) {
	results, err := c.SubmitJobs(ctx, owner, []UploadSource{file})
	if err != nil {
		if len(results) == 1 && results[0].Error != nil {
			return nil, results[0].Error
		}
		return nil, err
	}
	return results[0].Job, results[0].Error
}

func (c *Controller) createJob(ctx context.Context, owner, fileName string) (entity.Job, error) {
	now := gtime.New(c.now())
	job := entity.Job{
		Id:        c.newID(),
		Owner:     owner,
		FileName:  fileName,
		Status:    consts.JobStatusUploading,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.jobs.Create(ctx, job); err != nil {
		return entity.Job{}, err
	}
	c.board.Put(job)
	return job, nil
}

func (c *Controller) upload(ctx context.Context, owner string, job entity.Job, file UploadSource) error {
	reader, err := file.Open()
	if err != nil {
		return gerror.Wrap(err, "打开文件失败")
	}
	defer reader.Close()

	return c.objects.Put(ctx, c.opts.AudioKey(owner, job.Id, job.FileName), reader, map[string]string{
		consts.MetaJobID:            job.Id,
		consts.MetaTranscriptionKey: c.opts.ResultKey(job.Id),
	})
}

// discardUpload 删除上传期间已被删除的任务刚写入的音频对象。
func (c *Controller) discardUpload(ctx context.Context, owner string, job entity.Job) {
	key := c.opts.AudioKey(owner, job.Id, job.FileName)
	g.Log().Infof(ctx, "[%s] 上传完成前任务已删除，清理音频 %s", job.Id, key)
	if err := c.objects.Delete(ctx, key); err != nil && !storage.IsNotFound(err) {
		g.Log().Warningf(ctx, "[%s] 删除对象 %s 失败：%+v", job.Id, key, err)
	}
}

// QuotaInfo is the owner's usage for the current local day.
type QuotaInfo struct {
	Used      int `json:"used"`
	Limit     int `json:"limit"`
	Remaining int `json:"remaining"`
}

func (c *Controller) Quota(ctx context.Context, owner string) (QuotaInfo, error) {
	if err := requireOwner(owner); err != nil {
		return QuotaInfo{}, err
	}
	used, err := c.usedToday(ctx, owner)
	if err != nil {
		return QuotaInfo{}, err
	}
	remaining := c.opts.DailyQuota - used
	if remaining < 0 {
		remaining = 0
	}
	return QuotaInfo{Used: used, Limit: c.opts.DailyQuota, Remaining: remaining}, nil
}

func (c *Controller) usedToday(ctx context.Context, owner string) (int, error) {
	now := c.now()
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	jobs, err := c.jobs.List(ctx, ListFilter{Owner: owner, Since: &midnight})
	if err != nil {
		return 0, gerror.Wrap(err, "统计今日任务数失败")
	}
	return len(jobs), nil
}

// GenerateMeetingNotes asks the notes generator for meeting notes of a
// transcribed job. Jobs without a transcription are returned untouched.
// Generation and the resulting status change are not tied to ctx's
// cancellation, so a dropped request still leaves the job Completed or Failed.
func (c *Controller) GenerateMeetingNotes(ctx context.Context, owner, id string, speakerDetection bool) (entity.Job, error) {
	job, err := c.GetJob(ctx, owner, id)
	if err != nil {
		return entity.Job{}, err
	}
	if job.Transcription == "" {
		return job, nil
	}
	if !canGenerateNotes(job.Status) {
		return job, notesStateError(job.Status)
	}

	prompt := job.Transcription
	if speakerDetection {
		if prompt, err = speakerPrompt(job.Results); err != nil {
			return job, err
		}
	}

	ctx = gctx.NeverDone(ctx)

	// 占位内容只放在看板上；并发请求只有一个能占位成功
	pending := job
	pending.Status = consts.JobStatusProcessing
	pending.MeetingNotes = consts.MeetingNotesPlaceholder
	pending.UpdatedAt = gtime.New(c.now())
	var current string
	if !c.board.PutIf(pending, func(cur entity.Job, ok bool) bool {
		if !ok {
			return true
		}
		current = cur.Status
		return canGenerateNotes(cur.Status)
	}) {
		if c.board.Removed(id) {
			return entity.Job{}, gerror.WrapCodef(gcode.CodeNotFound, ErrJobNotFound, "id=%s", id)
		}
		return job, notesStateError(current)
	}

	text, genErr := c.notes.Generate(ctx, prompt)
	if genErr != nil {
		g.Log().Errorf(ctx, "[%s] 生成会议纪要失败：%+v", job.Id, genErr)
		failed, _ := c.apply(ctx, pending, consts.JobStatusFailed, func(j *entity.Job) {
			j.MeetingNotes = ""
		})
		return failed, gerror.WrapCode(gcode.CodeOperationFailed, genErr, "生成会议纪要失败")
	}
	return c.apply(ctx, pending, consts.JobStatusCompleted, func(j *entity.Job) {
		j.MeetingNotes = text
	})
}

// 只有已完成或失败的转写任务可以生成纪要，生成中的任务不能重复提交
func canGenerateNotes(status string) bool {
	return status == consts.JobStatusCompleted || status == consts.JobStatusFailed
}

func notesStateError(status string) error {
	return gerror.WrapCodef(gcode.CodeInvalidOperation, ErrInvalidState,
		"任务状态为 %s，无法生成会议纪要", consts.GetStatusMsg(status))
}

func speakerPrompt(raw string) (string, error) {
	res, err := ParseResults([]byte(raw))
	if err != nil {
		return "", err
	}
	simplified := res.Simplify()
	if len(simplified.Items) == 0 {
		return "", gerror.WrapCode(gcode.CodeInvalidParameter, ErrNoSpeakerItems, "转写结果中没有说话人信息")
	}
	b, err := json.Marshal(simplified)
	if err != nil {
		return "", gerror.Wrap(err, "序列化说话人转写失败")
	}
	return string(b), nil
}

// DeleteJob soft deletes the job, drops it from the board, stops its poll
// loop and removes its objects. Object removal failures are only logged.
func (c *Controller) DeleteJob(ctx context.Context, owner, id string) error {
	job, err := c.GetJob(ctx, owner, id)
	if err != nil {
		return err
	}
	if err = c.jobs.MarkDeleted(ctx, id); err != nil {
		return err
	}
	c.board.Remove(id)
	c.stopPolling(id)

	keys := []string{c.opts.AudioKey(job.Owner, job.Id, job.FileName), c.opts.ResultKey(job.Id)}
	var eg errgroup.Group
	for _, key := range keys {
		eg.Go(func() error {
			if err := c.objects.Delete(ctx, key); err != nil && !storage.IsNotFound(err) {
				g.Log().Warningf(ctx, "[%s] 删除对象 %s 失败：%+v", id, key, err)
				return err
			}
			return nil
		})
	}
	if err = eg.Wait(); err != nil {
		g.Log().Warningf(ctx, "[%s] 任务已删除，但部分对象未能清理", id)
	}
	return nil
}

// GetJob returns the owner's job from the board, falling back to the job
// store for jobs not loaded yet. Deleted jobs are reported as not found.
func (c *Controller) GetJob(ctx context.Context, owner, id string) (entity.Job, error) {
	if err := requireOwner(owner); err != nil {
		return entity.Job{}, err
	}
	if job, ok := c.board.Get(id); ok {
		if job.Owner != owner {
			return entity.Job{}, gerror.WrapCodef(gcode.CodeNotFound, ErrJobNotFound, "id=%s", id)
		}
		return job, nil
	}
	job, err := c.jobs.Get(ctx, id)
	if err != nil {
		return entity.Job{}, err
	}
	if job.Deleted || job.Owner != owner {
		return entity.Job{}, gerror.WrapCodef(gcode.CodeNotFound, ErrJobNotFound, "id=%s", id)
	}
	return *job, nil
}

// ListJobs returns the owner's visible jobs, newest first. An empty owner
// sees nothing.
func (c *Controller) ListJobs(ctx context.Context, owner string) []entity.Job {
	if owner == "" {
		return []entity.Job{}
	}
	return c.board.List(owner)
}

// QueryJobs looks up several jobs at once. Unknown ids are skipped.
func (c *Controller) QueryJobs(ctx context.Context, owner string, ids []string) ([]entity.Job, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if len(ids) > consts.MaxQueryIDs {
		return nil, gerror.WrapCodef(gcode.CodeInvalidParameter, ErrTooManyJobIDs,
			"最多查询 %d 个任务，实际 %d 个", consts.MaxQueryIDs, len(ids))
	}
	ret := make([]entity.Job, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup || id == "" {
			continue
		}
		seen[id] = struct{}{}
		job, err := c.GetJob(ctx, owner, id)
		if errors.Is(err, ErrJobNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		ret = append(ret, job)
	}
	return ret, nil
}

func (c *Controller) SearchJobs(ctx context.Context, owner, keyword string, limit int) ([]entity.Job, error) {
	if err := requireOwner(owner); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > consts.MaxQueryIDs {
		limit = consts.MaxQueryIDs
	}
	return c.jobs.Search(ctx, owner, keyword, limit)
}

// AudioURL returns a presigned download link for the job's audio.
func (c *Controller) AudioURL(ctx context.Context, owner, id string) (string, error) {
	job, err := c.GetJob(ctx, owner, id)
	if err != nil {
		return "", err
	}
	if job.Status == consts.JobStatusUploading {
		return "", gerror.WrapCodef(gcode.CodeInvalidOperation, ErrInvalidState, "音频尚未上传完成")
	}
	return c.objects.URL(ctx, c.opts.AudioKey(job.Owner, job.Id, job.FileName), c.opts.URLExpires)
}

// apply moves job to status, updates the board and persists it. Persistence
// failures are logged; the board always reflects the new state.
func (c *Controller) apply(ctx context.Context, job entity.Job, status string, mutate func(*entity.Job)) (entity.Job, error) {
	if !CanTransition(job.Status, status) {
		return job, gerror.WrapCodef(gcode.CodeInvalidOperation, ErrInvalidState, "%s -> %s", job.Status, status)
	}
	job.Status = status
	if mutate != nil {
		mutate(&job)
	}
	job.UpdatedAt = gtime.New(c.now())
	c.board.Put(job)
	if err := c.jobs.Update(ctx, job); err != nil {
		g.Log().Errorf(ctx, "[%s] 保存任务状态 %s 失败：%+v", job.Id, status, err)
	}
	return job, nil
}

// 对外操作必须带调用方身份，空 owner 只留给 Reconcile 等内部调用
func requireOwner(owner string) error {
	if owner == "" {
		return gerror.WrapCode(gcode.CodeNotAuthorized, ErrOwnerRequired, "缺少调用方身份")
	}
	return nil
}
