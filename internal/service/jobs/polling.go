package jobs

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/frame/g"

	"audio-notes-service/internal/consts"
	"audio-notes-service/internal/model/entity"
	"audio-notes-service/internal/service/storage"
)

// startPolling runs PollTranscription for job in its own goroutine. A job
// never has more than one loop; a second start for the same id is ignored,
// as is a start for a deleted job.
func (c *Controller) startPolling(job entity.Job) bool {
	c.loopsMu.Lock()
	// DeleteJob 先打墓碑再取消轮询，这里在锁内检查墓碑
	if _, running := c.loops[job.Id]; running || c.board.Removed(job.Id) {
		c.loopsMu.Unlock()
		return false
	}
	ctx, cancel := context.WithCancel(c.rootCtx)
	loop := &pollLoop{cancel: cancel}
	c.loops[job.Id] = loop
	c.wg.Add(1)
	c.loopsMu.Unlock()

	go func() {
		defer c.wg.Done()
		defer func() {
			c.loopsMu.Lock()
			if c.loops[job.Id] == loop {
				delete(c.loops, job.Id)
			}
			c.loopsMu.Unlock()
			cancel()
		}()
		if _, err := c.PollTranscription(ctx, job); err != nil {
			g.Log().Infof(c.rootCtx, "[%s] 轮询中止：%v", job.Id, err)
		}
	}()
	return true
}

// stopPolling cancels the loop of id, if any.
func (c *Controller) stopPolling(id string) {
	c.loopsMu.Lock()
	loop, ok := c.loops[id]
	delete(c.loops, id)
	c.loopsMu.Unlock()
	if ok {
		loop.cancel()
	}
}

// Polling reports whether a poll loop is running for id.
func (c *Controller) Polling(id string) bool {
	c.loopsMu.Lock()
	defer c.loopsMu.Unlock()
	_, ok := c.loops[id]
	return ok
}

// PollTranscription moves job to Processing and fetches its result object
// until it exists, at most MaxAttempts times with PollInterval in between.
// A missing object and a failed fetch both use up an attempt. When attempts
// run out the job becomes Failed. A cancelled ctx ends the loop without
// touching the job, so it is picked up again by Reconcile.
func (c *Controller) PollTranscription(ctx context.Context, job entity.Job) (entity.Job, error) {
	job, err := c.apply(ctx, job, consts.JobStatusProcessing, nil)
	if err != nil {
		return job, err
	}

	key := c.opts.ResultKey(job.Id)
	for attempt := 1; attempt <= c.opts.MaxAttempts; attempt++ {
		raw, err := c.objects.Get(ctx, key)
		if err == nil {
			res, perr := ParseResults(raw)
			if perr == nil {
				g.Log().Infof(ctx, "[%s] 第 %d 次轮询获取到转写结果", job.Id, attempt)
				return c.apply(ctx, job, consts.JobStatusCompleted, func(j *entity.Job) {
					j.Transcription = res.Flatten()
					j.Results = string(raw)
				})
			}
			err = perr
		}
		if ctx.Err() != nil {
			return job, ctx.Err()
		}

		if storage.IsNotFound(err) {
			g.Log().Infof(ctx, "[%s] 轮询 %d/%d：转写结果尚未生成", job.Id, attempt, c.opts.MaxAttempts)
		} else {
			g.Log().Warningf(ctx, "[%s] 轮询 %d/%d：获取转写结果失败：%v", job.Id, attempt, c.opts.MaxAttempts, err)
		}

		if attempt == c.opts.MaxAttempts {
			break
		}
		if err := c.sleep(ctx, c.opts.PollInterval); err != nil {
			return job, err
		}
	}

	g.Log().Warningf(ctx, "[%s] 轮询 %d 次仍未获取到转写结果，任务失败", job.Id, c.opts.MaxAttempts)
	return c.apply(ctx, job, consts.JobStatusFailed, nil)
}

func sleepContext(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
