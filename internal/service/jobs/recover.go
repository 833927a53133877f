package jobs

import (
	"context"

	"github.com/gogf/gf/v2/frame/g"

	"audio-notes-service/internal/consts"
)

// Reconcile loads every live job into the board and resumes polling for the
// ones still in Processing, each with a fresh attempt budget.
func (c *Controller) Reconcile(ctx context.Context) (int, error) {
	records, err := c.jobs.List(ctx, ListFilter{})
	if err != nil {
		return 0, err
	}
	resumed := 0
	for _, job := range records {
		if !c.board.Put(job) {
			continue
		}
		if job.Status == consts.JobStatusProcessing && c.startPolling(job) {
			resumed++
		}
	}
	g.Log().Infof(ctx, "已加载任务 %d 个，恢复轮询 %d 个", c.board.Len(), resumed)
	return resumed, nil
}
