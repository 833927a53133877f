package jobs

import (
	"context"
	"time"

	"audio-notes-service/internal/model/entity"
)

// JobRepository persists jobs. Implementations must treat Update as a write
// of the mutable fields only (status, transcription, results, notes) so a
// stale copy can never clear the deleted flag.
type JobRepository interface {
	Create(ctx context.Context, job entity.Job) error
	Update(ctx context.Context, job entity.Job) error
	MarkDeleted(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*entity.Job, error)
	List(ctx context.Context, filter ListFilter) ([]entity.Job, error)
	Search(ctx context.Context, owner, keyword string, limit int) ([]entity.Job, error)
}

type ListFilter struct {
	Owner          string     // empty matches every owner
	Statuses       []string   // empty matches every status
	Since          *time.Time // created at or after
	IncludeDeleted bool
}

func (f ListFilter) Match(job entity.Job) bool {
	if f.Owner != "" && job.Owner != f.Owner {
		return false
	}
	if !f.IncludeDeleted && job.Deleted {
		return false
	}
	if f.Since != nil && (job.CreatedAt == nil || job.CreatedAt.Time.Before(*f.Since)) {
		return false
	}
	if len(f.Statuses) == 0 {
		return true
	}
	for _, s := range f.Statuses {
		if job.Status == s {
			return true
		}
	}
	return false
}
