// =================================================================================
// This file is auto-generated by the GoFrame CLI tool. You may modify it as needed.
// =================================================================================

package dao

import (
	"context"

	"audio-notes-service/internal/dao/internal"
)

// jobDao is the data access object for the table job.
// You can define custom methods on it to extend its functionality as needed.
type jobDao struct {
	*internal.JobDao
}

var (
	// Job is a globally accessible object for table job operations.
	Job = jobDao{internal.NewJobDao()}
)

// Add your custom methods and functionality below.

// JobSchema is the SQLite DDL of the job table, also used by hack/sql.go.
var JobSchema = []string{`
CREATE TABLE IF NOT EXISTS job (
	id            TEXT PRIMARY KEY,
	owner         TEXT NOT NULL DEFAULT '',
	file_name     TEXT NOT NULL,
	status        TEXT NOT NULL,
	transcription TEXT NOT NULL DEFAULT '',
	results       TEXT NOT NULL DEFAULT '',
	meeting_notes TEXT NOT NULL DEFAULT '',
	deleted       INTEGER NOT NULL DEFAULT 0,
	created_at    DATETIME,
	updated_at    DATETIME
)`,
	`CREATE INDEX IF NOT EXISTS idx_job_owner_created ON job (owner, created_at)`,
}

// EnsureSchema creates the job table when it does not exist yet.
func (d jobDao) EnsureSchema(ctx context.Context) error {
	for _, stmt := range JobSchema {
		if _, err := d.DB().Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
