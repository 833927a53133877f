package jobs

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"audio-notes-service/internal/consts"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from, to string
		want     bool
	}{
		{consts.JobStatusUploading, consts.JobStatusProcessing, true},
		{consts.JobStatusProcessing, consts.JobStatusCompleted, true},
		{consts.JobStatusProcessing, consts.JobStatusFailed, true},
		{consts.JobStatusCompleted, consts.JobStatusProcessing, true},
		{consts.JobStatusFailed, consts.JobStatusProcessing, true},
		{consts.JobStatusProcessing, consts.JobStatusProcessing, true},

		{consts.JobStatusUploading, consts.JobStatusCompleted, false},
		{consts.JobStatusUploading, consts.JobStatusFailed, false},
		{consts.JobStatusCompleted, consts.JobStatusFailed, false},
		{consts.JobStatusCompleted, consts.JobStatusUploading, false},
		{consts.JobStatusFailed, consts.JobStatusCompleted, false},
		{consts.JobStatusProcessing, consts.JobStatusUploading, false},
	}
	for _, tt := range tests {
		t.Run(tt.from+"->"+tt.to, func(t *testing.T) {
			assert.Equal(t, tt.want, CanTransition(tt.from, tt.to))
		})
	}
}
