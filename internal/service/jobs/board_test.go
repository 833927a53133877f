package jobs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"audio-notes-service/internal/consts"
	"audio-notes-service/internal/model/entity"
)

func TestBoard_RemovedIDsStayRemoved(t *testing.T) {
	b := NewBoard()
	job := seedJob("job-1", "alice", consts.JobStatusProcessing, testNow)
	require.True(t, b.Put(job))

	removed, ok := b.Remove("job-1")
	require.True(t, ok)
	assert.Equal(t, "job-1", removed.Id)

	job.Status = consts.JobStatusCompleted
	assert.False(t, b.Put(job))
	_, ok = b.Get("job-1")
	assert.False(t, ok)
}

func TestBoard_PutIf(t *testing.T) {
	b := NewBoard()
	job := seedJob("job-1", "alice", consts.JobStatusCompleted, testNow)
	notProcessing := func(cur entity.Job, ok bool) bool {
		return !ok || cur.Status != consts.JobStatusProcessing
	}

	assert.True(t, b.PutIf(job, notProcessing))

	job.Status = consts.JobStatusProcessing
	assert.True(t, b.PutIf(job, notProcessing))
	assert.False(t, b.PutIf(job, notProcessing))

	b.Remove("job-1")
	assert.True(t, b.Removed("job-1"))
	assert.False(t, b.PutIf(job, func(entity.Job, bool) bool { return true }))
	assert.False(t, b.Removed("job-2"))
}

func TestBoard_IgnoresDeletedJobs(t *testing.T) {
	b := NewBoard()
	job := seedJob("job-1", "alice", consts.JobStatusCompleted, testNow)
	job.Deleted = true
	assert.False(t, b.Put(job))
	assert.Equal(t, 0, b.Len())
}

func TestBoard_ListNewestFirst(t *testing.T) {
	b := NewBoard()
	b.Put(seedJob("old", "alice", consts.JobStatusCompleted, testNow.Add(-time.Hour)))
	b.Put(seedJob("new-b", "alice", consts.JobStatusCompleted, testNow))
	b.Put(seedJob("new-a", "alice", consts.JobStatusCompleted, testNow))
	b.Put(seedJob("other", "bob", consts.JobStatusCompleted, testNow))

	ids := func(owner string) []string {
		var ret []string
		for _, j := range b.List(owner) {
			ret = append(ret, j.Id)
		}
		return ret
	}
	assert.Equal(t, []string{"new-a", "new-b", "old"}, ids("alice"))
	assert.Len(t, ids(""), 4)
}

func TestBoard_SubscribeFiltersOwner(t *testing.T) {
	b := NewBoard()
	events, unsubscribe := b.Subscribe("alice", 4)

	b.Put(seedJob("bob-1", "bob", consts.JobStatusUploading, testNow))
	b.Put(seedJob("alice-1", "alice", consts.JobStatusUploading, testNow))
	b.Remove("alice-1")

	ev := <-events
	assert.Equal(t, EventUpsert, ev.Type)
	assert.Equal(t, "alice-1", ev.Job.Id)
	ev = <-events
	assert.Equal(t, EventRemove, ev.Type)

	unsubscribe()
	unsubscribe()
	_, open := <-events
	assert.False(t, open)
}

func TestBoard_SlowSubscriberDropsEvents(t *testing.T) {
	b := NewBoard()
	events, unsubscribe := b.Subscribe("", 1)
	defer unsubscribe()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			b.Put(seedJob("job", "alice", consts.JobStatusUploading, testNow))
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Put blocked on a full subscriber")
	}
	assert.Len(t, events, 1)
}
