package jobs

import (
	"sort"
	"sync"

	"audio-notes-service/internal/model/entity"
)

type EventType string

const (
	EventUpsert EventType = "upsert"
	EventRemove EventType = "remove"
)

// Event is published to subscribers whenever a job on the board changes.
type Event struct {
	Type EventType  `json:"type"`
	Job  entity.Job `json:"job"`
}

type subscriber struct {
	owner string
	ch    chan Event
}

// Board is the id-keyed collection of jobs currently shown to users. Every
// mutation replaces the whole record for one id. Ids removed by a delete stay
// tombstoned so a late write from a poll loop cannot bring them back.
type Board struct {
	mu      sync.RWMutex
	jobs    map[string]entity.Job
	removed map[string]struct{}
	subs    map[int]*subscriber
	nextSub int
}

func NewBoard() *Board {
	return &Board{
		jobs:    make(map[string]entity.Job),
		removed: make(map[string]struct{}),
		subs:    make(map[int]*subscriber),
	}
}

// Put stores job, unless its id was removed or the record is soft deleted.
func (b *Board) Put(job entity.Job) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, gone := b.removed[job.Id]; gone || job.Deleted {
		return false
	}
	b.jobs[job.Id] = job
	b.publishLocked(Event{Type: EventUpsert, Job: job})
	return true
}

// PutIf stores job only when check accepts the current record for its id.
// ok is false when the board has no record. check runs under the board lock.
func (b *Board) PutIf(job entity.Job, check func(cur entity.Job, ok bool) bool) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, gone := b.removed[job.Id]; gone || job.Deleted {
		return false
	}
	cur, ok := b.jobs[job.Id]
	if !check(cur, ok) {
		return false
	}
	b.jobs[job.Id] = job
	b.publishLocked(Event{Type: EventUpsert, Job: job})
	return true
}

// Removed reports whether id was deleted.
func (b *Board) Removed(id string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	_, gone := b.removed[id]
	return gone
}

func (b *Board) Remove(id string) (entity.Job, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.removed[id] = struct{}{}
	job, ok := b.jobs[id]
	if !ok {
		return entity.Job{}, false
	}
	delete(b.jobs, id)
	b.publishLocked(Event{Type: EventRemove, Job: job})
	return job, true
}

func (b *Board) Get(id string) (entity.Job, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	job, ok := b.jobs[id]
	return job, ok
}

// List returns the owner's jobs, newest first. An empty owner lists everything.
func (b *Board) List(owner string) []entity.Job {
	b.mu.RLock()
	ret := make([]entity.Job, 0, len(b.jobs))
	for _, job := range b.jobs {
		if owner == "" || job.Owner == owner {
			ret = append(ret, job)
		}
	}
	b.mu.RUnlock()

	sort.Slice(ret, func(i, j int) bool {
		ti, tj := ret[i].CreatedAt, ret[j].CreatedAt
		switch {
		case ti == nil || tj == nil:
			return tj == nil && ti != nil
		case ti.Equal(tj):
			return ret[i].Id < ret[j].Id
		default:
			return ti.After(tj)
		}
	})
	return ret
}

func (b *Board) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.jobs)
}

// Subscribe streams events for owner's jobs. Events are dropped when the
// buffer is full. The returned func unsubscribes and closes the channel.
func (b *Board) Subscribe(owner string, buffer int) (<-chan Event, func()) {
	if buffer <= 0 {
		buffer = 16
	}
	b.mu.Lock()
	id := b.nextSub
	b.nextSub++
	sub := &subscriber{owner: owner, ch: make(chan Event, buffer)}
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			close(sub.ch)
			b.mu.Unlock()
		})
	}
}

func (b *Board) publishLocked(ev Event) {
	for _, sub := range b.subs {
		if sub.owner != "" && sub.owner != ev.Job.Owner {
			continue
		}
		select {
		case sub.ch <- ev:
		default:
		}
	}
}
