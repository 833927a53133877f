package jobs

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"sort"
	"strings"
	"sync"
	"time"

	"audio-notes-service/internal/model/entity"
	"audio-notes-service/internal/service/storage"
)

// memRepo is an in-memory JobRepository. Update fails on a done ctx the way
// a database call does.
type memRepo struct {
	mu      sync.Mutex
	jobs    map[string]entity.Job
	updates []entity.Job
	failOn  map[string]error // method name -> error
}

func newMemRepo(seed ...entity.Job) *memRepo {
	r := &memRepo{jobs: make(map[string]entity.Job), failOn: make(map[string]error)}
	for _, j := range seed {
		r.jobs[j.Id] = j
	}
	return r
}

func (r *memRepo) Create(_ context.Context, job entity.Job) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["Create"]; err != nil {
		return err
	}
	r.jobs[job.Id] = job
	return nil
}

func (r *memRepo) Update(ctx context.Context, job entity.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["Update"]; err != nil {
		return err
	}
	cur, ok := r.jobs[job.Id]
	if !ok {
		return ErrJobNotFound
	}
	cur.Status = job.Status
	cur.Transcription = job.Transcription
	cur.Results = job.Results
	cur.MeetingNotes = job.MeetingNotes
	cur.UpdatedAt = job.UpdatedAt
	r.jobs[job.Id] = cur
	r.updates = append(r.updates, cur)
	return nil
}

func (r *memRepo) MarkDeleted(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.jobs[id]
	if !ok {
		return ErrJobNotFound
	}
	cur.Deleted = true
	r.jobs[id] = cur
	return nil
}

func (r *memRepo) Get(_ context.Context, id string) (*entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cur, ok := r.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return &cur, nil
}

func (r *memRepo) List(_ context.Context, filter ListFilter) ([]entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failOn["List"]; err != nil {
		return nil, err
	}
	ret := make([]entity.Job, 0)
	for _, j := range r.jobs {
		if filter.Match(j) {
			ret = append(ret, j)
		}
	}
	sort.Slice(ret, func(i, j int) bool { return ret[i].Id < ret[j].Id })
	return ret, nil
}

func (r *memRepo) Search(_ context.Context, owner, keyword string, limit int) ([]entity.Job, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	ret := make([]entity.Job, 0)
	for _, j := range r.jobs {
		if j.Owner == owner && !j.Deleted && strings.Contains(strings.ToLower(j.FileName), strings.ToLower(keyword)) {
			ret = append(ret, j)
		}
	}
	if len(ret) > limit {
		ret = ret[:limit]
	}
	return ret, nil
}

func (r *memRepo) job(id string) entity.Job {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.jobs[id]
}

func (r *memRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.jobs)
}

func (r *memRepo) statuses(id string) []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ret []string
	for _, u := range r.updates {
		if u.Id == id {
			ret = append(ret, u.Status)
		}
	}
	return ret
}

// memObjects is an in-memory ObjectRepository. onGet, when set, decides the
// outcome of the n-th Get of a key.
type memObjects struct {
	mu        sync.Mutex
	data      map[string][]byte
	meta      map[string]map[string]string
	gets      map[string]int
	deleted   []string
	putErr    error
	deleteErr error
	onGet     func(key string, n int) ([]byte, error)
	onPut     func(key string)
}

func newMemObjects() *memObjects {
	return &memObjects{
		data: make(map[string][]byte),
		meta: make(map[string]map[string]string),
		gets: make(map[string]int),
	}
}

func (o *memObjects) Put(_ context.Context, key string, r io.Reader, meta map[string]string) error {
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	o.mu.Lock()
	if o.putErr != nil {
		o.mu.Unlock()
		return o.putErr
	}
	o.data[key] = b
	o.meta[key] = meta
	hook := o.onPut
	o.mu.Unlock()
	if hook != nil {
		hook(key)
	}
	return nil
}

func (o *memObjects) Get(_ context.Context, key string) ([]byte, error) {
	o.mu.Lock()
	o.gets[key]++
	n, hook := o.gets[key], o.onGet
	b, ok := o.data[key]
	o.mu.Unlock()
	if hook != nil {
		return hook(key, n)
	}
	if !ok {
		return nil, storage.ErrObjectNotFound
	}
	return b, nil
}

func (o *memObjects) Delete(_ context.Context, key string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.deleted = append(o.deleted, key)
	if o.deleteErr != nil {
		return o.deleteErr
	}
	delete(o.data, key)
	return nil
}

func (o *memObjects) URL(_ context.Context, key string, expires time.Duration) (string, error) {
	return "https://objects.test/" + key + "?expires=" + expires.String(), nil
}

func (o *memObjects) getCount(key string) int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.gets[key]
}

func (o *memObjects) has(key string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	_, ok := o.data[key]
	return ok
}

func (o *memObjects) putCount() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.data)
}

// fakeGenerator returns text/err. before, when set, runs first and its error
// replaces err.
type fakeGenerator struct {
	mu      sync.Mutex
	prompts []string
	text    string
	err     error
	before  func(ctx context.Context) error
}

func (f *fakeGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	text, err, before := f.text, f.err, f.before
	f.mu.Unlock()
	if before != nil {
		if berr := before(ctx); berr != nil {
			err = berr
		}
	}
	return text, err
}

func (f *fakeGenerator) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type memFile struct {
	name string
	data []byte
}

type readerFile struct{ *bytes.Reader }

func (readerFile) Close() error { return nil }

func (f memFile) FileName() string { return f.name }
func (f memFile) FileSize() int64  { return int64(len(f.data)) }
func (f memFile) Open() (multipart.File, error) {
	return readerFile{bytes.NewReader(f.data)}, nil
}

// wavFile returns a minimal RIFF/WAVE payload.
func wavFile(name string) memFile {
	data := append([]byte("RIFF\x24\x00\x00\x00WAVEfmt "), make([]byte, 64)...)
	return memFile{name: name, data: data}
}

func textFile(name string) memFile {
	return memFile{name: name, data: []byte("just some meeting agenda text\n")}
}

// countingSleep records waits without blocking.
type countingSleep struct {
	mu    sync.Mutex
	calls int
}

func (s *countingSleep) sleep(ctx context.Context, _ time.Duration) error {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	return ctx.Err()
}

func (s *countingSleep) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

var errBoom = errors.New("boom")

const resultPayload = `{
  "jobName": "job-1",
  "accountId": "123456789012",
  "status": "COMPLETED",
  "results": {
    "transcripts": [{"transcript": "Hello world."}, {"transcript": "Hi there."}],
    "items": [
      {"start_time": "0.0", "end_time": "0.4", "type": "pronunciation", "speaker_label": "spk_0", "alternatives": [{"confidence": "0.99", "content": "Hello"}]},
      {"start_time": "0.4", "end_time": "0.8", "type": "pronunciation", "speaker_label": "spk_0", "alternatives": [{"confidence": "0.98", "content": "world."}]},
      {"start_time": "1.0", "end_time": "1.2", "type": "pronunciation", "speaker_label": "spk_1", "alternatives": [{"confidence": "0.97", "content": "Hi"}]},
      {"start_time": "1.2", "end_time": "1.5", "type": "pronunciation", "speaker_label": "spk_1", "alternatives": [{"confidence": "0.97", "content": "there."}]}
    ]
  }
}`
