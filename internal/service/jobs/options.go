package jobs

import (
	"context"
	"path"
	"time"

	"github.com/gogf/gf/v2/frame/g"

	"audio-notes-service/internal/consts"
)

// Options tunes the lifecycle controller. Zero values fall back to defaults.
type Options struct {
	DailyQuota    int
	MaxUploadSize int64
	MaxAttempts   int
	PollInterval  time.Duration
	AudioPrefix   string
	ResultPrefix  string
	URLExpires    time.Duration
}

func DefaultOptions() Options {
	interval, _ := time.ParseDuration(consts.DefaultPollInterval)
	return Options{
		DailyQuota:    consts.DefaultDailyQuota,
		MaxUploadSize: consts.DefaultMaxUploadSize,
		MaxAttempts:   consts.DefaultMaxAttempts,
		PollInterval:  interval,
		AudioPrefix:   consts.DefaultAudioPrefix,
		ResultPrefix:  consts.DefaultResultPrefix,
		URLExpires:    time.Hour,
	}
}

// LoadOptions reads the jobs.* section of the service configuration.
func LoadOptions(ctx context.Context) Options {
	def := DefaultOptions()
	return Options{
		DailyQuota:    g.Cfg().MustGet(ctx, "jobs.dailyQuota", def.DailyQuota).Int(),
		MaxUploadSize: g.Cfg().MustGet(ctx, "jobs.maxUploadSize", def.MaxUploadSize).Int64(),
		MaxAttempts:   g.Cfg().MustGet(ctx, "jobs.poll.maxAttempts", def.MaxAttempts).Int(),
		PollInterval:  g.Cfg().MustGet(ctx, "jobs.poll.interval", consts.DefaultPollInterval).Duration(),
		AudioPrefix:   g.Cfg().MustGet(ctx, "jobs.audioPrefix", def.AudioPrefix).String(),
		ResultPrefix:  g.Cfg().MustGet(ctx, "jobs.resultPrefix", def.ResultPrefix).String(),
		URLExpires:    g.Cfg().MustGet(ctx, "jobs.urlExpires", "1h").Duration(),
	}.withDefaults()
}

func (o Options) withDefaults() Options {
	def := DefaultOptions()
	if o.DailyQuota <= 0 {
		o.DailyQuota = def.DailyQuota
	}
	if o.MaxUploadSize <= 0 {
		o.MaxUploadSize = def.MaxUploadSize
	}
	if o.MaxAttempts <= 0 {
		o.MaxAttempts = def.MaxAttempts
	}
	if o.PollInterval <= 0 {
		o.PollInterval = def.PollInterval
	}
	if o.AudioPrefix == "" {
		o.AudioPrefix = def.AudioPrefix
	}
	if o.ResultPrefix == "" {
		o.ResultPrefix = def.ResultPrefix
	}
	if o.URLExpires <= 0 {
		o.URLExpires = def.URLExpires
	}
	return o
}

// AudioKey is audioFiles/<owner>/<fileName>, or audioFiles/<jobId>_<fileName>
// for callers without an identity.
func (o Options) AudioKey(owner, jobID, fileName string) string {
	if owner == "" {
		return path.Join(o.AudioPrefix, jobID+"_"+fileName)
	}
	return path.Join(o.AudioPrefix, owner, fileName)
}

// ResultKey is where the transcription trigger writes the result of jobID.
func (o Options) ResultKey(jobID string) string {
	return path.Join(o.ResultPrefix, jobID+".json")
}
