package consts

import (
	"strings"

	"github.com/gogf/gf/v2/frame/g"
)

// 任务状态
const (
	JobStatusUploading  = "Uploading"
	JobStatusProcessing = "Processing"
	JobStatusCompleted  = "Completed"
	JobStatusFailed     = "Failed"
)

// 会议纪要生成中的占位内容，不落库。
const MeetingNotesPlaceholder = "Generating..."

const (
	DefaultDailyQuota    = 15
	DefaultMaxAttempts   = 50
	DefaultPollInterval  = "15s"
	DefaultAudioPrefix   = "audioFiles"
	DefaultResultPrefix  = "transcriptionFiles"
	DefaultMaxUploadSize = 50_000_000 // 50 MB
	MaxQueryIDs          = 100
	UploadConcurrency    = 3
)

// 上传对象时附带的元数据键，转写触发器依赖这两个键找到任务和结果路径。
const (
	MetaJobID            = "jobid"
	MetaTranscriptionKey = "transcriptionkey"
)

// UserIDHeader 由上游网关注入的调用方身份。
const UserIDHeader = "X-User-ID"

// CtxKeyOwner 身份中间件校验后写入请求上下文的调用方身份。
const CtxKeyOwner = "owner"

var (
	// AudioExt 在 MIME 探测不到 audio/* 时的兜底扩展名表。
	AudioExt = g.MapStrBool{
		".mp3":  true,
		".wav":  true,
		".aac":  true,
		".flac": true,
		".ogg":  true,
		".m4a":  true,
		".opus": true,
		".webm": true,
		".amr":  true,
	}

	statusMsg = g.MapStrStr{
		JobStatusUploading:  "上传中",
		JobStatusProcessing: "处理中",
		JobStatusCompleted:  "已完成",
		JobStatusFailed:     "失败",
	}
)

// IsAudio reports whether a sniffed MIME type or extension denotes audio.
func IsAudio(mimeType, ext string) bool {
	if strings.HasPrefix(mimeType, "audio/") {
		return true
	}
	return AudioExt[strings.ToLower(ext)]
}

func GetStatusMsg(status string) string {
	msg, ok := statusMsg[status]
	if !ok {
		return status
	}
	return msg
}
