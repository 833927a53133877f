package jobs

import "audio-notes-service/internal/consts"

// 允许的状态迁移。Completed/Failed -> Processing 只用于生成会议纪要，
// 调用方需确认任务已有转写内容。
var transitions = map[string][]string{
	consts.JobStatusUploading:  {consts.JobStatusProcessing},
	consts.JobStatusProcessing: {consts.JobStatusCompleted, consts.JobStatusFailed},
	consts.JobStatusCompleted:  {consts.JobStatusProcessing},
	consts.JobStatusFailed:     {consts.JobStatusProcessing},
}

// CanTransition reports whether a job may move from one status to another.
// Staying in the same status is always allowed.
func CanTransition(from, to string) bool {
	if from == to {
		return true
	}
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
