package jobs

import "errors"

var (
	ErrNotAudio       = errors.New("not an audio file")
	ErrFileTooLarge   = errors.New("file too large")
	ErrQuotaExceeded  = errors.New("daily job quota exceeded")
	ErrJobNotFound    = errors.New("job not found")
	ErrInvalidState   = errors.New("invalid job state")
	ErrNoSpeakerItems = errors.New("no item found")
	ErrTooManyJobIDs  = errors.New("too many job ids")
	ErrOwnerRequired  = errors.New("owner required")
)
