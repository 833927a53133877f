package jobs

import (
	"encoding/json"
	"strings"

	"github.com/gogf/gf/v2/errors/gerror"
)

// TranscriptionResults is the result object written by the transcription
// trigger (AWS Transcribe output layout).
type TranscriptionResults struct {
	JobName   string  `json:"jobName"`
	AccountID string  `json:"accountId"`
	Status    string  `json:"status"`
	Results   Results `json:"results"`
}

type Results struct {
	Transcripts []Transcript `json:"transcripts"`
	Items       []Item       `json:"items"`
}

type Transcript struct {
	Transcript string `json:"transcript"`
}

type Item struct {
	StartTime    string        `json:"start_time,omitempty"`
	EndTime      string        `json:"end_time,omitempty"`
	Alternatives []Alternative `json:"alternatives"`
	Type         string        `json:"type"`
	SpeakerLabel string        `json:"speaker_label"`
}

type Alternative struct {
	Confidence string `json:"confidence"`
	Content    string `json:"content"`
}

// SimplifiedItem is one speaker turn.
type SimplifiedItem struct {
	SpeakerLabel string `json:"speaker_label,omitempty"`
	Content      string `json:"content"`
}

type SimplifiedTranscription struct {
	Items []SimplifiedItem `json:"items"`
}

// ParseResults decodes a raw result payload.
func ParseResults(raw []byte) (*TranscriptionResults, error) {
	var res TranscriptionResults
	if err := json.Unmarshal(raw, &res); err != nil {
		return nil, gerror.Wrap(err, "解析转写结果失败")
	}
	return &res, nil
}

// Flatten joins all transcript segments with single spaces, in order.
func (r *TranscriptionResults) Flatten() string {
	parts := make([]string, 0, len(r.Results.Transcripts))
	for _, t := range r.Results.Transcripts {
		parts = append(parts, t.Transcript)
	}
	return strings.Join(parts, " ")
}

// Simplify merges consecutive items of the same speaker into one turn.
// Items without alternatives are skipped.
func (r *TranscriptionResults) Simplify() SimplifiedTranscription {
	var (
		items   = make([]SimplifiedItem, 0)
		speaker string
		content strings.Builder
		open    bool
	)
	flush := func() {
		if open {
			items = append(items, SimplifiedItem{SpeakerLabel: speaker, Content: content.String()})
		}
	}
	for _, item := range r.Results.Items {
		if len(item.Alternatives) == 0 {
			continue
		}
		word := item.Alternatives[0].Content
		if open && item.SpeakerLabel == speaker {
			content.WriteByte(' ')
			content.WriteString(word)
			continue
		}
		flush()
		speaker = item.SpeakerLabel
		content.Reset()
		content.WriteString(word)
		open = true
	}
	flush()
	return SimplifiedTranscription{Items: items}
}
