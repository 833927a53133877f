// Package notes turns a transcript prompt into meeting notes through a
// managed LLM endpoint.
package notes

import (
	"context"
	"time"

	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
)

// Generator returns meeting notes for prompt.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

const (
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.5
)

// SystemPrompt describes the notes layout and how speaker labels are handled.
const SystemPrompt = `You are an assistant specialised in writing professional meeting notes.
Turn the audio transcription of a meeting into clear, concise and well organised meeting notes.
The notes must contain the key points, decisions made, action items and any other important
information discussed in the meeting. Attribute statements to the correct speakers.

Use this layout:

Introduction:
* Participants: [list of participants]

Key points:
* Summarise the main topics that were discussed.
* Highlight important findings or information.

Decisions:
* List every decision that was made.

Action items:
* Describe the assigned tasks together with the responsible people and deadlines.

Closing:
* Summarise closing remarks or next steps.

Speaker labels:
Replace speaker labels (for example "spk_0", "spk_1") with the speakers' real names whenever
the names are mentioned in the conversation. If no names are mentioned, keep the labels.

Write the meeting notes below:`

// New builds the generator selected by notes.provider.
func New(ctx context.Context) (Generator, error) {
	var (
		provider     = g.Cfg().MustGet(ctx, "notes.provider", "openai").String()
		systemPrompt = g.Cfg().MustGet(ctx, "notes.systemPrompt", SystemPrompt).String()
		maxTokens    = g.Cfg().MustGet(ctx, "notes.maxTokens", DefaultMaxTokens).Int()
		temperature  = g.Cfg().MustGet(ctx, "notes.temperature", DefaultTemperature).Float64()
	)
	switch provider {
	case "openai":
		return NewChatCompletions(ChatCompletionsConfig{
			APIURL:       g.Cfg().MustGet(ctx, "notes.openai.apiUrl", "https://api.openai.com/v1").String(),
			APIKey:       g.Cfg().MustGet(ctx, "notes.openai.apiKey").String(),
			Model:        g.Cfg().MustGet(ctx, "notes.openai.model", "gpt-4o-mini").String(),
			Timeout:      g.Cfg().MustGet(ctx, "notes.openai.timeout", "60s").Duration(),
			SystemPrompt: systemPrompt,
			MaxTokens:    maxTokens,
			Temperature:  temperature,
		})
	case "bedrock":
		return NewBedrock(ctx, BedrockConfig{
			Region:       g.Cfg().MustGet(ctx, "notes.bedrock.region", "eu-central-1").String(),
			ModelID:      g.Cfg().MustGet(ctx, "notes.bedrock.modelId").String(),
			SystemPrompt: systemPrompt,
			MaxTokens:    maxTokens,
			Temperature:  temperature,
		})
	default:
		return nil, gerror.Newf("不支持的纪要生成服务：%s", provider)
	}
}

func orDefault[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}

var defaultTimeout = 60 * time.Second
