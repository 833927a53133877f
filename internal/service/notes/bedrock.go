package notes

import (
	"context"
	"encoding/json"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/frame/g"
)

const anthropicBedrockVersion = "bedrock-2023-05-31"

type BedrockConfig struct {
	Region       string
	ModelID      string
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

type modelInvoker interface {
	InvokeModel(ctx context.Context, params *bedrockruntime.InvokeModelInput, optFns ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error)
}

// Bedrock invokes an Anthropic model hosted on AWS Bedrock.
type Bedrock struct {
	cfg    BedrockConfig
	client modelInvoker
}

type anthropicContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type anthropicMessage struct {
	Role    string             `json:"role"`
	Content []anthropicContent `json:"content"`
}

type anthropicRequest struct {
	AnthropicVersion string             `json:"anthropic_version"`
	System           string             `json:"system"`
	Messages         []anthropicMessage `json:"messages"`
	MaxTokens        int                `json:"max_tokens"`
	Temperature      float64            `json:"temperature"`
}

func NewBedrock(ctx context.Context, cfg BedrockConfig) (*Bedrock, error) {
	awsCfg, err := config.LoadDefaultConfig(ctx, config.WithRegion(cfg.Region))
	if err != nil {
		return nil, gerror.Wrap(err, "加载 AWS 配置失败")
	}
	return newBedrock(cfg, bedrockruntime.NewFromConfig(awsCfg))
}

func newBedrock(cfg BedrockConfig, client modelInvoker) (*Bedrock, error) {
	if cfg.ModelID == "" {
		return nil, gerror.NewCode(gcode.CodeMissingConfiguration, "notes.bedrock.modelId 未配置")
	}
	cfg.SystemPrompt = orDefault(cfg.SystemPrompt, SystemPrompt)
	cfg.MaxTokens = orDefault(cfg.MaxTokens, DefaultMaxTokens)
	return &Bedrock{cfg: cfg, client: client}, nil
}

func (b *Bedrock) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(anthropicRequest{
		AnthropicVersion: anthropicBedrockVersion,
		System:           b.cfg.SystemPrompt,
		Messages: []anthropicMessage{{
			Role:    "user",
			Content: []anthropicContent{{Type: "text", Text: prompt}},
		}},
		MaxTokens:   b.cfg.MaxTokens,
		Temperature: b.cfg.Temperature,
	})
	if err != nil {
		return "", gerror.Wrap(err, "构造模型请求失败")
	}

	out, err := b.client.InvokeModel(ctx, &bedrockruntime.InvokeModelInput{
		ModelId:     aws.String(b.cfg.ModelID),
		ContentType: aws.String("application/json"),
		Accept:      aws.String("application/json"),
		Body:        body,
	})
	if err != nil {
		g.Log().Errorf(ctx, "Bedrock 调用失败 model=%s: %v", b.cfg.ModelID, err)
		return "", gerror.Wrap(err, "生成会议纪要失败")
	}

	j, err := gjson.DecodeToJson(out.Body)
	if err != nil {
		return "", gerror.Wrap(err, "解析模型返回失败")
	}
	text := j.Get("content.0.text").String()
	if text == "" {
		return "", gerror.New("模型未返回内容")
	}
	return text, nil
}
