package notes

import (
	"context"
	"strings"
	"time"

	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/gogf/gf/v2/errors/gcode"
	"github.com/gogf/gf/v2/errors/gerror"
	"github.com/gogf/gf/v2/net/gclient"
	"github.com/gogf/gf/v2/text/gstr"
)

type ChatCompletionsConfig struct {
	APIURL       string // base URL, "/chat/completions" is appended
	APIKey       string
	Model        string
	Timeout      time.Duration
	SystemPrompt string
	MaxTokens    int
	Temperature  float64
}

// ChatCompletions talks to any OpenAI-compatible chat completions endpoint.
type ChatCompletions struct {
	cfg    ChatCompletionsConfig
	client *gclient.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature"`
}

func NewChatCompletions(cfg ChatCompletionsConfig) (*ChatCompletions, error) {
	if cfg.APIURL == "" {
		return nil, gerror.NewCode(gcode.CodeMissingConfiguration, "notes.openai.apiUrl 未配置")
	}
	if cfg.Model == "" {
		return nil, gerror.NewCode(gcode.CodeMissingConfiguration, "notes.openai.model 未配置")
	}
	cfg.APIURL = strings.TrimRight(cfg.APIURL, "/")
	cfg.SystemPrompt = orDefault(cfg.SystemPrompt, SystemPrompt)
	cfg.MaxTokens = orDefault(cfg.MaxTokens, DefaultMaxTokens)
	cfg.Timeout = orDefault(cfg.Timeout, defaultTimeout)

	client := gclient.New()
	client.SetTimeout(cfg.Timeout)
	return &ChatCompletions{cfg: cfg, client: client}, nil
}

func (c *ChatCompletions) Generate(ctx context.Context, prompt string) (string, error) {
	headers := map[string]string{}
	if c.cfg.APIKey != "" {
		headers["Authorization"] = "Bearer " + c.cfg.APIKey
	}
	resp, err := c.client.ContentJson().
		SetHeaderMap(headers).
		Post(ctx, c.cfg.APIURL+"/chat/completions", chatRequest{
			Model: c.cfg.Model,
			Messages: []chatMessage{
				{Role: "system", Content: c.cfg.SystemPrompt},
				{Role: "user", Content: prompt},
			},
			MaxTokens:   c.cfg.MaxTokens,
			Temperature: c.cfg.Temperature,
		})
	if err != nil {
		return "", gerror.Wrap(err, "请求纪要生成服务失败")
	}
	defer resp.Close()

	body := resp.ReadAll()
	j, err := gjson.DecodeToJson(body)
	if err != nil {
		return "", gerror.Wrapf(err, "纪要生成服务返回格式错误，status=%d", resp.StatusCode)
	}
	if msg := j.Get("error.message").String(); msg != "" {
		return "", gerror.Newf("纪要生成服务返回错误：%s", msg)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", gerror.Newf("纪要生成服务返回异常状态码 %d：%s", resp.StatusCode, gstr.SubStr(string(body), 0, 500))
	}
	content := j.Get("choices.0.message.content").String()
	if content == "" {
		return "", gerror.New("纪要生成服务未返回内容")
	}
	return content, nil
}
