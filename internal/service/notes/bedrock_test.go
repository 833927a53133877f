package notes

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"
	"github.com/gogf/gf/v2/encoding/gjson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeInvoker struct {
	input *bedrockruntime.InvokeModelInput
	body  string
	err   error
}

func (f *fakeInvoker) InvokeModel(_ context.Context, params *bedrockruntime.InvokeModelInput, _ ...func(*bedrockruntime.Options)) (*bedrockruntime.InvokeModelOutput, error) {
	f.input = params
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockruntime.InvokeModelOutput{Body: []byte(f.body)}, nil
}

func TestBedrock_Generate(t *testing.T) {
	invoker := &fakeInvoker{body: `{"content":[{"type":"text","text":"Decisions: ship it"}]}`}
	gen, err := newBedrock(BedrockConfig{ModelID: "anthropic.claude-3-haiku", Temperature: DefaultTemperature}, invoker)
	require.NoError(t, err)

	text, err := gen.Generate(context.Background(), "transcript")
	require.NoError(t, err)
	assert.Equal(t, "Decisions: ship it", text)

	require.NotNil(t, invoker.input)
	assert.Equal(t, "anthropic.claude-3-haiku", *invoker.input.ModelId)
	req, err := gjson.DecodeToJson(invoker.input.Body)
	require.NoError(t, err)
	assert.Equal(t, anthropicBedrockVersion, req.Get("anthropic_version").String())
	assert.Equal(t, 1000, req.Get("max_tokens").Int())
	assert.Equal(t, 0.5, req.Get("temperature").Float64())
	assert.Equal(t, "transcript", req.Get("messages.0.content.0.text").String())
}

func TestBedrock_Errors(t *testing.T) {
	_, err := newBedrock(BedrockConfig{}, &fakeInvoker{})
	assert.Error(t, err)

	throttled := errors.New("throttled")
	gen, err := newBedrock(BedrockConfig{ModelID: "m"}, &fakeInvoker{err: throttled})
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), "x")
	assert.ErrorIs(t, err, throttled)
	assert.Contains(t, err.Error(), "生成会议纪要失败")

	gen, err = newBedrock(BedrockConfig{ModelID: "m"}, &fakeInvoker{body: `{"content":[]}`})
	require.NoError(t, err)
	_, err = gen.Generate(context.Background(), "x")
	assert.Error(t, err)
}
