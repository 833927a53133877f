package jobs

import (
	"testing"

	"github.com/gogf/gf/v2/test/gtest"
)

func Test_Simplify(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		res, err := ParseResults([]byte(`{"results":{"items":[
			{"speaker_label":"spk_0","alternatives":[{"content":"Hello"}]},
			{"speaker_label":"spk_0","alternatives":[{"content":"world"}]},
			{"speaker_label":"spk_1","alternatives":[{"content":"Hi"}]}
		]}}`))
		t.AssertNil(err)
		t.Assert(res.Simplify().Items, []SimplifiedItem{
			{SpeakerLabel: "spk_0", Content: "Hello world"},
			{SpeakerLabel: "spk_1", Content: "Hi"},
		})
	})

	gtest.C(t, func(t *gtest.T) {
		res, err := ParseResults([]byte(`{"results":{"items":[
			{"speaker_label":"spk_0","alternatives":[{"content":"a"}]},
			{"speaker_label":"spk_0","alternatives":[]},
			{"speaker_label":"spk_1","alternatives":[{"content":"b"}]},
			{"speaker_label":"spk_0","alternatives":[{"content":"c"}]}
		]}}`))
		t.AssertNil(err)
		t.Assert(res.Simplify().Items, []SimplifiedItem{
			{SpeakerLabel: "spk_0", Content: "a"},
			{SpeakerLabel: "spk_1", Content: "b"},
			{SpeakerLabel: "spk_0", Content: "c"},
		})
	})

	gtest.C(t, func(t *gtest.T) {
		res, err := ParseResults([]byte(`{"results":{"items":[]}}`))
		t.AssertNil(err)
		t.Assert(len(res.Simplify().Items), 0)
	})
}

func Test_Flatten(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		res, err := ParseResults([]byte(resultPayload))
		t.AssertNil(err)
		t.Assert(res.Flatten(), "Hello world. Hi there.")
		t.Assert(res.JobName, "job-1")
	})

	gtest.C(t, func(t *gtest.T) {
		_, err := ParseResults([]byte("not json"))
		t.AssertNE(err, nil)
	})
}

func Test_Options(t *testing.T) {
	gtest.C(t, func(t *gtest.T) {
		opts := Options{}.withDefaults()
		t.Assert(opts.DailyQuota, 15)
		t.Assert(opts.MaxAttempts, 50)
		t.Assert(opts.PollInterval.String(), "15s")
		t.Assert(opts.AudioKey("alice", "id-1", "a.wav"), "audioFiles/alice/a.wav")
		t.Assert(opts.AudioKey("", "id-1", "a.wav"), "audioFiles/id-1_a.wav")
		t.Assert(opts.ResultKey("id-1"), "transcriptionFiles/id-1.json")
	})
}
