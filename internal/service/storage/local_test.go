package storage

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	meta := map[string]string{"jobid": "job-1", "transcriptionkey": "transcriptionFiles/job-1.json"}
	require.NoError(t, s.Put(ctx, "audioFiles/alice/a.wav", strings.NewReader("RIFF"), meta))

	data, err := s.Get(ctx, "audioFiles/alice/a.wav")
	require.NoError(t, err)
	assert.Equal(t, "RIFF", string(data))

	gotMeta, err := s.Meta("audioFiles/alice/a.wav")
	require.NoError(t, err)
	assert.Equal(t, meta, gotMeta)

	url, err := s.URL(ctx, "audioFiles/alice/a.wav", time.Hour)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "file://"))
	assert.True(t, strings.HasSuffix(url, "audioFiles/alice/a.wav"))

	require.NoError(t, s.Delete(ctx, "audioFiles/alice/a.wav"))
	_, err = s.Get(ctx, "audioFiles/alice/a.wav")
	assert.True(t, IsNotFound(err))

	// 删除不存在的对象不报错
	require.NoError(t, s.Delete(ctx, "audioFiles/alice/a.wav"))
}

func TestLocal_MissingObject(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "transcriptionFiles/nope.json")
	require.ErrorIs(t, err, ErrObjectNotFound)
}

func TestLocal_RejectsTraversal(t *testing.T) {
	s, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	err = s.Put(context.Background(), "../outside.txt", strings.NewReader("x"), nil)
	require.Error(t, err)
	assert.False(t, IsNotFound(err))
}
