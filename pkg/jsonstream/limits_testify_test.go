package jsonstream

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"llmstructured/pkg/repair"
)

// TestSingle_MaxBufferBytesExceeded is spec.md §8 scenario 4: a stream with
// maxBufferBytes=8 fed 10 bytes must terminate with a limit diagnostic whose
// message embeds "max=8" so callers can recover the structured payload from
// text.
func TestSingle_MaxBufferBytesExceeded(t *testing.T) {
	s := NewSingle(Limits{MaxBufferBytes: 8}, repair.Default(), nil)
	s.Append("0123456789")

	out := s.Poll()
	require.True(t, out.Done, "buffer overrun must terminate immediately")
	assert.False(t, out.OK)
	require.NotNil(t, out.Error)
	assert.Equal(t, "$.stream.maxBufferBytes", out.Error.Path)
	assert.Contains(t, out.Error.Message, "max=8")

	// Terminal outcome is cached: further polls must not re-evaluate.
	again := s.Poll()
	assert.Equal(t, out, again)
}

func TestBatch_MaxItemsExceeded(t *testing.T) {
	s := NewBatch(Limits{MaxItems: 1}, repair.Default(), nil)

	s.Append(`{"a":1}`)
	first := s.Poll()
	require.True(t, first.OK)
	require.False(t, first.Done)

	s.Append(`{"b":2}`)
	second := s.Poll()
	require.True(t, second.Done)
	assert.False(t, second.OK)
	require.NotNil(t, second.Error)
	assert.Equal(t, "$.stream.maxItems", second.Error.Path)
	assert.Contains(t, second.Error.Message, "max=1")
}
