package transcriber

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/killallgit/voice-search-api/pkg/ffmpeg"
)

func TestSliceStream(t *testing.T) {
	stream := NewSliceStream([]Segment{
		{Start: 0, End: 1, Text: "one"},
		{Start: 1, End: 2, Text: "two"},
	})

	seg, err := stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "one", seg.Text)

	seg, err = stream.Next()
	require.NoError(t, err)
	assert.Equal(t, "two", seg.Text)

	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)

	// exhausted streams stay exhausted
	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)
}

func TestSliceStreamEmpty(t *testing.T) {
	_, err := NewSliceStream(nil).Next()
	assert.Equal(t, io.EOF, err)
}

func TestStubEngine(t *testing.T) {
	ff := ffmpeg.New("ffmpeg", "ffprobe", time.Second)
	engine, err := NewEngine("model.bin", "auto", ff)
	require.NoError(t, err)
	defer engine.Close()

	stream, err := engine.Transcribe(context.Background(), "ignored.wav")
	require.NoError(t, err)
	_, err = stream.Next()
	assert.Equal(t, io.EOF, err)
}
