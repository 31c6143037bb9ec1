package analyzer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckImage(t *testing.T) {
	assert.NoError(t, CheckImage("sample.PNG", 1024))
	assert.NoError(t, CheckImage("dir/sample.jpeg", MaxImageBytes))
	assert.NoError(t, CheckImage("sample.jpg", -1))
	assert.ErrorIs(t, CheckImage("sample.gif", 10), ErrUnsupportedSample)
	assert.ErrorIs(t, CheckImage("sample.png", MaxImageBytes+1), ErrUnsupportedSample)
	assert.ErrorIs(t, CheckImage("noext", 10), ErrUnsupportedSample)
}

func TestCheckAudio(t *testing.T) {
	for _, name := range []string{"a.wav", "a.MP3", "a.ogg", "a.m4a", "a.webm"} {
		assert.NoError(t, CheckAudio(name), name)
	}
	assert.ErrorIs(t, CheckAudio("a.flac"), ErrUnsupportedSample)
}
