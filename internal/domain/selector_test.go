package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveStreamSpec_AudioIgnoresQuality(t *testing.T) {
	// mp3 with any quality token resolves identically: best audio at the
	// fixed conversion bitrate, no error and no warning.
	for _, quality := range []Quality{QualityBest, Quality1080p, Quality144p, "garbage", ""} {
		spec, err := ResolveStreamSpec(FormatMP3, quality)
		require.NoError(t, err, "quality %q", quality)
		assert.Equal(t, "bestaudio/best", spec.Selector)
		assert.True(t, spec.AudioOnly)
		assert.Equal(t, FormatMP3, spec.Container)
		assert.Equal(t, AudioBitrateKbps, spec.AudioBitrate)
	}
}

func TestResolveStreamSpec_M4A(t *testing.T) {
	spec, err := ResolveStreamSpec(FormatM4A, Quality720p)

	require.NoError(t, err)
	assert.True(t, spec.AudioOnly)
	assert.Equal(t, FormatM4A, spec.Container)
}

func TestResolveStreamSpec_VideoBest(t *testing.T) {
	spec, err := ResolveStreamSpec(FormatMP4, QualityBest)

	require.NoError(t, err)
	assert.Equal(t, "bestvideo+bestaudio/best", spec.Selector)
	assert.False(t, spec.AudioOnly)
	assert.Equal(t, FormatMP4, spec.Container)
}

func TestResolveStreamSpec_VideoHeightCap(t *testing.T) {
	spec, err := ResolveStreamSpec(FormatMP4, Quality1080p)

	require.NoError(t, err)
	// The selector caps at the requested height and degrades downward, so
	// an unavailable exact quality falls back instead of failing.
	assert.Equal(t,
		"bestvideo[height<=1080]+bestaudio/best[height<=1080]/bestvideo+bestaudio/best",
		spec.Selector)
	assert.Equal(t, Quality1080p, spec.RequestedQuality)
}

func TestResolveStreamSpec_AllVideoQualities(t *testing.T) {
	for quality, height := range qualityHeights {
		spec, err := ResolveStreamSpec(FormatWebM, quality)
		require.NoError(t, err)
		assert.Contains(t, spec.Selector, "height<=", "quality %s", quality)
		assert.Equal(t, height, quality.Height())
	}
}

func TestResolveStreamSpec_InvalidFormat(t *testing.T) {
	_, err := ResolveStreamSpec("avi", QualityBest)

	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "format", optErr.Field)
}

func TestResolveStreamSpec_InvalidVideoQuality(t *testing.T) {
	_, err := ResolveStreamSpec(FormatMP4, "4k")

	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "quality", optErr.Field)
}
