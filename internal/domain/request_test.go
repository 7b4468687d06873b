package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDownloadRequest(t *testing.T) {
	req, err := NewDownloadRequest("https://www.youtube.com/watch?v=abc123", FormatMP4, Quality1080p)

	require.NoError(t, err)
	assert.Equal(t, "https://www.youtube.com/watch?v=abc123", req.URL)
	assert.Equal(t, FormatMP4, req.Format)
	assert.Equal(t, Quality1080p, req.Quality)
}

func TestNewDownloadRequest_InvalidURL(t *testing.T) {
	cases := []string{
		"",
		"not a url",
		"ftp://example.com/video",
		"youtube.com/watch?v=abc", // no scheme
	}
	for _, raw := range cases {
		_, err := NewDownloadRequest(raw, FormatMP4, QualityBest)
		assert.Error(t, err, "url %q should be rejected", raw)
		var optErr *InvalidOptionError
		assert.ErrorAs(t, err, &optErr)
		assert.Equal(t, "url", optErr.Field)
	}
}

func TestNewDownloadRequest_InvalidFormat(t *testing.T) {
	_, err := NewDownloadRequest("https://youtu.be/abc", "avi", QualityBest)

	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "format", optErr.Field)
	assert.Equal(t, "avi", optErr.Value)
}

func TestNewDownloadRequest_InvalidQualityForVideo(t *testing.T) {
	_, err := NewDownloadRequest("https://youtu.be/abc", FormatMP4, "999p")

	var optErr *InvalidOptionError
	require.ErrorAs(t, err, &optErr)
	assert.Equal(t, "quality", optErr.Field)
}

func TestNewDownloadRequest_QualityIgnoredForAudio(t *testing.T) {
	// Any quality token is accepted with an audio-only format; it has no
	// effect on resolution.
	req, err := NewDownloadRequest("https://youtu.be/abc", FormatMP3, "999p")
	require.NoError(t, err)
	assert.Equal(t, FormatMP3, req.Format)

	req, err = NewDownloadRequest("https://youtu.be/abc", FormatM4A, "")
	require.NoError(t, err)
	assert.Equal(t, FormatM4A, req.Format)
}

func TestFormat_AudioOnly(t *testing.T) {
	assert.True(t, FormatMP3.AudioOnly())
	assert.True(t, FormatM4A.AudioOnly())
	assert.False(t, FormatMP4.AudioOnly())
	assert.False(t, FormatWebM.AudioOnly())
	assert.False(t, FormatMKV.AudioOnly())
}

func TestQuality_Height(t *testing.T) {
	assert.Equal(t, 1080, Quality1080p.Height())
	assert.Equal(t, 720, Quality720p.Height())
	assert.Equal(t, 144, Quality144p.Height())
	assert.Equal(t, 0, QualityBest.Height())
}

func TestVideoID(t *testing.T) {
	cases := map[string]string{
		"https://www.youtube.com/watch?v=dQw4w9WgXcQ":       "dQw4w9WgXcQ",
		"https://youtube.com/watch?v=dQw4w9WgXcQ&t=42":      "dQw4w9WgXcQ",
		"https://youtu.be/dQw4w9WgXcQ":                      "dQw4w9WgXcQ",
		"https://www.youtube.com/shorts/abc123":             "abc123",
		"https://www.youtube.com/embed/abc123":              "abc123",
		"https://www.youtube.com/live/abc123":               "abc123",
		"https://m.youtube.com/watch?v=dQw4w9WgXcQ":         "dQw4w9WgXcQ",
		"https://music.youtube.com/watch?v=dQw4w9WgXcQ":     "dQw4w9WgXcQ",
	}
	for url, want := range cases {
		assert.Equal(t, want, VideoID(url), "url %s", url)
	}
}
