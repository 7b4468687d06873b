package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

func writeListFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRequestList_PlainList(t *testing.T) {
	path := writeListFile(t, "urls.txt", `
# favorites
https://youtu.be/aaa

https://youtu.be/bbb
`)

	requests, err := LoadRequestList(path, domain.FormatMP4, domain.Quality720p)

	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "https://youtu.be/aaa", requests[0].URL)
	assert.Equal(t, domain.FormatMP4, requests[0].Format)
	assert.Equal(t, domain.Quality720p, requests[0].Quality)
}

func TestLoadRequestList_PlainListInvalidLine(t *testing.T) {
	path := writeListFile(t, "urls.txt", "https://youtu.be/good\nnot-a-url\n")

	_, err := LoadRequestList(path, domain.FormatMP4, domain.QualityBest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 2")
}

func TestLoadRequestList_YAMLWithDefaultsAndOverrides(t *testing.T) {
	path := writeListFile(t, "batch.yaml", `
defaults:
  format: webm
  quality: 480p
videos:
  - url: https://youtu.be/aaa
  - url: https://youtu.be/bbb
    format: mp3
  - url: https://youtu.be/ccc
    quality: 1080p
`)

	requests, err := LoadRequestList(path, domain.FormatMP4, domain.QualityBest)

	require.NoError(t, err)
	require.Len(t, requests, 3)
	assert.Equal(t, domain.FormatWebM, requests[0].Format)
	assert.Equal(t, domain.Quality480p, requests[0].Quality)
	assert.Equal(t, domain.FormatMP3, requests[1].Format)
	assert.Equal(t, domain.Quality1080p, requests[2].Quality)
}

func TestLoadRequestList_YAMLMissingURL(t *testing.T) {
	path := writeListFile(t, "batch.yml", `
videos:
  - format: mp4
`)

	_, err := LoadRequestList(path, domain.FormatMP4, domain.QualityBest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 1")
}

func TestLoadRequestList_YAMLInvalidEntryFailsWholeLoad(t *testing.T) {
	path := writeListFile(t, "batch.yaml", `
videos:
  - url: https://youtu.be/good
  - url: https://youtu.be/bad
    format: avi
`)

	_, err := LoadRequestList(path, domain.FormatMP4, domain.QualityBest)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "entry 2")
}

func TestLoadRequestList_EmptySources(t *testing.T) {
	plain := writeListFile(t, "urls.txt", "# nothing\n\n")
	_, err := LoadRequestList(plain, domain.FormatMP4, domain.QualityBest)
	assert.Error(t, err)

	yaml := writeListFile(t, "batch.yaml", "videos: []\n")
	_, err = LoadRequestList(yaml, domain.FormatMP4, domain.QualityBest)
	assert.Error(t, err)
}

func TestLoadRequestList_MissingFile(t *testing.T) {
	_, err := LoadRequestList("/nonexistent/urls.txt", domain.FormatMP4, domain.QualityBest)
	assert.Error(t, err)
}
