package domain

import "fmt"

// AudioBitrateKbps is the fixed conversion bitrate for audio-only formats
const AudioBitrateKbps = 192

// StreamSpec is the resolved, concrete description of which stream to
// request from the extractor. It parameterizes yt-dlp; the actual stream
// enumeration happens inside the extractor.
type StreamSpec struct {
	// Selector is the yt-dlp -f format expression
	Selector string `json:"selector"`
	// Container is the requested output container (mp4, webm, ...)
	Container Format `json:"container"`
	// AudioOnly selects extract-audio mode
	AudioOnly bool `json:"audio_only"`
	// AudioBitrate is the conversion bitrate in kbps (audio mode only)
	AudioBitrate int `json:"audio_bitrate,omitempty"`
	// RequestedQuality is what the user asked for; the effective quality
	// comes back from the extractor and is reported in the result.
	RequestedQuality Quality `json:"requested_quality,omitempty"`
}

// ResolveStreamSpec maps a (format, quality) pair to a StreamSpec.
//
// Audio-only formats always resolve to the best available audio stream and
// silently ignore quality, whatever its value. Video formats build a
// height-capped selector with fallback: yt-dlp picks the exact height when
// available, otherwise the nearest lower one, otherwise best. Unavailable
// exact quality is a degradation, never an error.
func ResolveStreamSpec(format Format, quality Quality) (StreamSpec, error) {
	if !ValidFormat(format) {
		return StreamSpec{}, &InvalidOptionError{Field: "format", Value: string(format)}
	}
	if format.AudioOnly() {
		return StreamSpec{
			Selector:     "bestaudio/best",
			Container:    format,
			AudioOnly:    true,
			AudioBitrate: AudioBitrateKbps,
		}, nil
	}
	if !ValidQuality(quality) {
		return StreamSpec{}, &InvalidOptionError{Field: "quality", Value: string(quality)}
	}
	selector := "bestvideo+bestaudio/best"
	if quality != QualityBest {
		h := quality.Height()
		// height<=N picks the exact height when present and otherwise
		// degrades downward; the trailing alternatives make sure a request
		// never fails just because nothing at or below N exists.
		selector = fmt.Sprintf("bestvideo[height<=%d]+bestaudio/best[height<=%d]/bestvideo+bestaudio/best", h, h)
	}
	return StreamSpec{
		Selector:         selector,
		Container:        format,
		RequestedQuality: quality,
	}, nil
}
