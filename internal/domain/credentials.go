package domain

import "time"

// CredentialSource identifies where session cookies came from
type CredentialSource string

const (
	SourceNone    CredentialSource = "none"
	SourceFile    CredentialSource = "file"
	SourceChrome  CredentialSource = "browser:chrome"
	SourceFirefox CredentialSource = "browser:firefox"
	// SourceCache marks a context restored from the persisted cookie-cache
	// file of an earlier browser extraction.
	SourceCache CredentialSource = "cache"
)

// CredentialContext bundles session cookies with cache metadata. The cookie
// payload is a Netscape cookies.txt file on disk, which is what yt-dlp
// consumes directly. A context is immutable once built; refreshes swap in a
// whole new context.
type CredentialContext struct {
	Source     CredentialSource `json:"source"`
	CookieFile string           `json:"cookie_file,omitempty"`
	FetchedAt  time.Time        `json:"fetched_at"`
	// TTL of zero means the context never expires (explicit cookie files
	// are already persistent).
	TTL time.Duration `json:"ttl,omitempty"`
}

// Anonymous reports whether the context carries no cookies at all
func (c *CredentialContext) Anonymous() bool {
	return c == nil || c.Source == SourceNone || c.CookieFile == ""
}

// Expired reports whether the context has outlived its TTL
func (c *CredentialContext) Expired(now time.Time) bool {
	if c == nil {
		return true
	}
	if c.TTL == 0 {
		return false
	}
	return now.Sub(c.FetchedAt) >= c.TTL
}
