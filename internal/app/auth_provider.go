package app

import (
	"context"
	"os"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/yourusername/ytfetch-go/internal/domain"
)

// AuthProvider resolves session cookies for download attempts. Sources are
// tried in fixed priority order (explicit file, then browsers); a successful
// extraction is cached for its TTL so repeated requests within one batch do
// not pay the extraction cost again.
//
// The provider moves through Uninitialized -> Cached -> Expired -> Cached;
// Invalidate forces the Expired state immediately. All downstream callers
// share one provider instance, so the cached context is guarded by a mutex.
// Extraction itself runs outside the lock: concurrent readers see either the
// pre-refresh or the post-refresh context, never a torn one.
type AuthProvider struct {
	sources []domain.CookieSource
	ttl     time.Duration
	logger  *zap.Logger

	mu     sync.Mutex
	cached *domain.CredentialContext

	now func() time.Time
}

// NewAuthProvider creates an authentication provider over the given source
// chain. ttl applies to browser-extracted cookies; explicit cookie files
// never expire.
func NewAuthProvider(sources []domain.CookieSource, ttl time.Duration, logger *zap.Logger) *AuthProvider {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthProvider{
		sources: sources,
		ttl:     ttl,
		logger:  logger,
		now:     time.Now,
	}
}

// PreloadCache seeds the provider from a previously persisted cookie-cache
// file. A cache file younger than the TTL counts as a valid context, so a
// process restart does not force re-extraction.
func (p *AuthProvider) PreloadCache(cacheFile string) {
	info, err := os.Stat(cacheFile)
	if err != nil || info.Size() == 0 {
		return
	}
	if p.ttl > 0 && p.now().Sub(info.ModTime()) >= p.ttl {
		return
	}
	p.mu.Lock()
	p.cached = &domain.CredentialContext{
		Source:     domain.SourceCache,
		CookieFile: cacheFile,
		FetchedAt:  info.ModTime(),
		TTL:        p.ttl,
	}
	p.mu.Unlock()
	p.logger.Debug("Preloaded cookie cache",
		zap.String("file", cacheFile),
		zap.Time("fetched_at", info.ModTime()))
}

// GetCredentials returns the current credential context, extracting a fresh
// one when the cache is empty or expired. It never fails: when every source
// errors out, the returned context has SourceNone and downloads proceed
// unauthenticated.
func (p *AuthProvider) GetCredentials(ctx context.Context) *domain.CredentialContext {
	p.mu.Lock()
	if p.cached != nil && !p.cached.Expired(p.now()) {
		cached := p.cached
		p.mu.Unlock()
		return cached
	}
	p.mu.Unlock()

	fresh := p.extract(ctx)

	p.mu.Lock()
	defer p.mu.Unlock()
	// Another goroutine may have refreshed while we extracted; keep
	// whichever context is valid so readers never regress to none.
	if p.cached == nil || p.cached.Expired(p.now()) || p.cached.Anonymous() {
		p.cached = fresh
	}
	return p.cached
}

// Invalidate drops the cached context, forcing re-extraction on the next
// GetCredentials call. Called by the retry controller on an
// authentication-class download failure.
func (p *AuthProvider) Invalidate() {
	p.mu.Lock()
	p.cached = nil
	p.mu.Unlock()
	p.logger.Debug("Credential context invalidated")
}

// extract walks the source chain in priority order. Per-source failures are
// non-fatal; exhausting the chain yields an anonymous context.
func (p *AuthProvider) extract(ctx context.Context) *domain.CredentialContext {
	for _, source := range p.sources {
		cookieFile, err := source.Extract(ctx)
		if err != nil {
			p.logger.Debug("Cookie source failed, falling through",
				zap.String("source", string(source.Source())),
				zap.Error(err))
			continue
		}
		cred := &domain.CredentialContext{
			Source:     source.Source(),
			CookieFile: cookieFile,
			FetchedAt:  p.now(),
		}
		// Explicit cookie files are already persistent; only extracted
		// cookies age out.
		if source.Source() != domain.SourceFile {
			cred.TTL = p.ttl
		}
		p.logger.Info("Credentials resolved",
			zap.String("source", string(cred.Source)))
		return cred
	}
	p.logger.Warn("All cookie sources failed, proceeding unauthenticated")
	return &domain.CredentialContext{
		Source:    domain.SourceNone,
		FetchedAt: p.now(),
		TTL:       p.ttl,
	}
}
