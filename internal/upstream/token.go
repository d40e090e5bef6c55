package upstream

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/servicedesk-proxy/internal/observability"
	apperrors "github.com/spec-kit/servicedesk-proxy/pkg/util"
)

// tokenSafetyMargin is subtracted from the upstream-reported lifetime so a
// token is never presented right at its expiry instant (clock skew, in-flight
// latency).
const tokenSafetyMargin = 300 * time.Second

// TokenAcquirer performs one credentials-for-token exchange against the
// upstream authorization endpoint.
type TokenAcquirer interface {
	Acquire(ctx context.Context) (token string, expiresInSeconds int, err error)
}

// TokenSource caches a single bearer token for the upstream account.
//
// Contract: refreshes are serialized under the mutex, so concurrent callers
// hitting an expired cache coalesce into one acquisition instead of racing
// their own. A failed acquisition leaves the cache untouched and surfaces to
// the caller as an auth failure.
type TokenSource struct {
	mu       sync.Mutex
	acquirer TokenAcquirer
	nowFn    func() time.Time
	logger   *zap.Logger
	metrics  *observability.Metrics

	token     string
	expiresAt time.Time
}

// NewTokenSource builds a token cache around the given acquirer.
func NewTokenSource(acquirer TokenAcquirer, logger *zap.Logger, metrics *observability.Metrics) *TokenSource {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &TokenSource{
		acquirer: acquirer,
		nowFn:    time.Now,
		logger:   logger,
		metrics:  metrics,
	}
}

// Token returns the cached token when still valid, otherwise acquires a
// fresh one and caches it. The stored expiry is
// acquisition time + (reported lifetime - safety margin).
func (s *TokenSource) Token(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && s.nowFn().Before(s.expiresAt) {
		s.metrics.RecordTokenCacheHit()
		return s.token, nil
	}

	token, expiresIn, err := s.acquirer.Acquire(ctx)
	if err != nil {
		s.logger.Warn("token acquisition failed", zap.Error(err))
		return "", apperrors.NewAuthFailure(err)
	}

	s.token = token
	s.expiresAt = s.nowFn().Add(time.Duration(expiresIn)*time.Second - tokenSafetyMargin)
	s.metrics.RecordTokenRefresh()
	s.logger.Info("token refreshed", zap.Time("expires_at", s.expiresAt))
	return s.token, nil
}

// Cached reports whether a currently valid token is held.
func (s *TokenSource) Cached() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token != "" && s.nowFn().Before(s.expiresAt)
}
