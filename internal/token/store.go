// Package token implements the single-use submission token guard. A token is
// minted when the questionnaire is served and may be claimed exactly once
// within its TTL; expired tokens are swept lazily on the claim path.
package token

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"brief-service/internal/model"
	"brief-service/pkg/logger"
	"brief-service/prometheus"
)

// Store issues and claims submission tokens.
type Store interface {
	// Issue mints and registers a fresh token for one questionnaire render.
	Issue(ctx context.Context) (string, error)
	// Claim consumes the token. alreadyUsed is true when the token was
	// claimed before, expired, or never issued; only the first claim within
	// the TTL succeeds.
	Claim(ctx context.Context, token string) (alreadyUsed bool, err error)
}

// GormStore persists issued tokens in the database so claims survive process
// restarts and are shared across instances.
type GormStore struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewGormStore returns a database-backed store with the given TTL.
func NewGormStore(db *gorm.DB, ttl time.Duration) *GormStore {
	return &GormStore{db: db, ttl: ttl}
}

// Issue mints a random token and registers its issue time.
func (s *GormStore) Issue(ctx context.Context) (string, error) {
	defer prometheus.TrackDBOperation("token_issue")(time.Now())

	t := &model.SubmissionToken{Token: model.NewSubmitToken(), IssuedAt: time.Now().UTC()}
	if err := s.db.WithContext(ctx).Create(t).Error; err != nil {
		return "", err
	}
	return t.Token, nil
}

// Claim consumes the token by deleting its row, guarded by the TTL cutoff.
// The conditional delete keeps concurrent claims of the same token down to a
// single winner. A row that was already deleted, expired, or never existed
// claims nothing and reports alreadyUsed.
func (s *GormStore) Claim(ctx context.Context, token string) (bool, error) {
	defer prometheus.TrackDBOperation("token_claim")(time.Now())

	s.sweep(ctx)

	cutoff := time.Now().UTC().Add(-s.ttl)
	res := s.db.WithContext(ctx).
		Where("token = ? AND issued_at >= ?", token, cutoff).
		Delete(&model.SubmissionToken{})
	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		prometheus.TokenClaimCounter.WithLabelValues("replay").Inc()
		return true, nil
	}
	prometheus.TokenClaimCounter.WithLabelValues("first_use").Inc()
	return false, nil
}

// sweep deletes rows past the TTL. Sweep failures never fail a claim; the
// cutoff in Claim already refuses expired tokens, so a lingering row only
// costs storage.
func (s *GormStore) sweep(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-s.ttl)
	if err := s.db.WithContext(ctx).
		Where("issued_at < ?", cutoff).
		Delete(&model.SubmissionToken{}).Error; err != nil {
		logger.GetLogger().Warn("submission token sweep failed", zap.Error(err))
	}
}

// MemoryStore is an in-process store used by tests and single-instance runs.
type MemoryStore struct {
	mu     sync.Mutex
	ttl    time.Duration
	issued map[string]time.Time
}

// NewMemoryStore returns an in-memory store with the given TTL.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, issued: make(map[string]time.Time)}
}

// Issue mints and registers a random token.
func (s *MemoryStore) Issue(ctx context.Context) (string, error) {
	t := model.NewSubmitToken()
	s.mu.Lock()
	s.issued[t] = time.Now().UTC()
	s.mu.Unlock()
	return t, nil
}

// Claim consumes the token under the mutex; expired entries are dropped first.
func (s *MemoryStore) Claim(ctx context.Context, token string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	for t, at := range s.issued {
		if now.Sub(at) > s.ttl {
			delete(s.issued, t)
		}
	}

	if _, ok := s.issued[token]; !ok {
		prometheus.TokenClaimCounter.WithLabelValues("replay").Inc()
		return true, nil
	}
	delete(s.issued, token)
	prometheus.TokenClaimCounter.WithLabelValues("first_use").Inc()
	return false, nil
}
