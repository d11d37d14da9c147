package memory

import (
	"context"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// TokenRepository is the in-memory refresh token table
type TokenRepository struct {
	db *DB
}

// CreateToken stores a refresh token
func (r *TokenRepository) CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error {
	defer r.db.lock(ctx)()

	if _, exists := r.db.tokens[token]; exists {
		return apperrors.ErrTokenInvalid
	}
	r.db.tokenSeq++
	r.db.tokens[token] = &models.RefreshToken{
		ID:         r.db.tokenSeq,
		Token:      token,
		UserID:     userID,
		ExpiryDate: expiryDate,
		CreatedAt:  r.db.now(),
	}
	return nil
}

// GetToken returns the stored token
func (r *TokenRepository) GetToken(ctx context.Context, token string) (*models.RefreshToken, error) {
	defer r.db.lock(ctx)()

	t, ok := r.db.tokens[token]
	if !ok {
		return nil, apperrors.ErrTokenNotFound
	}
	c := *t
	return &c, nil
}

// RevokeToken revokes one token
func (r *TokenRepository) RevokeToken(ctx context.Context, token string) error {
	defer r.db.lock(ctx)()

	t, ok := r.db.tokens[token]
	if !ok {
		return apperrors.ErrTokenNotFound
	}
	t.IsRevoked = true
	return nil
}

// RevokeAllUserTokens revokes every token of a user
func (r *TokenRepository) RevokeAllUserTokens(ctx context.Context, userID int64) error {
	defer r.db.lock(ctx)()

	for _, t := range r.db.tokens {
		if t.UserID == userID {
			t.IsRevoked = true
		}
	}
	return nil
}

// CleanupExpiredTokens drops expired tokens and revoked tokens older than 30 days
func (r *TokenRepository) CleanupExpiredTokens(ctx context.Context, now time.Time) (int64, error) {
	defer r.db.lock(ctx)()

	var n int64
	cutoff := now.Add(-30 * 24 * time.Hour)
	for k, t := range r.db.tokens {
		if t.ExpiryDate.Before(now) || (t.IsRevoked && t.CreatedAt.Before(cutoff)) {
			delete(r.db.tokens, k)
			n++
		}
	}
	return n, nil
}
