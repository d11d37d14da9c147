package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// UserRepository is the in-memory user table
type UserRepository struct {
	db *DB
}

func (r *UserRepository) findByEmail(email string) *models.User {
	email = strings.ToLower(strings.TrimSpace(email))
	for _, u := range r.db.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

// Create inserts a user
func (r *UserRepository) Create(ctx context.Context, user *models.User) (int64, error) {
	defer r.db.lock(ctx)()

	if r.findByEmail(user.Email) != nil {
		return 0, apperrors.ErrEmailAlreadyExists
	}

	r.db.userSeq++
	now := r.db.now()
	u := *user
	u.ID = r.db.userSeq
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.CreatedAt, u.UpdatedAt = now, now
	r.db.users[u.ID] = &u

	user.ID, user.Email, user.CreatedAt, user.UpdatedAt = u.ID, u.Email, now, now
	return u.ID, nil
}

// GetByID fetches a user by id
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	defer r.db.lock(ctx)()

	u, ok := r.db.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// GetByEmail fetches a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	defer r.db.lock(ctx)()

	u := r.findByEmail(email)
	if u == nil {
		return nil, apperrors.ErrUserNotFound
	}
	c := *u
	return &c, nil
}

// EmailExists reports whether the email is taken
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	defer r.db.lock(ctx)()
	return r.findByEmail(email) != nil, nil
}

func matchUser(u *models.User, filter models.UserFilter) bool {
	if filter.Role != "" && u.Role != filter.Role {
		return false
	}
	if filter.IsActive != nil && u.IsActive != *filter.IsActive {
		return false
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		return strings.Contains(u.Email, term)
	}
	return true
}

// List returns one page of users ordered by email and the total count
func (r *UserRepository) List(ctx context.Context, filter models.UserFilter, offset uint64, limit int) ([]models.User, int64, error) {
	defer r.db.lock(ctx)()

	all := make([]models.User, 0)
	for _, u := range r.db.users {
		if matchUser(u, filter) {
			all = append(all, *u)
		}
	}
	sort.Slice(all, func(i, j int) bool { return all[i].Email < all[j].Email })

	total := int64(len(all))
	start := int(offset)
	if start > len(all) {
		start = len(all)
	}
	end := len(all)
	if limit > 0 && start+limit < end {
		end = start + limit
	}
	return all[start:end], total, nil
}

func (r *UserRepository) update(ctx context.Context, id int64, fn func(u *models.User)) error {
	defer r.db.lock(ctx)()

	u, ok := r.db.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	fn(u)
	u.UpdatedAt = r.db.now()
	return nil
}

// SetProfileID links the user to its profile
func (r *UserRepository) SetProfileID(ctx context.Context, userID, profileID int64) error {
	return r.update(ctx, userID, func(u *models.User) { u.ProfileID = &profileID })
}

// SetActive activates or suspends the account
func (r *UserRepository) SetActive(ctx context.Context, userID int64, active bool) error {
	return r.update(ctx, userID, func(u *models.User) { u.IsActive = active })
}

// UpdateLastLogin records a login
func (r *UserRepository) UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error {
	return r.update(ctx, userID, func(u *models.User) { u.LastLoginAt = &at })
}

// UpdatePassword stores a new hash
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, hash string) error {
	return r.update(ctx, userID, func(u *models.User) { u.Password = hash })
}

// Delete removes the account and its refresh tokens
func (r *UserRepository) Delete(ctx context.Context, userID int64) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.users[userID]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(r.db.users, userID)
	for k, t := range r.db.tokens {
		if t.UserID == userID {
			delete(r.db.tokens, k)
		}
	}
	return nil
}
