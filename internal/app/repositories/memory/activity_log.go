package memory

import (
	"context"
	"sort"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// ActivityLogRepository keeps audit entries in a slice, using the same id format as the Mongo collection
type ActivityLogRepository struct {
	db *DB
}

func copyMetadata(m map[string]interface{}) map[string]interface{} {
	if m == nil {
		return nil
	}
	c := make(map[string]interface{}, len(m))
	for k, v := range m {
		c[k] = v
	}
	return c
}

// Create appends an entry and fills its id
func (r *ActivityLogRepository) Create(ctx context.Context, entry *models.ActivityLog) error {
	defer r.db.lock(ctx)()

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = r.db.now()
	}
	entry.ID = primitive.NewObjectID().Hex()

	c := *entry
	c.Metadata = copyMetadata(entry.Metadata)
	r.db.logs = append(r.db.logs, c)
	return nil
}

func matchLog(l *models.ActivityLog, filter models.ActivityLogFilter) bool {
	switch {
	case filter.UserID > 0 && l.UserID != filter.UserID:
		return false
	case filter.UserRole != "" && l.UserRole != filter.UserRole:
		return false
	case filter.Module != "" && l.Module != filter.Module:
		return false
	case filter.Action != "" && l.Action != filter.Action:
		return false
	case filter.StartDate != nil && l.CreatedAt.Before(*filter.StartDate):
		return false
	case filter.EndDate != nil && l.CreatedAt.After(*filter.EndDate):
		return false
	}
	return true
}

// List returns one page of entries, newest first
func (r *ActivityLogRepository) List(ctx context.Context, filter models.ActivityLogFilter, offset uint64, limit int) ([]models.ActivityLog, int64, error) {
	defer r.db.lock(ctx)()

	all := make([]models.ActivityLog, 0)
	for i := len(r.db.logs) - 1; i >= 0; i-- {
		if matchLog(&r.db.logs[i], filter) {
			l := r.db.logs[i]
			l.Metadata = copyMetadata(l.Metadata)
			all = append(all, l)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })

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

// GetByID fetches one entry
func (r *ActivityLogRepository) GetByID(ctx context.Context, id string) (*models.ActivityLog, error) {
	defer r.db.lock(ctx)()

	for i := range r.db.logs {
		if r.db.logs[i].ID == id {
			l := r.db.logs[i]
			l.Metadata = copyMetadata(l.Metadata)
			return &l, nil
		}
	}
	return nil, apperrors.ErrActivityLogNotFound
}
