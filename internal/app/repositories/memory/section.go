package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// SectionRepository is the in-memory section table. Counters change only under the store mutex.
type SectionRepository struct {
	db *DB
}

// Create inserts a section with zero strength
func (r *SectionRepository) Create(ctx context.Context, section *models.Section) (int64, error) {
	defer r.db.lock(ctx)()

	if _, ok := r.db.classes[section.ClassID]; !ok {
		return 0, apperrors.ErrClassNotFound
	}

	r.db.sectionSeq++
	now := r.db.now()
	s := *section
	s.ID = r.db.sectionSeq
	s.CurrentStrength = 0
	s.CreatedAt, s.UpdatedAt = now, now
	r.db.sections[s.ID] = &s

	*section = s
	return s.ID, nil
}

// GetByID fetches a section by id
func (r *SectionRepository) GetByID(ctx context.Context, id int64) (*models.Section, error) {
	defer r.db.lock(ctx)()

	s, ok := r.db.sections[id]
	if !ok {
		return nil, apperrors.ErrSectionNotFound
	}
	c := *s
	return &c, nil
}

// ListByClass returns the sections of a class ordered by name
func (r *SectionRepository) ListByClass(ctx context.Context, classID int64) ([]models.Section, error) {
	defer r.db.lock(ctx)()

	out := make([]models.Section, 0)
	for _, s := range r.db.sections {
		if s.ClassID == classID {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Reserve adds n seats if they fit
func (r *SectionRepository) Reserve(ctx context.Context, id int64, n int) (*models.Section, error) {
	if n <= 0 {
		return nil, fmt.Errorf("%w: reservation size must be positive", apperrors.ErrBadRequest)
	}
	defer r.db.lock(ctx)()

	s, ok := r.db.sections[id]
	if !ok {
		return nil, apperrors.ErrSectionNotFound
	}
	if s.CurrentStrength+n > s.Capacity {
		c := *s
		return &c, apperrors.ErrSectionFull
	}
	s.CurrentStrength += n
	s.UpdatedAt = r.db.now()
	c := *s
	return &c, nil
}

// Release frees n seats, clamping at zero
func (r *SectionRepository) Release(ctx context.Context, id int64, n int) error {
	if n <= 0 {
		return nil
	}
	defer r.db.lock(ctx)()

	s, ok := r.db.sections[id]
	if !ok {
		return apperrors.ErrSectionNotFound
	}
	s.CurrentStrength -= n
	if s.CurrentStrength < 0 {
		s.CurrentStrength = 0
	}
	s.UpdatedAt = r.db.now()
	return nil
}

// Reconcile recomputes all counters from active students
func (r *SectionRepository) Reconcile(ctx context.Context) ([]models.SectionDrift, error) {
	defer r.db.lock(ctx)()

	actual := make(map[int64]int, len(r.db.sections))
	for _, st := range r.db.students {
		if st.IsActive() {
			actual[st.SectionID]++
		}
	}

	drifts := make([]models.SectionDrift, 0)
	now := r.db.now()
	for id, s := range r.db.sections {
		if s.CurrentStrength == actual[id] {
			continue
		}
		drifts = append(drifts, models.SectionDrift{SectionID: id, Stored: s.CurrentStrength, Actual: actual[id]})
		s.CurrentStrength = actual[id]
		if s.CurrentStrength > s.Capacity {
			s.CurrentStrength = s.Capacity
		}
		s.UpdatedAt = now
	}
	sort.Slice(drifts, func(i, j int) bool { return drifts[i].SectionID < drifts[j].SectionID })
	return drifts, nil
}
