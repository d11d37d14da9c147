package memory

import (
	"context"
	"sort"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
)

// AcademicYearRepository is the in-memory academic year table plus the current-year pointer
type AcademicYearRepository struct {
	db *DB
}

func (r *AcademicYearRepository) view(y *models.AcademicYear) *models.AcademicYear {
	c := *y
	c.IsCurrent = y.ID == r.db.currentYearID
	return &c
}

// Create inserts an academic year
func (r *AcademicYearRepository) Create(ctx context.Context, year *models.AcademicYear) (int64, error) {
	defer r.db.lock(ctx)()

	for _, y := range r.db.years {
		if y.Year == year.Year {
			return 0, apperrors.ErrAcademicYearExists
		}
	}

	r.db.yearSeq++
	now := r.db.now()
	y := *year
	y.ID = r.db.yearSeq
	y.IsCurrent = false
	y.CreatedAt, y.UpdatedAt = now, now
	r.db.years[y.ID] = &y

	year.ID = y.ID
	year.CreatedAt, year.UpdatedAt = now, now
	return y.ID, nil
}

// GetByID fetches an academic year by id
func (r *AcademicYearRepository) GetByID(ctx context.Context, id int64) (*models.AcademicYear, error) {
	defer r.db.lock(ctx)()

	y, ok := r.db.years[id]
	if !ok {
		return nil, apperrors.ErrAcademicYearNotFound
	}
	return r.view(y), nil
}

// GetByYear fetches an academic year by its label
func (r *AcademicYearRepository) GetByYear(ctx context.Context, year string) (*models.AcademicYear, error) {
	defer r.db.lock(ctx)()

	for _, y := range r.db.years {
		if y.Year == year {
			return r.view(y), nil
		}
	}
	return nil, apperrors.ErrAcademicYearNotFound
}

// List returns all academic years, latest start first
func (r *AcademicYearRepository) List(ctx context.Context) ([]models.AcademicYear, error) {
	defer r.db.lock(ctx)()

	out := make([]models.AcademicYear, 0, len(r.db.years))
	for _, y := range r.db.years {
		out = append(out, *r.view(y))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.After(out[j].StartDate)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

// GetCurrent follows the current-year pointer
func (r *AcademicYearRepository) GetCurrent(ctx context.Context) (*models.AcademicYear, error) {
	defer r.db.lock(ctx)()

	y, ok := r.db.years[r.db.currentYearID]
	if !ok {
		return nil, apperrors.ErrAcademicYearNotFound
	}
	return r.view(y), nil
}

// Update writes year, start and end date
func (r *AcademicYearRepository) Update(ctx context.Context, year *models.AcademicYear) error {
	defer r.db.lock(ctx)()

	y, ok := r.db.years[year.ID]
	if !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	for _, other := range r.db.years {
		if other.ID != year.ID && other.Year == year.Year {
			return apperrors.ErrAcademicYearExists
		}
	}
	y.Year, y.StartDate, y.EndDate = year.Year, year.StartDate, year.EndDate
	y.UpdatedAt = r.db.now()
	return nil
}

// SetCurrent points the school at the given year
func (r *AcademicYearRepository) SetCurrent(ctx context.Context, id int64) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.years[id]; !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	r.db.currentYearID = id
	return nil
}

// Delete removes a year that no class references
func (r *AcademicYearRepository) Delete(ctx context.Context, id int64) error {
	defer r.db.lock(ctx)()

	if _, ok := r.db.years[id]; !ok {
		return apperrors.ErrAcademicYearNotFound
	}
	for _, c := range r.db.classes {
		if c.AcademicYearID == id {
			return apperrors.ErrAcademicYearInUse
		}
	}
	delete(r.db.years, id)
	if r.db.currentYearID == id {
		r.db.currentYearID = 0
	}
	return nil
}
