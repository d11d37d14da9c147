package seed

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/auth"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
)

// Options controls what CreateDefaultData creates
type Options struct {
	AdminEmail    string
	AdminPassword string
	// AcademicYear is the "YYYY-YYYY" name of the year made current when none is; empty derives it from Now
	AcademicYear string
	Now          time.Time
}

// Result reports what CreateDefaultData created
type Result struct {
	AdminCreated bool
	AcademicYear *models.AcademicYear
	YearCreated  bool
}

// CreateDefaultData creates the super admin and a current academic year when they are missing.
// Running it again changes nothing.
func CreateDefaultData(ctx context.Context, repos *repositories.Repositories, opts Options, lgr zerolog.Logger) (*Result, error) {
	if opts.Now.IsZero() {
		opts.Now = time.Now()
	}
	result := &Result{}
	var finalErr error

	created, err := ensureSuperAdmin(ctx, repos, opts, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating super admin")
		finalErr = errors.Join(finalErr, err)
	}
	result.AdminCreated = created

	year, yearCreated, err := ensureCurrentAcademicYear(ctx, repos, opts)
	if err != nil {
		lgr.Error().Err(err).Msg("Error creating current academic year")
		finalErr = errors.Join(finalErr, err)
	} else {
		result.AcademicYear, result.YearCreated = year, yearCreated
		lgr.Info().Str("year", year.Year).Bool("created", yearCreated).Msg("Current academic year ready")
	}

	return result, finalErr
}

func ensureSuperAdmin(ctx context.Context, repos *repositories.Repositories, opts Options, lgr zerolog.Logger) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(opts.AdminEmail))
	if email == "" {
		return false, nil
	}

	exists, err := repos.Users.EmailExists(ctx, email)
	if err != nil {
		return false, fmt.Errorf("error checking super admin: %w", err)
	}
	if exists {
		lgr.Debug().Str("email", email).Msg("Super admin already exists")
		return false, nil
	}
	if opts.AdminPassword == "" {
		lgr.Warn().Str("email", email).Msg("No seed admin password configured, skipping super admin")
		return false, nil
	}

	hash, err := auth.HashPassword(opts.AdminPassword)
	if err != nil {
		return false, fmt.Errorf("error hashing super admin password: %w", err)
	}
	if _, err := repos.Users.Create(ctx, &models.User{
		Email:    email,
		Password: hash,
		Role:     models.RoleSuperAdmin,
		IsActive: true,
	}); err != nil {
		return false, fmt.Errorf("error creating super admin: %w", err)
	}

	lgr.Info().Str("email", email).Msg("Super admin created")
	return true, nil
}

func ensureCurrentAcademicYear(ctx context.Context, repos *repositories.Repositories, opts Options) (*models.AcademicYear, bool, error) {
	current, err := repos.AcademicYears.GetCurrent(ctx)
	if err == nil {
		return current, false, nil
	}
	if !apperrors.Is(err, apperrors.ErrAcademicYearNotFound) {
		return nil, false, fmt.Errorf("error loading current academic year: %w", err)
	}

	name, start, end, err := academicYearSpan(opts.AcademicYear, opts.Now)
	if err != nil {
		return nil, false, err
	}

	var year *models.AcademicYear
	created := false
	err = repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		existing, err := repos.AcademicYears.GetByYear(ctx, name)
		switch {
		case err == nil:
			year = existing
		case apperrors.Is(err, apperrors.ErrAcademicYearNotFound):
			year = &models.AcademicYear{Year: name, StartDate: start, EndDate: end}
			if _, err := repos.AcademicYears.Create(ctx, year); err != nil {
				return fmt.Errorf("error creating academic year: %w", err)
			}
			created = true
		default:
			return fmt.Errorf("error loading academic year: %w", err)
		}
		return repos.AcademicYears.SetCurrent(ctx, year.ID)
	})
	if err != nil {
		return nil, false, err
	}
	year.IsCurrent = true
	return year, created, nil
}

// academicYearSpan resolves a "YYYY-YYYY" name to September 1 through June 30.
// An empty name picks the school year containing now, rolling over in August.
func academicYearSpan(name string, now time.Time) (string, time.Time, time.Time, error) {
	var first int
	if name = strings.TrimSpace(name); name == "" {
		first = now.Year()
		if now.Month() < time.August {
			first--
		}
		name = fmt.Sprintf("%d-%d", first, first+1)
	} else {
		var second int
		if _, err := fmt.Sscanf(name, "%d-%d", &first, &second); err != nil || second != first+1 {
			return "", time.Time{}, time.Time{}, fmt.Errorf("invalid academic year %q, expected YYYY-YYYY", name)
		}
	}

	start, err := helpers.ParseDate(fmt.Sprintf("%04d-09-01", first))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	end, err := helpers.ParseDate(fmt.Sprintf("%04d-06-30", first+1))
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}
	return name, start, end, nil
}
