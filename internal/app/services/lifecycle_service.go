package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/yigit/schoolhub/internal/app/models"
	"github.com/yigit/schoolhub/internal/app/models/dto"
	"github.com/yigit/schoolhub/internal/app/repositories"
	"github.com/yigit/schoolhub/internal/pkg/apperrors"
	"github.com/yigit/schoolhub/internal/pkg/helpers"
	"github.com/yigit/schoolhub/internal/pkg/logger"
	"github.com/yigit/schoolhub/internal/pkg/metrics"
)

// LifecycleService moves students between classes and out of the school
type LifecycleService interface {
	PromoteStudent(ctx context.Context, actor Actor, studentID int64, req *dto.PromoteStudentRequest) (*models.Student, error)
	BulkPromote(ctx context.Context, actor Actor, req *dto.BulkPromoteRequest) (*dto.BulkPromoteResults, error)
	GraduateStudents(ctx context.Context, actor Actor, req *dto.GraduateStudentsRequest) ([]dto.GraduatedStudent, error)
	TransferStudent(ctx context.Context, actor Actor, studentID int64, req *dto.TransferStudentRequest) (*models.Student, error)
	PromotionPreview(ctx context.Context, query dto.PromotionPreviewQuery) (*dto.PromotionPreview, error)
}

type lifecycleServiceImpl struct {
	repos         *repositories.Repositories
	notifications NotificationService
	activity      ActivityService
}

// NewLifecycleService creates a new lifecycle service instance
func NewLifecycleService(repos *repositories.Repositories, notifications NotificationService, activity ActivityService) LifecycleService {
	return &lifecycleServiceImpl{repos: repos, notifications: notifications, activity: activity}
}

func (s *lifecycleServiceImpl) PromoteStudent(ctx context.Context, actor Actor, studentID int64, req *dto.PromoteStudentRequest) (*models.Student, error) {
	var (
		promoted *models.Student
		class    *models.Class
		from     models.Placement
		note     *models.Notification
	)

	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		student, err := loadStudent(ctx, s.repos.Students, studentID)
		if err != nil {
			return err
		}
		if !student.IsActive() {
			return apperrors.NewBadRequestError("Only active students can be promoted")
		}

		class, _, err = resolvePlacement(ctx, s.repos, req.NewClassID, req.NewSectionID, "Invalid class or section")
		if err != nil {
			return err
		}

		from = models.Placement{ClassID: student.ClassID, SectionID: student.SectionID, RollNumber: student.RollNumber}
		if req.NewSectionID != student.SectionID {
			if _, err := reserveSeats(ctx, s.repos.Sections, req.NewSectionID, 1, "New section is full"); err != nil {
				return err
			}
		}

		to := models.Placement{ClassID: req.NewClassID, SectionID: req.NewSectionID, RollNumber: req.NewRollNumber}
		if err := s.repos.Students.UpdatePlacement(ctx, student.ID, to); err != nil {
			return fmt.Errorf("error updating placement: %w", err)
		}
		if req.NewSectionID != student.SectionID {
			if err := s.repos.Sections.Release(ctx, student.SectionID, 1); err != nil {
				return fmt.Errorf("error releasing seat: %w", err)
			}
		}

		note, err = s.notifications.Create(ctx, student.UserID, "Class Promotion",
			"Congratulations! You have been promoted to "+class.Name, models.NotificationSuccess)
		if err != nil {
			return fmt.Errorf("error creating notification: %w", err)
		}

		promoted, err = s.repos.Students.GetByID(ctx, student.ID)
		return err
	})
	if err != nil {
		metrics.ObserveTransition("promote", metrics.OutcomeFailure, 1)
		return nil, err
	}
	metrics.ObserveTransition("promote", metrics.OutcomeSuccess, 1)
	s.notifications.Publish(note)

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionPromote,
		fmt.Sprintf("Promoted student %s (%s) to %s", promoted.FullName(), promoted.AdmissionNumber, class.Name),
		map[string]interface{}{
			"studentId":     promoted.ID,
			"fromClassId":   from.ClassID,
			"fromSectionId": from.SectionID,
			"toClassId":     promoted.ClassID,
			"toSectionId":   promoted.SectionID,
			"rollNumber":    promoted.RollNumber,
		})
	return promoted, nil
}

func (s *lifecycleServiceImpl) BulkPromote(ctx context.Context, actor Actor, req *dto.BulkPromoteRequest) (*dto.BulkPromoteResults, error) {
	if _, err := s.repos.Classes.GetByID(ctx, req.FromClassID); err != nil {
		if errors.Is(err, apperrors.ErrClassNotFound) {
			return nil, apperrors.NewBadRequestError("Invalid class or section")
		}
		return nil, fmt.Errorf("error retrieving class: %w", err)
	}
	toClass, toSection, err := resolvePlacement(ctx, s.repos, req.ToClassID, req.ToSectionID, "Invalid class or section")
	if err != nil {
		return nil, err
	}
	if req.AcademicYearID != 0 {
		if _, err := s.repos.AcademicYears.GetByID(ctx, req.AcademicYearID); err != nil {
			if errors.Is(err, apperrors.ErrAcademicYearNotFound) {
				return nil, apperrors.NewCustomError(apperrors.ErrAcademicYearNotFound, "Academic year not found")
			}
			return nil, fmt.Errorf("error retrieving academic year: %w", err)
		}
	}

	cohort, err := s.repos.Students.FindAll(ctx, models.StudentFilter{
		ClassID:    req.FromClassID,
		SectionID:  req.FromSectionID,
		Status:     models.StudentStatusActive,
		StudentIDs: req.StudentIDs,
	})
	if err != nil {
		return nil, fmt.Errorf("error finding students: %w", err)
	}
	if len(cohort) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "No students found to promote")
	}

	required := len(cohort)
	reserved, err := s.repos.Sections.Reserve(ctx, toSection.ID, required)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionFull) {
			metrics.SectionFull()
			metrics.ObserveTransition("bulk_promote", metrics.OutcomeFailure, required)
			return nil, apperrors.NewCustomError(apperrors.ErrSectionFull, fmt.Sprintf(
				"Not enough capacity in target section. Available: %d, Required: %d", reserved.Available(), required))
		}
		return nil, fmt.Errorf("error reserving seats: %w", err)
	}
	nextRoll := reserved.CurrentStrength - required + 1

	results := &dto.BulkPromoteResults{
		Successful: make([]dto.BulkPromoteSuccess, 0, required),
		Failed:     make([]dto.BulkFailure, 0),
	}
	for i := range cohort {
		student := &cohort[i]
		roll := nextRoll + i

		note, err := s.promoteReserved(ctx, student, toClass, toSection, roll)
		if err != nil {
			results.Failed = append(results.Failed, dto.BulkFailure{
				AdmissionNumber: student.AdmissionNumber,
				Name:            student.FullName(),
				Reason:          failureReason(err, "bulk promote"),
			})
			continue
		}
		s.notifications.Publish(note)
		results.Successful = append(results.Successful, dto.BulkPromoteSuccess{
			AdmissionNumber: student.AdmissionNumber,
			Name:            student.FullName(),
			NewClass:        toClass.Name,
			NewSection:      toSection.Name,
			RollNumber:      roll,
		})
	}

	if unused := required - len(results.Successful); unused > 0 {
		if err := s.repos.Sections.Release(context.WithoutCancel(ctx), toSection.ID, unused); err != nil {
			logger.Error().Err(err).Int64("sectionID", toSection.ID).Int("seats", unused).
				Msg("Failed to release unused promotion seats, run reconcile-sections")
		}
	}

	metrics.ObserveTransition("bulk_promote", metrics.OutcomeSuccess, len(results.Successful))
	metrics.ObserveTransition("bulk_promote", metrics.OutcomeFailure, len(results.Failed))

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionBulkPromote,
		fmt.Sprintf("Promoted %d students to %s %s", len(results.Successful), toClass.Name, toSection.Name),
		map[string]interface{}{
			"fromClassId":    req.FromClassID,
			"fromSectionId":  req.FromSectionID,
			"toClassId":      toClass.ID,
			"toSectionId":    toSection.ID,
			"academicYearId": req.AcademicYearID,
			"successful":     len(results.Successful),
			"failed":         len(results.Failed),
		})
	return results, nil
}

// promoteReserved moves one student into a seat already reserved in section
func (s *lifecycleServiceImpl) promoteReserved(ctx context.Context, student *models.Student, class *models.Class, section *models.Section, roll int) (*models.Notification, error) {
	var note *models.Notification
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		current, err := loadStudent(ctx, s.repos.Students, student.ID)
		if err != nil {
			return err
		}
		if !current.IsActive() {
			return apperrors.NewBadRequestError("Student is no longer active")
		}

		to := models.Placement{ClassID: class.ID, SectionID: section.ID, RollNumber: roll}
		if err := s.repos.Students.UpdatePlacement(ctx, current.ID, to); err != nil {
			return fmt.Errorf("error updating placement: %w", err)
		}
		// a student already in the target section gives back the extra seat
		if err := s.repos.Sections.Release(ctx, current.SectionID, 1); err != nil {
			return fmt.Errorf("error releasing seat: %w", err)
		}

		note, err = s.notifications.Create(ctx, current.UserID, "Class Promotion",
			"Congratulations! You have been promoted to "+class.Name, models.NotificationSuccess)
		return err
	})
	return note, err
}

func (s *lifecycleServiceImpl) GraduateStudents(ctx context.Context, actor Actor, req *dto.GraduateStudentsRequest) ([]dto.GraduatedStudent, error) {
	if len(req.StudentIDs) == 0 && req.ClassID == 0 {
		return nil, apperrors.NewBadRequestError("Please provide studentIds or classId")
	}

	filter := models.StudentFilter{Status: models.StudentStatusActive}
	if len(req.StudentIDs) > 0 {
		filter.StudentIDs = req.StudentIDs
	} else {
		filter.ClassID = req.ClassID
		filter.SectionID = req.SectionID
	}
	candidates, err := s.repos.Students.FindAll(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("error finding students: %w", err)
	}
	if len(candidates) == 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrStudentNotFound, "No students found to graduate")
	}

	graduated := make([]dto.GraduatedStudent, 0, len(candidates))
	failed := 0
	for i := range candidates {
		student := &candidates[i]
		var note *models.Notification

		err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
			// the cohort read is outside the transaction; the seat goes back to the section the student holds now
			current, err := loadStudent(ctx, s.repos.Students, student.ID)
			if err != nil || !current.IsActive() {
				return err
			}
			ok, err := s.repos.Students.TransitionStatus(ctx, current.ID, models.StudentStatusActive, models.StudentStatusGraduated)
			if err != nil || !ok {
				return err
			}
			if err := s.repos.Sections.Release(ctx, current.SectionID, 1); err != nil {
				return fmt.Errorf("error releasing seat: %w", err)
			}
			note, err = s.notifications.Create(ctx, student.UserID, "Congratulations!",
				"You have successfully graduated!", models.NotificationSuccess)
			return err
		})
		if err != nil {
			failed++
			logger.Error().Err(err).Int64("studentID", student.ID).Msg("Failed to graduate student")
			continue
		}
		// graduated concurrently by someone else
		if note == nil {
			continue
		}

		s.notifications.Publish(note)
		graduated = append(graduated, dto.GraduatedStudent{
			AdmissionNumber: student.AdmissionNumber,
			Name:            student.FullName(),
		})
	}

	metrics.ObserveTransition("graduate", metrics.OutcomeSuccess, len(graduated))
	metrics.ObserveTransition("graduate", metrics.OutcomeFailure, failed)

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionGraduate,
		fmt.Sprintf("Graduated %d students", len(graduated)),
		map[string]interface{}{
			"studentIds": req.StudentIDs,
			"classId":    req.ClassID,
			"sectionId":  req.SectionID,
			"graduated":  len(graduated),
		})
	return graduated, nil
}

func (s *lifecycleServiceImpl) TransferStudent(ctx context.Context, actor Actor, studentID int64, req *dto.TransferStudentRequest) (*models.Student, error) {
	transferDate := time.Now().UTC()
	if d, err := helpers.ParseOptionalDate(strings.TrimSpace(req.TransferDate)); err != nil {
		return nil, apperrors.NewBadRequestError("Invalid transferDate, expected YYYY-MM-DD")
	} else if d != nil {
		transferDate = *d
	}
	school := strings.TrimSpace(req.TransferSchool)

	var (
		transferred *models.Student
		note        *models.Notification
	)
	err := s.repos.Tx.WithinTransaction(ctx, func(ctx context.Context) error {
		student, err := loadStudent(ctx, s.repos.Students, studentID)
		if err != nil {
			return err
		}
		if student.Status == models.StudentStatusTransferred {
			return apperrors.NewBadRequestError("Student already transferred")
		}

		ok, err := s.repos.Students.TransitionStatus(ctx, student.ID, student.Status, models.StudentStatusTransferred)
		if err != nil {
			return fmt.Errorf("error updating status: %w", err)
		}
		if !ok {
			return apperrors.NewBadRequestError("Student already transferred")
		}
		if student.IsActive() {
			if err := s.repos.Sections.Release(ctx, student.SectionID, 1); err != nil {
				return fmt.Errorf("error releasing seat: %w", err)
			}
		}

		if err := s.repos.Users.SetActive(ctx, student.UserID, false); err != nil && !errors.Is(err, apperrors.ErrUserNotFound) {
			return fmt.Errorf("error deactivating account: %w", err)
		}
		if err := s.repos.Tokens.RevokeAllUserTokens(ctx, student.UserID); err != nil {
			return fmt.Errorf("error revoking tokens: %w", err)
		}

		note, err = s.notifications.Create(ctx, student.UserID, "Transfer Notification",
			"Your transfer to "+school+" has been processed", models.NotificationInfo)
		if err != nil {
			return fmt.Errorf("error creating notification: %w", err)
		}

		transferred, err = s.repos.Students.GetByID(ctx, student.ID)
		return err
	})
	if err != nil {
		metrics.ObserveTransition("transfer", metrics.OutcomeFailure, 1)
		return nil, err
	}
	metrics.ObserveTransition("transfer", metrics.OutcomeSuccess, 1)
	s.notifications.Publish(note)

	s.activity.Record(ctx, actor, models.ModuleStudent, models.ActionTransfer,
		fmt.Sprintf("Transferred student %s (%s) to %s", transferred.FullName(), transferred.AdmissionNumber, school),
		map[string]interface{}{
			"studentId":      transferred.ID,
			"transferSchool": school,
			"transferDate":   transferDate.Format(helpers.DateLayout),
			"reason":         req.Reason,
		})
	return transferred, nil
}

func (s *lifecycleServiceImpl) PromotionPreview(ctx context.Context, query dto.PromotionPreviewQuery) (*dto.PromotionPreview, error) {
	if query.FromClassID <= 0 || query.ToSectionID <= 0 {
		return nil, apperrors.NewBadRequestError("Please provide fromClassId and toSectionId")
	}

	section, err := s.repos.Sections.GetByID(ctx, query.ToSectionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrSectionNotFound) {
			return nil, apperrors.NewCustomError(apperrors.ErrSectionNotFound, "Target section not found")
		}
		return nil, fmt.Errorf("error retrieving section: %w", err)
	}
	var className string
	if class, err := s.repos.Classes.GetByID(ctx, section.ClassID); err == nil {
		className = class.Name
	}

	students, err := s.repos.Students.FindAll(ctx, models.StudentFilter{
		ClassID:   query.FromClassID,
		SectionID: query.FromSectionID,
		Status:    models.StudentStatusActive,
	})
	if err != nil {
		return nil, fmt.Errorf("error finding students: %w", err)
	}

	preview := &dto.PromotionPreview{
		TotalStudents: len(students),
		TargetSection: dto.PreviewTargetSection{
			Name:              section.Name,
			ClassName:         className,
			Capacity:          section.Capacity,
			CurrentStrength:   section.CurrentStrength,
			AvailableCapacity: section.Available(),
		},
		CanPromoteAll: section.Available() >= len(students),
		Students:      make([]dto.PreviewStudent, 0, len(students)),
	}
	for i := range students {
		preview.Students = append(preview.Students, dto.NewPreviewStudent(&students[i]))
	}
	return preview, nil
}
