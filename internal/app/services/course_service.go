package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/app/repositories"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/apperrors"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/dberrors"
)

// CourseService defines the interface for course-related operations
type CourseService interface {
	ListCourses(ctx context.Context) ([]*models.Course, error)
	GetCourse(ctx context.Context, id int64) (*models.Course, error)
	ListDepartments(ctx context.Context) ([]*models.Department, error)
	CreateCourse(ctx context.Context, course *models.Course) error
	UpdateCourse(ctx context.Context, course *models.Course) error
	DeleteCourse(ctx context.Context, id int64) error
	MultiplyCredits(ctx context.Context, multiplier int) (int64, error)
}

// courseServiceImpl implements the CourseService interface
type courseServiceImpl struct {
	courseRepo     repositories.Repository[models.Course]
	departmentRepo repositories.Repository[models.Department]
	now            func() time.Time
	logger         zerolog.Logger
}

// Option customises the course service
type Option func(*courseServiceImpl)

// WithClock replaces time.Now, which stamps added and modified dates.
func WithClock(now func() time.Time) Option {
	return func(s *courseServiceImpl) {
		s.now = now
	}
}

// NewCourseService creates a new course service instance
func NewCourseService(
	courseRepo repositories.Repository[models.Course],
	departmentRepo repositories.Repository[models.Department],
	lgr zerolog.Logger,
	opts ...Option,
) CourseService {
	s := &courseServiceImpl{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		now:            time.Now,
		logger:         lgr,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// ListCourses returns every course with its department
func (s *courseServiceImpl) ListCourses(ctx context.Context) ([]*models.Course, error) {
	courses, err := s.courseRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving courses: %w", err)
	}
	return courses, nil
}

// GetCourse returns one course with its department
func (s *courseServiceImpl) GetCourse(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.ErrCourseNotFound
	}

	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return course, nil
}

// ListDepartments returns the drop-down departments in the repository's name order
func (s *courseServiceImpl) ListDepartments(ctx context.Context) ([]*models.Department, error) {
	departments, err := s.departmentRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("error retrieving departments: %w", err)
	}
	return departments, nil
}

// CreateCourse inserts a bound and validated course
func (s *courseServiceImpl) CreateCourse(ctx context.Context, course *models.Course) error {
	course.ID = 0
	course.AddedDate = s.now().UTC()
	course.ModifiedDate = nil

	if err := s.courseRepo.Add(ctx, course); err != nil {
		s.logger.Warn().Err(err).Str("cause", storeFailureCause(err)).Str("courseNumber", course.CourseNumber).Msg("Failed to create course")
		return fmt.Errorf("error creating course: %w", err)
	}

	s.logger.Info().Int64("courseID", course.ID).Str("courseNumber", course.CourseNumber).Msg("Course created")
	return nil
}

// UpdateCourse stamps the modified date and persists the course. Any store failure
// is reported as apperrors.ErrCourseSaveFailed, wrapping the cause.
func (s *courseServiceImpl) UpdateCourse(ctx context.Context, course *models.Course) error {
	modified := s.now().UTC()
	course.ModifiedDate = &modified

	if err := s.courseRepo.Update(ctx, course); err != nil {
		s.logger.Warn().Err(err).Str("cause", storeFailureCause(err)).Int64("courseID", course.ID).Msg("Failed to save course changes")
		return fmt.Errorf("%w: %w", apperrors.ErrCourseSaveFailed, err)
	}

	s.logger.Info().Int64("courseID", course.ID).Msg("Course updated")
	return nil
}

// DeleteCourse removes a course. Deleting a course that no longer exists succeeds.
func (s *courseServiceImpl) DeleteCourse(ctx context.Context, id int64) error {
	err := s.courseRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn().Int64("courseID", id).Msg("Delete requested for a course that does not exist")
			return nil
		}
		return fmt.Errorf("error deleting course: %w", err)
	}

	s.logger.Info().Int64("courseID", id).Msg("Course deleted")
	return nil
}

// MultiplyCredits multiplies every course's credits in one statement
func (s *courseServiceImpl) MultiplyCredits(ctx context.Context, multiplier int) (int64, error) {
	sql, args, err := repositories.MultiplyCreditsSQL(multiplier)
	if err != nil {
		return 0, fmt.Errorf("failed to build credit update: %w", err)
	}

	affected, err := s.courseRepo.ExecuteSQL(ctx, sql, args...)
	if err != nil {
		return 0, fmt.Errorf("error updating course credits: %w", err)
	}

	s.logger.Info().Int("multiplier", multiplier).Int64("rowsAffected", affected).Msg("Course credits updated")
	return affected, nil
}

// storeFailureCause names the kind of store failure for the logs.
func storeFailureCause(err error) string {
	switch {
	case dberrors.IsForeignKeyViolation(err):
		return "foreign_key"
	case dberrors.IsConcurrencyError(err):
		return "concurrency"
	default:
		return "unknown"
	}
}
