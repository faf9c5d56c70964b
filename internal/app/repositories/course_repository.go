package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/logger"
)

var courseColumns = []string{
	"c.id", "c.course_number", "c.title", "c.credits", "c.department_id", "c.added_date", "c.modified_date",
	"d.id", "d.name", "d.budget", "d.start_date",
}

// CourseRepository handles course database operations. Reads always join the
// owning department.
type CourseRepository struct {
	db DBTX
	sb squirrel.StatementBuilderType
}

var _ Repository[models.Course] = (*CourseRepository)(nil)

// NewCourseRepository creates a new CourseRepository
func NewCourseRepository(db DBTX) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

func (r *CourseRepository) selectCourses() squirrel.SelectBuilder {
	return r.sb.Select(courseColumns...).
		From("courses c").
		Join("departments d ON d.id = c.department_id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	course := &models.Course{Department: &models.Department{}}
	err := row.Scan(
		&course.ID,
		&course.CourseNumber,
		&course.Title,
		&course.Credits,
		&course.DepartmentID,
		&course.AddedDate,
		&course.ModifiedDate,
		&course.Department.ID,
		&course.Department.Name,
		&course.Department.Budget,
		&course.Department.StartDate,
	)
	if err != nil {
		return nil, err
	}
	return course, nil
}

// GetAll retrieves every course with its department, ordered by id
func (r *CourseRepository) GetAll(ctx context.Context) ([]*models.Course, error) {
	sql, args, err := r.selectCourses().OrderBy("c.id ASC").ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all courses SQL")
		return nil, fmt.Errorf("failed to build get all courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all courses query")
		return nil, fmt.Errorf("error querying courses: %w", err)
	}
	defer rows.Close()

	courses := []*models.Course{}
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning course row during get all")
			return nil, fmt.Errorf("error scanning course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating course rows")
		return nil, fmt.Errorf("error iterating course rows: %w", err)
	}

	return courses, nil
}

// GetByID retrieves a course with its department
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	sql, args, err := r.selectCourses().
		Where(squirrel.Eq{"c.id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get course by ID SQL")
		return nil, fmt.Errorf("failed to build get course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		logger.Error().Err(err).Int64("courseID", id).Msg("Error scanning course row")
		return nil, fmt.Errorf("error getting course by ID: %w", err)
	}

	return course, nil
}

// Add inserts a new course and sets its ID
func (r *CourseRepository) Add(ctx context.Context, course *models.Course) error {
	if course.AddedDate.IsZero() {
		course.AddedDate = time.Now().UTC()
	}

	sql, args, err := r.sb.Insert("courses").
		Columns("course_number", "title", "credits", "department_id", "added_date", "modified_date").
		Values(course.CourseNumber, course.Title, course.Credits, course.DepartmentID, course.AddedDate, course.ModifiedDate).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create course SQL")
		return fmt.Errorf("failed to build create course query: %w", err)
	}

	if err := r.db.QueryRow(ctx, sql, args...).Scan(&course.ID); err != nil {
		logger.Error().Err(err).Str("courseNumber", course.CourseNumber).Msg("Error executing create course query")
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

// Update persists title, credits, department and modified date. Course number and
// added date are never rewritten.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	sql, args, err := r.sb.Update("courses").
		SetMap(map[string]interface{}{
			"title":         course.Title,
			"credits":       course.Credits,
			"department_id": course.DepartmentID,
			"modified_date": course.ModifiedDate,
		}).
		Where(squirrel.Eq{"id": course.ID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update course SQL")
		return fmt.Errorf("failed to build update course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", course.ID).Msg("Error executing update course query")
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// Delete deletes a course by ID
func (r *CourseRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("courses").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete course SQL")
		return fmt.Errorf("failed to build delete course query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("courseID", id).Msg("Error executing delete course query")
		return fmt.Errorf("error deleting course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// ExecuteSQL runs a raw statement against the courses table's store
func (r *CourseRepository) ExecuteSQL(ctx context.Context, sql string, args ...any) (int64, error) {
	affected, err := execSQL(ctx, r.db, sql, args...)
	if err != nil {
		logger.Error().Err(err).Str("sql", sql).Msg("Error executing raw course statement")
		return 0, fmt.Errorf("error executing course statement: %w", err)
	}
	return affected, nil
}

// MultiplyCreditsSQL builds the bulk statement that multiplies every course's credits.
// The multiplier is always a bound parameter.
func MultiplyCreditsSQL(multiplier int) (string, []interface{}, error) {
	return squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar).
		Update("courses").
		Set("credits", squirrel.Expr("credits * ?", multiplier)).
		ToSql()
}
