// Package memory provides in-process implementations of the repositories, used when
// the configured database driver is "memory" and by the service and controller tests.
package memory

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/app/repositories"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/apperrors"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/dberrors"
)

// ErrUnsupportedStatement is returned by ExecuteSQL for statements the store cannot interpret.
var ErrUnsupportedStatement = errors.New("memory store: unsupported statement")

// DepartmentStore keeps departments in memory.
type DepartmentStore struct {
	mu     sync.RWMutex
	rows   map[int64]models.Department
	nextID int64
}

var _ repositories.DepartmentFinder = (*DepartmentStore)(nil)

// NewDepartmentStore creates an empty department store.
func NewDepartmentStore() *DepartmentStore {
	return &DepartmentStore{rows: map[int64]models.Department{}}
}

// GetAll returns departments ordered by name.
func (s *DepartmentStore) GetAll(ctx context.Context) ([]*models.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Department, 0, len(s.rows))
	for _, d := range s.rows {
		d := d
		out = append(out, &d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// GetByID returns a copy of the department.
func (s *DepartmentStore) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &d, nil
}

// GetByName returns the department with the given unique name.
func (s *DepartmentStore) GetByName(ctx context.Context, name string) (*models.Department, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, d := range s.rows {
		if d.Name == name {
			return &d, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (s *DepartmentStore) lookup(id int64) (models.Department, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	d, ok := s.rows[id]
	return d, ok
}

// Add inserts a department; names are unique.
func (s *DepartmentStore) Add(ctx context.Context, department *models.Department) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, d := range s.rows {
		if d.Name == department.Name {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	if department.StartDate.IsZero() {
		department.StartDate = time.Now().UTC().Truncate(24 * time.Hour)
	}
	s.nextID++
	department.ID = s.nextID
	s.rows[department.ID] = *department
	return nil
}

// Update replaces a stored department.
func (s *DepartmentStore) Update(ctx context.Context, department *models.Department) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[department.ID]; !ok {
		return repositories.ErrNotFound
	}
	for id, d := range s.rows {
		if id != department.ID && d.Name == department.Name {
			return apperrors.ErrDepartmentAlreadyExists
		}
	}
	s.rows[department.ID] = *department
	return nil
}

// Delete removes a department.
func (s *DepartmentStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// ExecuteSQL is not supported for departments.
func (s *DepartmentStore) ExecuteSQL(ctx context.Context, sql string, args ...any) (int64, error) {
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedStatement, sql)
}

// CourseStore keeps courses in memory and resolves their departments from a
// DepartmentStore, enforcing the department reference like a foreign key.
type CourseStore struct {
	mu          sync.RWMutex
	rows        map[int64]models.Course
	nextID      int64
	departments *DepartmentStore
}

var _ repositories.Repository[models.Course] = (*CourseStore)(nil)

// NewCourseStore creates an empty course store backed by departments.
func NewCourseStore(departments *DepartmentStore) *CourseStore {
	return &CourseStore{
		rows:        map[int64]models.Course{},
		departments: departments,
	}
}

func foreignKeyViolation(departmentID int64) error {
	return fmt.Errorf("department %d: %w", departmentID, &pgconn.PgError{
		Code:           dberrors.CodeForeignKeyViolation,
		Message:        "insert or update on table \"courses\" violates foreign key constraint",
		ConstraintName: "courses_department_id_fkey",
	})
}

func (s *CourseStore) joined(c models.Course) *models.Course {
	if d, ok := s.departments.lookup(c.DepartmentID); ok {
		c.Department = &d
	}
	return &c
}

// GetAll returns every course with its department, ordered by id.
func (s *CourseStore) GetAll(ctx context.Context) ([]*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*models.Course, 0, len(s.rows))
	for _, c := range s.rows {
		out = append(out, s.joined(c))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// GetByID returns a copy of the course with its department.
func (s *CourseStore) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.rows[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return s.joined(c), nil
}

// Add inserts a course.
func (s *CourseStore) Add(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := s.departments.lookup(course.DepartmentID); !ok {
		return fmt.Errorf("error creating course: %w", foreignKeyViolation(course.DepartmentID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if course.AddedDate.IsZero() {
		course.AddedDate = time.Now().UTC()
	}
	s.nextID++
	course.ID = s.nextID
	row := *course
	row.Department = nil
	s.rows[course.ID] = row
	return nil
}

// Update persists title, credits, department and modified date.
func (s *CourseStore) Update(ctx context.Context, course *models.Course) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, ok := s.departments.lookup(course.DepartmentID); !ok {
		return fmt.Errorf("error updating course: %w", foreignKeyViolation(course.DepartmentID))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	row, ok := s.rows[course.ID]
	if !ok {
		return repositories.ErrNotFound
	}
	row.Title = course.Title
	row.Credits = course.Credits
	row.DepartmentID = course.DepartmentID
	row.ModifiedDate = course.ModifiedDate
	s.rows[course.ID] = row
	return nil
}

// Delete removes a course.
func (s *CourseStore) Delete(ctx context.Context, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.rows[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.rows, id)
	return nil
}

// ExecuteSQL understands the bulk credit statement built by
// repositories.MultiplyCreditsSQL and nothing else.
func (s *CourseStore) ExecuteSQL(ctx context.Context, sql string, args ...any) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	want, _, err := repositories.MultiplyCreditsSQL(0)
	if err != nil {
		return 0, err
	}
	if sql != want || len(args) != 1 {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedStatement, sql)
	}
	multiplier, ok := args[0].(int)
	if !ok {
		return 0, fmt.Errorf("%w: multiplier must be an int, got %T", ErrUnsupportedStatement, args[0])
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, row := range s.rows {
		row.Credits *= multiplier
		s.rows[id] = row
	}
	return int64(len(s.rows)), nil
}
