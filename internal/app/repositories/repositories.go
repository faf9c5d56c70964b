package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/apperrors"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = fmt.Errorf("record %w", apperrors.ErrResourceNotFound)

// DBTX is the subset of pgx shared by *pgxpool.Pool and pgx.Tx, so repositories can
// run on the pool or inside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Repository is the persistence gateway for one entity type.
type Repository[T any] interface {
	// GetAll returns every row, with relations joined where the entity has them.
	GetAll(ctx context.Context) ([]*T, error)
	// GetByID returns one row or ErrNotFound.
	GetByID(ctx context.Context, id int64) (*T, error)
	// Add inserts entity and fills in its generated ID.
	Add(ctx context.Context, entity *T) error
	// Update persists the mutable columns of entity; ErrNotFound when no row matched.
	Update(ctx context.Context, entity *T) error
	// Delete removes the row; ErrNotFound when no row matched.
	Delete(ctx context.Context, id int64) error
	// ExecuteSQL runs a statement with bound arguments and returns the affected row count.
	ExecuteSQL(ctx context.Context, sql string, args ...any) (int64, error)
}

// DepartmentFinder is a department Repository that can also look departments up by
// their unique name.
type DepartmentFinder interface {
	Repository[models.Department]
	GetByName(ctx context.Context, name string) (*models.Department, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	CourseRepository     *CourseRepository
	DepartmentRepository *DepartmentRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		CourseRepository:     NewCourseRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
	}
}

func execSQL(ctx context.Context, db DBTX, sql string, args ...any) (int64, error) {
	cmdTag, err := db.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return cmdTag.RowsAffected(), nil
}
