package models

import "time"

// Course represents a course offered by a department.
type Course struct {
	ID           int64      `json:"id" db:"id"`
	CourseNumber string     `json:"courseNumber" db:"course_number" validate:"required,max=10"`
	Title        string     `json:"title" db:"title" validate:"required,min=3,max=50"`
	Credits      int        `json:"credits" db:"credits" validate:"min=0,max=5"`
	DepartmentID int64      `json:"departmentId" db:"department_id" validate:"required,gt=0"`
	AddedDate    time.Time  `json:"addedDate" db:"added_date"`
	ModifiedDate *time.Time `json:"modifiedDate,omitempty" db:"modified_date"` // Nullable

	// Relations (populated when needed)
	Department *Department `json:"department,omitempty" validate:"-"`
}

// CourseCreateFields lists the fields the create form binds.
var CourseCreateFields = []string{"courseNumber", "credits", "departmentId", "title"}

// CourseEditFields lists the only fields an edit may change.
var CourseEditFields = []string{"credits", "departmentId", "title"}
