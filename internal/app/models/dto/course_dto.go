package dto

import (
	"time"

	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/binding"
)

// CourseInput carries the course fields a client may post. Nil means the field was
// not supplied. Only the fields named by the action's allow-list are decoded; the
// rules live on models.Course and run after the copy.
type CourseInput struct {
	CourseNumber *string `form:"courseNumber" json:"courseNumber"`
	Title        *string `form:"title" json:"title"`
	Credits      *int    `form:"credits" json:"credits"`
	DepartmentID *int64  `form:"departmentId" json:"departmentId"`
}

// CourseResponse is the read view of a course
type CourseResponse struct {
	ID           int64              `json:"id" example:"1045"`
	CourseNumber string             `json:"courseNumber" example:"1045"`
	Title        string             `json:"title" example:"Calculus"`
	Credits      int                `json:"credits" example:"4"`
	DepartmentID int64              `json:"departmentId" example:"3"`
	Department   *DepartmentSummary `json:"department,omitempty"`
	AddedDate    *time.Time         `json:"addedDate,omitempty"`
	ModifiedDate *time.Time         `json:"modifiedDate,omitempty"`
}

// CourseFormResponse is the create/edit form view: the course being edited, the
// department drop-down and any model errors
type CourseFormResponse struct {
	Course      CourseResponse      `json:"course"`
	Departments []SelectOption      `json:"departments"`
	Errors      binding.FieldErrors `json:"errors,omitempty"`
}

// CreditsUpdateResponse reports the bulk credit update. RowsAffected is nil when no
// multiplier was supplied and nothing ran.
type CreditsUpdateResponse struct {
	RowsAffected *int64 `json:"rowsAffected,omitempty" example:"7"`
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(course *models.Course) CourseResponse {
	if course == nil {
		return CourseResponse{}
	}

	resp := CourseResponse{
		ID:           course.ID,
		CourseNumber: course.CourseNumber,
		Title:        course.Title,
		Credits:      course.Credits,
		DepartmentID: course.DepartmentID,
		ModifiedDate: course.ModifiedDate,
	}
	if !course.AddedDate.IsZero() {
		added := course.AddedDate
		resp.AddedDate = &added
	}
	if course.Department != nil {
		resp.Department = &DepartmentSummary{
			ID:   course.Department.ID,
			Name: course.Department.Name,
		}
	}
	return resp
}

// FromCourses converts a list of courses, preserving order
func FromCourses(courses []*models.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, FromCourse(c))
	}
	return out
}

// NewCourseForm builds the form view for course, preselecting its department when set
func NewCourseForm(course *models.Course, departments []*models.Department, errs binding.FieldErrors) CourseFormResponse {
	var selected *int64
	if course != nil && course.DepartmentID > 0 {
		id := course.DepartmentID
		selected = &id
	}
	if len(errs) == 0 {
		errs = nil
	}
	return CourseFormResponse{
		Course:      FromCourse(course),
		Departments: NewDepartmentSelectList(departments, selected),
		Errors:      errs,
	}
}
