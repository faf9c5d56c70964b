package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/app/models/dto"
	"github.com/alimon808/ContosoUniversity2017/internal/app/services"
	"github.com/alimon808/ContosoUniversity2017/internal/middleware"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/apperrors"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/binding"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/helpers"
)

// CoursesPath is where successful writes redirect to
const CoursesPath = "/api/v1/courses"

// CourseController handles course record pages
type CourseController struct {
	courseService services.CourseService
	binder        binding.ModelBinder
	logger        zerolog.Logger
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService services.CourseService, binder binding.ModelBinder, lgr zerolog.Logger) *CourseController {
	return &CourseController{
		courseService: courseService,
		binder:        binder,
		logger:        lgr,
	}
}

// List returns every course
// @Summary List courses
// @Description Retrieves all courses with their department
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]dto.CourseResponse} "Courses retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) List(ctx *gin.Context) {
	courses, err := c.courseService.ListCourses(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourses(courses)))
}

// Details returns one course
// @Summary Get course details
// @Description Retrieves a course and its department
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses/details/{id} [get]
func (c *CourseController) Details(ctx *gin.Context) {
	course, ok := c.findCourse(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// ShowCreateForm returns an empty course form
// @Summary Course create form
// @Description Returns an empty course and the department drop-down ordered by name
// @Tags courses
// @Produce json
// @Success 200 {object} dto.APIResponse{data=dto.CourseFormResponse} "Form retrieved successfully"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses/create [get]
func (c *CourseController) ShowCreateForm(ctx *gin.Context) {
	c.renderForm(ctx, http.StatusOK, &models.Course{}, nil)
}

// Create inserts a course
// @Summary Create a course
// @Description Binds courseNumber, credits, departmentId and title, then redirects to the list
// @Tags courses
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param request body dto.CourseInput true "Course fields"
// @Success 302 "Redirect to the course list"
// @Failure 400 {object} dto.APIResponse{data=dto.CourseFormResponse} "Invalid course data"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses/create [post]
func (c *CourseController) Create(ctx *gin.Context) {
	var course models.Course
	var input dto.CourseInput
	errs := c.binder.BindModel(ctx, &course, &input, models.CourseCreateFields...)
	if !errs.Valid() {
		c.renderForm(ctx, http.StatusBadRequest, &course, errs)
		return
	}

	if err := c.courseService.CreateCourse(ctx.Request.Context(), &course); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, CoursesPath)
}

// ShowEditForm returns the course prefilled in a form
// @Summary Course edit form
// @Description Returns the course and the department drop-down with its department preselected
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseFormResponse} "Form retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses/edit/{id} [get]
func (c *CourseController) ShowEditForm(ctx *gin.Context) {
	course, ok := c.findCourse(ctx)
	if !ok {
		return
	}

	c.renderForm(ctx, http.StatusOK, course, nil)
}

// Edit updates credits, departmentId and title of a course. Any other supplied
// field is ignored.
// @Summary Edit a course
// @Description Applies credits, departmentId and title, stamps the modified date and redirects to the list
// @Tags courses
// @Accept json,x-www-form-urlencoded
// @Produce json
// @Param id path int true "Course ID"
// @Param request body dto.CourseInput true "Course fields"
// @Success 302 "Redirect to the course list"
// @Failure 400 {object} dto.APIResponse{data=dto.CourseFormResponse} "Invalid course data"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Failure 409 {object} dto.APIResponse{data=dto.CourseFormResponse} "Unable to save changes"
// @Router /courses/edit/{id} [post]
func (c *CourseController) Edit(ctx *gin.Context) {
	course, ok := c.findCourse(ctx)
	if !ok {
		return
	}

	var input dto.CourseInput
	errs := c.binder.TryUpdateModel(ctx, course, &input, models.CourseEditFields...)
	if course.Department != nil && course.Department.ID != course.DepartmentID {
		course.Department = nil
	}
	if !errs.Valid() {
		c.renderForm(ctx, http.StatusBadRequest, course, errs)
		return
	}

	if err := c.courseService.UpdateCourse(ctx.Request.Context(), course); err != nil {
		if !errors.Is(err, apperrors.ErrCourseSaveFailed) {
			middleware.HandleAPIError(ctx, err)
			return
		}
		errs.Add(binding.ModelErrorKey, apperrors.ErrCourseSaveFailed.Error())
		c.renderForm(ctx, http.StatusConflict, course, errs)
		return
	}

	ctx.Redirect(http.StatusFound, CoursesPath)
}

// ShowDeleteConfirm returns the course to be deleted
// @Summary Course delete confirmation
// @Description Returns the course and its department before deletion
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 404 {object} dto.APIResponse "Course not found"
// @Router /courses/delete/{id} [get]
func (c *CourseController) ShowDeleteConfirm(ctx *gin.Context) {
	course, ok := c.findCourse(ctx)
	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// DeleteConfirmed deletes a course. A course that is already gone is not an error.
// @Summary Delete a course
// @Description Deletes the course and redirects to the list
// @Tags courses
// @Produce json
// @Param id path int true "Course ID"
// @Success 302 "Redirect to the course list"
// @Failure 404 {object} dto.APIResponse "Invalid course ID"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses/delete/{id} [post]
func (c *CourseController) DeleteConfirmed(ctx *gin.Context) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrCourseNotFound)
		return
	}

	if err := c.courseService.DeleteCourse(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, CoursesPath)
}

// BulkUpdateCredits multiplies the credits of every course
// @Summary Multiply course credits
// @Description Multiplies every course's credits by multiplier. Without a multiplier nothing changes.
// @Tags courses
// @Produce json
// @Param multiplier query int false "Credit multiplier"
// @Success 200 {object} dto.APIResponse{data=dto.CreditsUpdateResponse} "Rows affected, omitted when no multiplier was given"
// @Failure 400 {object} dto.APIResponse "Multiplier is not an integer"
// @Failure 500 {object} dto.APIResponse "Internal server error"
// @Router /courses/update-credits [get]
func (c *CourseController) BulkUpdateCredits(ctx *gin.Context) {
	multiplier, present, err := helpers.ParseOptionalIntQuery(ctx, "multiplier")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewBadRequestError("multiplier must be an integer"))
		return
	}

	var resp dto.CreditsUpdateResponse
	if present {
		affected, err := c.courseService.MultiplyCredits(ctx.Request.Context(), multiplier)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		resp.RowsAffected = &affected
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp))
}

// findCourse loads the course named by the id path parameter, answering 404 when
// the id is malformed or unknown.
func (c *CourseController) findCourse(ctx *gin.Context) (*models.Course, bool) {
	id, ok := helpers.ParseIDParam(ctx, "id")
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrCourseNotFound)
		return nil, false
	}

	course, err := c.courseService.GetCourse(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return nil, false
	}
	return course, true
}

// renderForm answers with the course form and a freshly loaded department list.
func (c *CourseController) renderForm(ctx *gin.Context, status int, course *models.Course, errs binding.FieldErrors) {
	departments, err := c.courseService.ListDepartments(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	form := dto.NewCourseForm(course, departments, errs)
	if status < http.StatusBadRequest {
		ctx.JSON(status, dto.NewSuccessResponse(form))
		return
	}

	code := dto.ErrorCodeValidationFailed
	message := "Validation failed"
	if status == http.StatusConflict {
		code = dto.ErrorCodeConflict
		message = apperrors.ErrCourseSaveFailed.Error()
	}
	c.logger.Debug().Int("status", status).Interface("errors", errs).Msg("Redisplaying course form")
	ctx.JSON(status, dto.NewFailureResponse(dto.NewErrorDetail(code, message).WithDetails(errs), form))
}
