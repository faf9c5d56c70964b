package controllers_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alimon808/ContosoUniversity2017/internal/app/controllers"
	"github.com/alimon808/ContosoUniversity2017/internal/app/models"
	"github.com/alimon808/ContosoUniversity2017/internal/app/models/dto"
	"github.com/alimon808/ContosoUniversity2017/internal/app/repositories/memory"
	"github.com/alimon808/ContosoUniversity2017/internal/app/routes"
	"github.com/alimon808/ContosoUniversity2017/internal/app/services"
	"github.com/alimon808/ContosoUniversity2017/internal/middleware"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/apperrors"
	"github.com/alimon808/ContosoUniversity2017/internal/pkg/binding"
)

var fixedNow = time.Date(2024, 9, 1, 8, 30, 0, 0, time.UTC)

type envelope[T any] struct {
	Success bool             `json:"success"`
	Data    T                `json:"data"`
	Error   *dto.ErrorDetail `json:"error"`
}

type testApp struct {
	router  *gin.Engine
	courses *memory.CourseStore
}

// newTestApp wires the course routes over in-memory stores seeded with
// Mathematics (1), Engineering (2) and English (3).
func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctx := context.Background()
	departments := memory.NewDepartmentStore()
	for _, name := range []string{"Mathematics", "Engineering", "English"} {
		require.NoError(t, departments.Add(ctx, &models.Department{Name: name}))
	}
	courses := memory.NewCourseStore(departments)

	svc := services.NewCourseService(courses, departments, zerolog.Nop(),
		services.WithClock(func() time.Time { return fixedNow }))
	controller := controllers.NewCourseController(svc, binding.NewModelBinder(), zerolog.Nop())

	router := gin.New()
	router.Use(middleware.RequestLogger(zerolog.Nop()))
	routes.SetupRouter(router, controller, nil)

	return &testApp{router: router, courses: courses}
}

func (a *testApp) addCourse(t *testing.T, number, title string, credits int, departmentID int64) *models.Course {
	t.Helper()
	c := &models.Course{CourseNumber: number, Title: title, Credits: credits, DepartmentID: departmentID}
	require.NoError(t, a.courses.Add(context.Background(), c))
	return c
}

func (a *testApp) do(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) get(path string) *httptest.ResponseRecorder {
	return a.do(httptest.NewRequest(http.MethodGet, path, nil))
}

func (a *testApp) postForm(path string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return a.do(req)
}

func (a *testApp) postJSON(path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return a.do(req)
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) envelope[T] {
	t.Helper()
	var env envelope[T]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func (a *testApp) list(t *testing.T) []dto.CourseResponse {
	t.Helper()
	w := a.get("/api/v1/courses")
	require.Equal(t, http.StatusOK, w.Code)
	return decode[[]dto.CourseResponse](t, w).Data
}

func selected(options []dto.SelectOption) []int64 {
	var ids []int64
	for _, o := range options {
		if o.Selected {
			ids = append(ids, o.Value)
		}
	}
	return ids
}

func TestCreateThenList(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/api/v1/courses/create", url.Values{
		"courseNumber": {"CS101"},
		"credits":      {"3"},
		"departmentId": {"1"},
		"title":        {"Intro"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, controllers.CoursesPath, w.Header().Get("Location"))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))

	list := app.list(t)
	require.Len(t, list, 1)
	assert.Equal(t, "CS101", list[0].CourseNumber)
	assert.Equal(t, 3, list[0].Credits)
	assert.Equal(t, "Intro", list[0].Title)
	require.NotNil(t, list[0].Department)
	assert.Equal(t, "Mathematics", list[0].Department.Name)
	require.NotNil(t, list[0].AddedDate)
	assert.True(t, list[0].AddedDate.Equal(fixedNow))
	assert.Nil(t, list[0].ModifiedDate)
}

func TestCreateAcceptsJSON(t *testing.T) {
	app := newTestApp(t)

	w := app.postJSON("/api/v1/courses/create",
		`{"id":500,"courseNumber":"4041","credits":3,"departmentId":2,"title":"Macroeconomics"}`)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	list := app.list(t)
	require.Len(t, list, 1)
	assert.Equal(t, int64(1), list[0].ID, "id is assigned by the store")
	assert.Equal(t, "Engineering", list[0].Department.Name)
}

func TestCreateInvalidRedisplaysForm(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/api/v1/courses/create", url.Values{
		"courseNumber": {"CS101"},
		"credits":      {"3"},
		"departmentId": {"2"},
		"title":        {"ab"},
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode[dto.CourseFormResponse](t, w)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeValidationFailed, env.Error.Code)
	assert.Contains(t, env.Data.Errors, "title")
	assert.Equal(t, "ab", env.Data.Course.Title)
	require.Len(t, env.Data.Departments, 3)
	assert.Equal(t, []int64{2}, selected(env.Data.Departments))
	assert.Empty(t, app.list(t))
}

func TestCreateInvalidKeepsSubmittedValues(t *testing.T) {
	cases := []struct {
		name    string
		form    url.Values
		field   string
		message string
	}{
		{
			name: "course number too long",
			form: url.Values{
				"courseNumber": {"ABCDEFGHIJKLMNOP"},
				"credits":      {"3"},
				"departmentId": {"2"},
				"title":        {"Intro"},
			},
			field:   "courseNumber",
			message: "courseNumber must be at most 10",
		},
		{
			name: "credits not a number",
			form: url.Values{
				"courseNumber": {"CS101"},
				"credits":      {"x"},
				"departmentId": {"2"},
				"title":        {"Intro"},
			},
			field:   "credits",
			message: "credits must be a valid int",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newTestApp(t)

			w := app.postForm("/api/v1/courses/create", tc.form)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())

			env := decode[dto.CourseFormResponse](t, w)
			assert.Equal(t, []string{tc.message}, env.Data.Errors[tc.field])
			assert.Equal(t, int64(2), env.Data.Course.DepartmentID)
			assert.Equal(t, "Intro", env.Data.Course.Title)
			assert.Equal(t, []int64{2}, selected(env.Data.Departments))
			assert.Empty(t, app.list(t))
		})
	}
}

func TestCreateRequiresEveryField(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/api/v1/courses/create", url.Values{"title": {"Chemistry"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode[dto.CourseFormResponse](t, w)
	for _, field := range []string{"courseNumber", "credits", "departmentId"} {
		assert.Contains(t, env.Data.Errors, field)
	}
	assert.Empty(t, selected(env.Data.Departments))
}

func TestCreateUnknownDepartmentIsServerError(t *testing.T) {
	app := newTestApp(t)

	w := app.postForm("/api/v1/courses/create", url.Values{
		"courseNumber": {"X1"},
		"credits":      {"1"},
		"departmentId": {"99"},
		"title":        {"Orphan"},
	})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestShowCreateForm(t *testing.T) {
	app := newTestApp(t)

	w := app.get("/api/v1/courses/create")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[dto.CourseFormResponse](t, w)
	assert.True(t, env.Success)
	texts := make([]string, 0, len(env.Data.Departments))
	for _, o := range env.Data.Departments {
		texts = append(texts, o.Text)
	}
	assert.Equal(t, []string{"Engineering", "English", "Mathematics"}, texts)
	assert.Empty(t, selected(env.Data.Departments))
	assert.Empty(t, env.Data.Errors)
}

func TestUnknownIDsAreNotFound(t *testing.T) {
	app := newTestApp(t)
	app.addCourse(t, "1045", "Calculus", 4, 1)

	for _, path := range []string{
		"/api/v1/courses/details/404",
		"/api/v1/courses/edit/404",
		"/api/v1/courses/delete/404",
		"/api/v1/courses/details/abc",
		"/api/v1/courses/edit/0",
		"/api/v1/courses/delete/-1",
	} {
		w := app.get(path)
		assert.Equal(t, http.StatusNotFound, w.Code, path)
		env := decode[any](t, w)
		require.NotNil(t, env.Error, path)
		assert.Equal(t, dto.ErrorCodeResourceNotFound, env.Error.Code, path)
	}

	w := app.postForm("/api/v1/courses/edit/404", url.Values{"title": {"Nope"}})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDetailsAndDeleteConfirm(t *testing.T) {
	app := newTestApp(t)
	c := app.addCourse(t, "2042", "Literature", 4, 3)

	for _, path := range []string{"/api/v1/courses/details/", "/api/v1/courses/delete/"} {
		w := app.get(path + "1")
		require.Equal(t, http.StatusOK, w.Code, path)
		env := decode[dto.CourseResponse](t, w)
		assert.Equal(t, c.ID, env.Data.ID)
		assert.Equal(t, "Literature", env.Data.Title)
		require.NotNil(t, env.Data.Department)
		assert.Equal(t, "English", env.Data.Department.Name)
	}
}

func TestShowEditFormPreselectsDepartment(t *testing.T) {
	app := newTestApp(t)
	app.addCourse(t, "3141", "Trigonometry", 4, 2)

	w := app.get("/api/v1/courses/edit/1")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode[dto.CourseFormResponse](t, w)
	assert.Equal(t, "Trigonometry", env.Data.Course.Title)
	assert.Equal(t, []int64{2}, selected(env.Data.Departments))
}

func TestEditAppliesOnlyAllowedFields(t *testing.T) {
	app := newTestApp(t)
	original := app.addCourse(t, "1045", "Calculus", 4, 1)

	w := app.postJSON("/api/v1/courses/edit/1", `{
		"id": 999,
		"courseNumber": "HACKED",
		"title": "Advanced Calculus",
		"credits": 5,
		"departmentId": 2,
		"modifiedDate": "2001-01-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())
	assert.Equal(t, controllers.CoursesPath, w.Header().Get("Location"))

	list := app.list(t)
	require.Len(t, list, 1)
	got := list[0]
	assert.Equal(t, original.ID, got.ID)
	assert.Equal(t, "1045", got.CourseNumber)
	assert.Equal(t, "Advanced Calculus", got.Title)
	assert.Equal(t, 5, got.Credits)
	assert.Equal(t, int64(2), got.DepartmentID)
	assert.Equal(t, "Engineering", got.Department.Name)
	require.NotNil(t, got.ModifiedDate)
	assert.True(t, got.ModifiedDate.Equal(fixedNow), "modified date comes from the clock, not the request")
	require.NotNil(t, got.AddedDate)
	assert.True(t, got.AddedDate.Equal(original.AddedDate))
}

func TestEditIgnoresMalformedFieldsOutsideAllowList(t *testing.T) {
	requests := map[string]func(app *testApp) *httptest.ResponseRecorder{
		"form": func(app *testApp) *httptest.ResponseRecorder {
			return app.postForm("/api/v1/courses/edit/1", url.Values{
				"id":           {"abc"},
				"modifiedDate": {"yesterday"},
				"courseNumber": {"ABCDEFGHIJKLMNOP"},
				"title":        {"Calculus II"},
			})
		},
		"json": func(app *testApp) *httptest.ResponseRecorder {
			return app.postJSON("/api/v1/courses/edit/1", `{
				"id": "abc",
				"modifiedDate": "yesterday",
				"courseNumber": "ABCDEFGHIJKLMNOP",
				"title": "Calculus II"
			}`)
		},
	}

	for name, send := range requests {
		t.Run(name, func(t *testing.T) {
			app := newTestApp(t)
			original := app.addCourse(t, "1045", "Calculus", 4, 1)

			w := send(app)
			require.Equal(t, http.StatusFound, w.Code, w.Body.String())

			got := app.list(t)[0]
			assert.Equal(t, original.ID, got.ID)
			assert.Equal(t, "1045", got.CourseNumber)
			assert.Equal(t, "Calculus II", got.Title)
			assert.Equal(t, 4, got.Credits)
			require.NotNil(t, got.ModifiedDate)
			assert.True(t, got.ModifiedDate.Equal(fixedNow))
		})
	}
}

func TestEditPartialForm(t *testing.T) {
	app := newTestApp(t)
	app.addCourse(t, "2021", "Composition", 3, 3)

	w := app.postForm("/api/v1/courses/edit/1", url.Values{
		"credits":      {"2"},
		"courseNumber": {"9999"},
	})
	require.Equal(t, http.StatusFound, w.Code, w.Body.String())

	got := app.list(t)[0]
	assert.Equal(t, 2, got.Credits)
	assert.Equal(t, "2021", got.CourseNumber)
	assert.Equal(t, "Composition", got.Title)
	assert.Equal(t, int64(3), got.DepartmentID)
	require.NotNil(t, got.ModifiedDate)
}

func TestEditInvalidRedisplaysForm(t *testing.T) {
	app := newTestApp(t)
	app.addCourse(t, "1045", "Calculus", 4, 1)

	w := app.postForm("/api/v1/courses/edit/1", url.Values{"credits": {"9"}})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decode[dto.CourseFormResponse](t, w)
	assert.Contains(t, env.Data.Errors, "credits")
	assert.Equal(t, []int64{1}, selected(env.Data.Departments))

	got := app.list(t)[0]
	assert.Equal(t, 4, got.Credits)
	assert.Nil(t, got.ModifiedDate)
}

func TestEditSaveFailureAddsModelError(t *testing.T) {
	app := newTestApp(t)
	app.addCourse(t, "1045", "Calculus", 4, 1)

	w := app.postForm("/api/v1/courses/edit/1", url.Values{
		"title":        {"Calculus II"},
		"departmentId": {"99"},
	})
	require.Equal(t, http.StatusConflict, w.Code)

	env := decode[dto.CourseFormResponse](t, w)
	require.NotNil(t, env.Error)
	assert.Equal(t, dto.ErrorCodeConflict, env.Error.Code)
	assert.Equal(t, []string{apperrors.ErrCourseSaveFailed.Error()}, env.Data.Errors[binding.ModelErrorKey])
	assert.Equal(t,
		"Unable to save changes. Try again, and if the problem persists, see your system administrator",
		env.Data.Errors[binding.ModelErrorKey][0])
	assert.Equal(t, "Calculus II", env.Data.Course.Title)
	assert.Len(t, env.Data.Departments, 3)

	got := app.list(t)[0]
	assert.Equal(t, "Calculus", got.Title)
	assert.Nil(t, got.ModifiedDate)
}

func TestDeleteConfirmed(t *testing.T) {
	app := newTestApp(t)
	app.addCourse(t, "4022", "Microeconomics", 3, 2)

	w := app.do(httptest.NewRequest(http.MethodPost, "/api/v1/courses/delete/1", nil))
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, controllers.CoursesPath, w.Header().Get("Location"))
	assert.Empty(t, app.list(t))
	assert.Equal(t, http.StatusNotFound, app.get("/api/v1/courses/details/1").Code)

	w = app.do(httptest.NewRequest(http.MethodPost, "/api/v1/courses/delete/1", nil))
	assert.Equal(t, http.StatusFound, w.Code, "deleting a missing course still redirects")

	w = app.do(httptest.NewRequest(http.MethodPost, "/api/v1/courses/delete/abc", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestBulkUpdateCredits(t *testing.T) {
	app := newTestApp(t)
	for i, credits := range []int{3, 4, 5} {
		app.addCourse(t, []string{"1045", "3141", "2021"}[i], "Course", credits, 1)
	}
	creditsOf := func() []int {
		var out []int
		for _, c := range app.list(t) {
			out = append(out, c.Credits)
		}
		return out
	}

	t.Run("without multiplier", func(t *testing.T) {
		w := app.get("/api/v1/courses/update-credits")
		require.Equal(t, http.StatusOK, w.Code)
		env := decode[dto.CreditsUpdateResponse](t, w)
		assert.True(t, env.Success)
		assert.Nil(t, env.Data.RowsAffected)
		assert.Equal(t, []int{3, 4, 5}, creditsOf())
	})

	t.Run("rejects non-integers", func(t *testing.T) {
		for _, q := range []string{"abc", "1.5", "3%20OR%201%3D1"} {
			w := app.get("/api/v1/courses/update-credits?multiplier=" + q)
			assert.Equal(t, http.StatusBadRequest, w.Code, q)
		}
		assert.Equal(t, []int{3, 4, 5}, creditsOf())
	})

	t.Run("with multiplier", func(t *testing.T) {
		w := app.get("/api/v1/courses/update-credits?multiplier=3")
		require.Equal(t, http.StatusOK, w.Code)
		env := decode[dto.CreditsUpdateResponse](t, w)
		require.NotNil(t, env.Data.RowsAffected)
		assert.Equal(t, int64(3), *env.Data.RowsAffected)
		assert.Equal(t, []int{9, 12, 15}, creditsOf())
	})
}

func TestHealthAndPing(t *testing.T) {
	app := newTestApp(t)
	assert.Equal(t, http.StatusOK, app.get("/api/v1/health").Code)
	assert.Equal(t, http.StatusOK, app.get("/ping").Code)
}
