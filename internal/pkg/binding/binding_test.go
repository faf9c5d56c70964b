package binding

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID       int64     `json:"id"`
	Number   string    `json:"number" validate:"required,max=10"`
	Credits  int       `json:"credits" validate:"min=0,max=5"`
	Title    string    `json:"title" validate:"required,min=3,max=50"`
	Stamp    time.Time `json:"stamp"`
	internal string
}

type recordInput struct {
	ID      *int64     `form:"id" json:"id"`
	Number  *string    `form:"number" json:"number"`
	Credits *int       `form:"credits" json:"credits"`
	Title   *string    `form:"title" json:"title"`
	Stamp   *time.Time `form:"stamp" json:"stamp" time_format:"2006-01-02T15:04:05Z07:00"`
}

func ptr[T any](v T) *T { return &v }

func TestApplyCopiesOnlyAllowListedSuppliedFields(t *testing.T) {
	stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	dst := &record{ID: 7, Number: "1045", Credits: 4, Title: "Calculus", Stamp: stamp}
	src := &recordInput{
		ID:      ptr(int64(99)),
		Number:  ptr("HACKED"),
		Credits: ptr(2),
		Stamp:   ptr(time.Now()),
	}

	applied, err := Apply(dst, src, "credits", "title")
	require.NoError(t, err)

	assert.Equal(t, []string{"credits"}, applied)
	assert.Equal(t, int64(7), dst.ID)
	assert.Equal(t, "1045", dst.Number)
	assert.Equal(t, 2, dst.Credits)
	assert.Equal(t, "Calculus", dst.Title)
	assert.Equal(t, stamp, dst.Stamp)
}

func TestApplyRejectsUnknownFields(t *testing.T) {
	_, err := Apply(&record{}, &recordInput{}, "budget")
	assert.Error(t, err)

	_, err = Apply(record{}, &recordInput{}, "title")
	assert.Error(t, err)
}

func TestApplyIntoPointerField(t *testing.T) {
	type target struct {
		Note *string `json:"note"`
	}
	type source struct {
		Note string `json:"note"`
	}
	dst := &target{}
	applied, err := Apply(dst, &source{Note: "x"}, "note")
	require.NoError(t, err)
	assert.Equal(t, []string{"note"}, applied)
	require.NotNil(t, dst.Note)
	assert.Equal(t, "x", *dst.Note)
}

func jsonContext(body string) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c
}

func formContext(values url.Values) *gin.Context {
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	c.Request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return c
}

func TestTryUpdateModelJSON(t *testing.T) {
	b := NewModelBinder()
	dst := &record{ID: 1, Number: "2021", Credits: 3, Title: "Composition"}

	errs := b.TryUpdateModel(jsonContext(`{"id": 5, "number": "X", "credits": 4}`), dst, &recordInput{}, "credits", "title")
	require.True(t, errs.Valid(), "%v", errs)

	assert.Equal(t, int64(1), dst.ID)
	assert.Equal(t, "2021", dst.Number)
	assert.Equal(t, 4, dst.Credits)
	assert.Equal(t, "Composition", dst.Title)
}

func TestTryUpdateModelForm(t *testing.T) {
	b := NewModelBinder()
	dst := &record{ID: 1, Number: "2021", Credits: 3, Title: "Composition"}

	errs := b.TryUpdateModel(formContext(url.Values{"title": {"Poetry"}, "number": {"X"}}), dst, &recordInput{}, "credits", "title")
	require.True(t, errs.Valid(), "%v", errs)

	assert.Equal(t, "Poetry", dst.Title)
	assert.Equal(t, 3, dst.Credits)
	assert.Equal(t, "2021", dst.Number)
}

func TestTryUpdateModelValidatesResult(t *testing.T) {
	b := NewModelBinder()
	dst := &record{Number: "2021", Credits: 3, Title: "Composition"}

	errs := b.TryUpdateModel(jsonContext(`{"credits": 9, "title": "ab"}`), dst, &recordInput{}, "credits", "title")
	require.False(t, errs.Valid())
	assert.Contains(t, errs["credits"], "credits must be at most 5")
	assert.Contains(t, errs["title"], "title must be at least 3")
}

func TestTryUpdateModelReportsDecodeErrors(t *testing.T) {
	b := NewModelBinder()
	dst := &record{Number: "2021", Title: "Composition"}

	errs := b.TryUpdateModel(jsonContext(`{"credits": "many"}`), dst, &recordInput{}, "credits")
	require.False(t, errs.Valid())
	assert.Equal(t, []string{"credits must be a valid int"}, errs["credits"])
	assert.Equal(t, 0, dst.Credits)
}

func TestTryUpdateModelIgnoresFieldsOutsideAllowList(t *testing.T) {
	b := NewModelBinder()
	stamp := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	contexts := map[string]*gin.Context{
		"json": jsonContext(`{"id": "abc", "stamp": "yesterday", "number": "ABCDEFGHIJKLMNOP", "title": "Poetry"}`),
		"form": formContext(url.Values{
			"id":     {"abc"},
			"stamp":  {"yesterday"},
			"number": {"ABCDEFGHIJKLMNOP"},
			"title":  {"Poetry"},
		}),
	}
	for name, c := range contexts {
		t.Run(name, func(t *testing.T) {
			dst := &record{ID: 1, Number: "2021", Credits: 3, Title: "Composition", Stamp: stamp}

			errs := b.TryUpdateModel(c, dst, &recordInput{}, "credits", "title")
			require.True(t, errs.Valid(), "%v", errs)

			assert.Equal(t, int64(1), dst.ID)
			assert.Equal(t, "2021", dst.Number)
			assert.Equal(t, stamp, dst.Stamp)
			assert.Equal(t, "Poetry", dst.Title)
		})
	}
}

func TestBindModelKeepsWellTypedFieldsOnError(t *testing.T) {
	b := NewModelBinder()

	t.Run("decode error", func(t *testing.T) {
		dst := &record{}
		errs := b.BindModel(formContext(url.Values{
			"number":  {"1050"},
			"credits": {"x"},
			"title":   {"Chemistry"},
		}), dst, &recordInput{}, "number", "credits", "title")

		require.False(t, errs.Valid())
		assert.Equal(t, []string{"credits must be a valid int"}, errs["credits"])
		assert.Equal(t, "1050", dst.Number)
		assert.Equal(t, "Chemistry", dst.Title)
	})

	t.Run("validation error", func(t *testing.T) {
		dst := &record{}
		errs := b.BindModel(jsonContext(`{"number": "ABCDEFGHIJKLMNOP", "credits": 2, "title": "Chemistry"}`),
			dst, &recordInput{}, "number", "credits", "title")

		require.False(t, errs.Valid())
		assert.Equal(t, []string{"number must be at most 10"}, errs["number"])
		assert.Equal(t, 2, dst.Credits)
		assert.Equal(t, "Chemistry", dst.Title)
	})
}

func TestBindModelMalformedBody(t *testing.T) {
	b := NewModelBinder()
	dst := &record{}

	errs := b.BindModel(jsonContext(`{"title": `), dst, &recordInput{}, "title")
	require.False(t, errs.Valid())
	assert.Contains(t, errs, ModelErrorKey)
	assert.Empty(t, dst.Title)
}

func TestBindModelRequiresAllowListedFields(t *testing.T) {
	b := NewModelBinder()
	dst := &record{}

	errs := b.BindModel(jsonContext(`{"number": "1050", "title": "Chemistry"}`), dst, &recordInput{}, "number", "credits", "title")
	require.False(t, errs.Valid())
	assert.Equal(t, []string{"credits is required"}, errs["credits"])
}

func TestBindModelEmptyBody(t *testing.T) {
	b := NewModelBinder()
	errs := b.BindModel(jsonContext(``), &record{}, &recordInput{}, "title")
	require.False(t, errs.Valid())
	assert.Equal(t, []string{"title is required"}, errs["title"])
}
