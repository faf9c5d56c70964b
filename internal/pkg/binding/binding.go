package binding

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	ginbinding "github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ModelErrorKey is the FieldErrors key for errors that belong to the whole model.
const ModelErrorKey = ""

// FieldErrors collects validation messages keyed by JSON field name.
type FieldErrors map[string][]string

// Add records a message for field.
func (e FieldErrors) Add(field, message string) {
	e[field] = append(e[field], message)
}

// Valid reports whether no errors were recorded.
func (e FieldErrors) Valid() bool {
	return len(e) == 0
}

// ModelBinder maps request data onto domain records through an explicit field allow-list.
// Request values outside the allow-list are never decoded, so a malformed value there
// cannot fail the bind.
type ModelBinder interface {
	// BindModel decodes the listed fields into input, requires every one of them to be
	// supplied, copies them onto dst and validates dst.
	BindModel(c *gin.Context, dst, input any, fields ...string) FieldErrors
	// TryUpdateModel decodes the listed fields into input and copies only those the
	// request actually supplied onto dst, then validates dst.
	TryUpdateModel(c *gin.Context, dst, input any, fields ...string) FieldErrors
}

// GinModelBinder is the ModelBinder used by the HTTP controllers.
type GinModelBinder struct {
	validate *validator.Validate
}

// NewModelBinder creates a binder whose validation messages use JSON field names.
func NewModelBinder() *GinModelBinder {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(jsonFieldName)
	return &GinModelBinder{validate: v}
}

// BindModel implements ModelBinder.
func (b *GinModelBinder) BindModel(c *gin.Context, dst, input any, fields ...string) FieldErrors {
	return b.bind(c, dst, input, true, fields)
}

// TryUpdateModel implements ModelBinder.
func (b *GinModelBinder) TryUpdateModel(c *gin.Context, dst, input any, fields ...string) FieldErrors {
	return b.bind(c, dst, input, false, fields)
}

// bind always copies the listed fields that decoded cleanly onto dst, even when other
// fields fail, so a redisplayed form keeps what the user submitted.
func (b *GinModelBinder) bind(c *gin.Context, dst, input any, requireAll bool, fields []string) FieldErrors {
	errs := FieldErrors{}

	if err := decodeFields(c, input, fields, errs); err != nil {
		errs.Add(ModelErrorKey, "Invalid request data: "+err.Error())
		return errs
	}

	applied, err := Apply(dst, input, fields...)
	if err != nil {
		errs.Add(ModelErrorKey, err.Error())
		return errs
	}

	if requireAll {
		supplied := make(map[string]bool, len(applied))
		for _, f := range applied {
			supplied[f] = true
		}
		for _, f := range fields {
			if !supplied[f] && len(errs[f]) == 0 {
				errs.Add(f, f+" is required")
			}
		}
	}

	b.collect(errs, dst)
	return errs
}

// collect validates obj and adds a message for every failing field that has no
// message yet.
func (b *GinModelBinder) collect(errs FieldErrors, obj any) {
	err := b.validate.Struct(obj)
	if err == nil {
		return
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs.Add(ModelErrorKey, err.Error())
		return
	}

	reported := make(map[string]bool, len(errs))
	for field := range errs {
		reported[field] = true
	}
	for _, fe := range verrs {
		if reported[fe.Field()] {
			continue
		}
		errs.Add(fe.Field(), formatValidationError(fe))
	}
}

// decodeFields binds each listed field of the request onto input on its own. A field
// that fails to decode is reported under its name and left unset. The returned error
// is for a body that cannot be read at all.
func decodeFields(c *gin.Context, input any, fields []string, errs FieldErrors) error {
	if c.Request == nil {
		return nil
	}
	iv, err := structElem(input, "input")
	if err != nil {
		return err
	}
	index := fieldIndex(iv.Type())

	if c.ContentType() == gin.MIMEJSON {
		return decodeJSONFields(c, input, iv.Type(), index, fields, errs)
	}
	return decodeFormFields(c, input, iv.Type(), index, fields, errs)
}

func decodeJSONFields(c *gin.Context, input any, t reflect.Type, index map[string]int, fields []string, errs FieldErrors) error {
	if c.Request.Body == nil {
		return nil
	}
	body, err := c.GetRawData()
	if err != nil {
		return err
	}
	if len(bytes.TrimSpace(body)) == 0 {
		return nil
	}

	var values map[string]json.RawMessage
	if err := json.Unmarshal(body, &values); err != nil {
		return err
	}

	for _, name := range fields {
		raw, ok := values[name]
		if !ok {
			continue
		}
		i, ok := index[name]
		if !ok {
			continue
		}
		single, err := json.Marshal(map[string]json.RawMessage{name: raw})
		if err != nil {
			return err
		}
		if err := ginbinding.JSON.BindBody(single, input); err != nil {
			errs.Add(name, invalidValueMessage(name, t.Field(i)))
		}
	}
	return nil
}

func decodeFormFields(c *gin.Context, input any, t reflect.Type, index map[string]int, fields []string, errs FieldErrors) error {
	if err := c.Request.ParseForm(); err != nil {
		return err
	}
	if strings.HasPrefix(c.ContentType(), gin.MIMEMultipartPOSTForm) {
		if _, err := c.MultipartForm(); err != nil {
			return err
		}
	}

	for _, name := range fields {
		i, ok := index[name]
		if !ok {
			continue
		}
		key := formFieldName(t.Field(i))
		values := c.Request.Form[key]
		if len(values) == 0 || strings.TrimSpace(values[0]) == "" {
			continue
		}
		if err := ginbinding.MapFormWithTag(input, map[string][]string{key: values}, "form"); err != nil {
			errs.Add(name, invalidValueMessage(name, t.Field(i)))
		}
	}
	return nil
}

func invalidValueMessage(name string, fld reflect.StructField) string {
	t := fld.Type
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	return fmt.Sprintf("%s must be a valid %s", name, t)
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "gt":
		return e.Field() + " must be greater than " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}

func jsonFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func formFieldName(fld reflect.StructField) string {
	name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	if name == "" || name == "-" {
		return jsonFieldName(fld)
	}
	return name
}
