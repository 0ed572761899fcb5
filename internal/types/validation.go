package types

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/go-playground/validator/v10/non-standard/validators"
)

// validate reads the same `binding` tags gin does and reports fields by
// their JSON names.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.SetTagName("binding")
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("notblank", validators.NotBlank); err != nil {
		panic(err)
	}
	v.RegisterStructValidation(projectDatesInOrder, ProjectInput{})
	return v
}

func projectDatesInOrder(sl validator.StructLevel) {
	p := sl.Current().Interface().(ProjectInput)
	if p.StartD != nil && p.EndD != nil && p.EndD.Before(p.StartD.Time) {
		sl.ReportError(p.EndD, "end_d", "EndD", "gtefield", "start_d")
	}
}

// profileFields carries the present values of an UpdateProfileRequest.
// Limits follow the column widths.
type profileFields struct {
	PersonalPhone *string        `json:"personal_phone" binding:"omitempty,max=64"`
	Telegram      *string        `json:"telegram" binding:"omitempty,max=255"`
	AboutMe       *string        `json:"about_me" binding:"omitempty,max=1000"`
	Projects      []ProjectInput `json:"projects" binding:"omitempty,dive"`
}

// Validate checks the values present in the request
func (r *UpdateProfileRequest) Validate() error {
	fields := profileFields{
		PersonalPhone: r.PersonalPhone.Ptr(),
		Telegram:      r.Telegram.Ptr(),
		AboutMe:       r.AboutMe.Ptr(),
	}
	if r.Projects.HasValue() {
		fields.Projects = r.Projects.Value
	}
	return validate.Struct(fields)
}

// InvalidField names the first field a Validate error points at, with
// list indexes dropped: "projects.name" for projects[2].name.
func InvalidField(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "body"
	}
	ns := verrs[0].Namespace()
	if _, rest, ok := strings.Cut(ns, "."); ok {
		ns = rest
	}

	var b strings.Builder
	inIndex := false
	for _, r := range ns {
		switch {
		case r == '[':
			inIndex = true
		case r == ']':
			inIndex = false
		case !inIndex:
			b.WriteRune(r)
		}
	}
	return b.String()
}
