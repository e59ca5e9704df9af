package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"ecotech_server/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// Trans is the translator used to render validation errors.
var Trans ut.Translator

// customTags maps each form-specific validation tag to its check and its English message.
var customTags = []struct {
	tag     string
	check   func(string) bool
	message string
}{
	{"year_of_study", model.IsValidYearOfStudy, "{0} must be one of the listed years of study"},
	{"internship_domain", model.IsValidDomain, "{0} must be one of the listed internship domains"},
	{"application_status", model.IsValidStatus, "{0} must be pending, reviewed, accepted or rejected"},
}

// InitTrans wires gin's validator: form tag names in messages, the custom tags and the
// translator for locale. Only "en" ships translations; any other locale falls back to it.
func InitTrans(locale string) (err error) {
	if binding.Validator == nil {
		binding.Validator = &defaultValidator{validator: validator.New()}
	}

	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}

	// report fields by their form name ("year_of_study"), not the Go field name
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})

	enT := en.New()
	uni := ut.New(enT, enT)
	Trans, ok = uni.GetTranslator(locale)
	if !ok {
		Trans, _ = uni.GetTranslator("en")
	}
	if err = en_translations.RegisterDefaultTranslations(v, Trans); err != nil {
		return err
	}

	for _, ct := range customTags {
		check := ct.check
		if err = v.RegisterValidation(ct.tag, func(fl validator.FieldLevel) bool {
			return check(fl.Field().String())
		}); err != nil {
			return err
		}
		message := ct.message
		tag := ct.tag
		err = v.RegisterTranslation(tag, Trans,
			func(t ut.Translator) error { return t.Add(tag, message, true) },
			func(t ut.Translator, fe validator.FieldError) string {
				msg, _ := t.T(tag, fe.Field())
				return msg
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// RemoveTopStruct strips the struct name from validator keys ("ApplyRequest.email" -> "email").
func RemoveTopStruct(fields map[string]string) map[string]string {
	res := make(map[string]string, len(fields))
	for field, err := range fields {
		res[field[strings.Index(field, ".")+1:]] = err
	}
	return res
}

// FieldErrors turns a binding error into per-field messages keyed by form name.
// ok is false when err is not a validation error.
func FieldErrors(err error) (map[string]string, bool) {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return nil, false
	}
	if Trans == nil {
		out := make(map[string]string, len(validationErrs))
		for _, fe := range validationErrs {
			out[fe.Field()] = fe.Error()
		}
		return out, true
	}
	return RemoveTopStruct(validationErrs.Translate(Trans)), true
}

// defaultValidator backs binding.Validator when gin has not set one.
type defaultValidator struct {
	validator *validator.Validate
}

func (v *defaultValidator) ValidateStruct(obj interface{}) error {
	return v.validator.Struct(obj)
}

func (v *defaultValidator) Engine() interface{} {
	return v.validator
}
