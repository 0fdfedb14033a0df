package util

import (
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"

	"github.com/DS-LIT/hrba-forms/internal/model"
	"github.com/DS-LIT/hrba-forms/internal/pkg/signature"
)

var (
	digitsRegex     = regexp.MustCompile(`^[0-9]+$`)
	looseEmailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	clockTimeRegex  = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9](:[0-5][0-9](\.[0-9]{1,3})?)?$`)
)

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonTagName)
	validate.RegisterValidation("digits", digits)
	validate.RegisterValidation("looseemail", looseEmail)
	validate.RegisterValidation("clocktime", clockTime)
	validate.RegisterValidation("isodate", isoDate)
	validate.RegisterValidation("teamcolour", teamColour)
	validate.RegisterValidation("allegation", allegation)
	validate.RegisterValidation("signature", signatureDataURL)
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})

	return validate
}

func jsonTagName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return fld.Name
	}
	return name
}

func digits(fl validator.FieldLevel) bool {
	return digitsRegex.MatchString(fl.Field().String())
}

func looseEmail(fl validator.FieldLevel) bool {
	return looseEmailRegex.MatchString(fl.Field().String())
}

func clockTime(fl validator.FieldLevel) bool {
	return clockTimeRegex.MatchString(fl.Field().String())
}

func isoDate(fl validator.FieldLevel) bool {
	_, err := time.Parse(time.DateOnly, fl.Field().String())
	return err == nil
}

func teamColour(fl validator.FieldLevel) bool {
	return model.DefaultCatalog().IsColour(fl.Field().String())
}

func allegation(fl validator.FieldLevel) bool {
	return model.DefaultCatalog().IsAllegation(fl.Field().String())
}

func signatureDataURL(fl validator.FieldLevel) bool {
	_, err := signature.Decode(fl.Field().String())
	return err == nil
}

func nullStringValuer(field reflect.Value) any {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}

	return nil
}
