package rekuest

import (
	"errors"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/DS-LIT/hrba-forms/internal/pkg/apperr"
	"github.com/DS-LIT/hrba-forms/internal/util"
	"github.com/DS-LIT/hrba-forms/internal/util/i18n"
)

var Validate = util.NewValidator()

var customMessages = map[string]string{
	"digits":     "{0} must be numeric",
	"looseemail": "{0} must be a valid email address",
	"clocktime":  "{0} must be a time of day formatted as HH:mm",
	"isodate":    "{0} must be a date formatted as YYYY-MM-DD",
	"teamcolour": "{0} must be one of the team colours",
	"allegation": "{0} must be one of the listed allegations",
	"signature":  "{0} must be a PNG or JPEG data URL",
}

func init() {
	for _, locale := range []string{"en", "en_AU"} {
		tr, _ := i18n.UT.GetTranslator(locale)
		if err := enTranslations.RegisterDefaultTranslations(Validate, tr); err != nil {
			log.Warn().Err(err).Str("locale", locale).Msg("could not register translation")
		}

		for tag, msg := range customMessages {
			tag, msg := tag, msg
			err := Validate.RegisterTranslation(tag, tr, func(ut ut.Translator) error {
				return ut.Add(tag, msg, true)
			}, func(ut ut.Translator, fe validator.FieldError) string {
				t, _ := ut.T(tag, fe.Field())
				return t
			})
			if err != nil {
				log.Warn().Err(err).Str("locale", locale).Str("tag", tag).Msg("could not register translation for custom tag")
			}
		}
	}
}

type ErrorResponse struct {
	Field     string `json:"field,omitempty"`
	Violation string `json:"violation"`
	Message   string `json:"message"`
}

func translate(utt ut.Translator, ve validator.ValidationErrors) []*ErrorResponse {
	trans := make([]*ErrorResponse, 0, len(ve))
	for _, fe := range ve {
		trans = append(trans, &ErrorResponse{
			Field:     fe.Namespace(),
			Violation: fe.Tag(),
			Message:   fe.Translate(utt),
		})
	}
	return trans
}

func validateStruct(ctx *fiber.Ctx, s any) ([]*ErrorResponse, error) {
	err := Validate.Struct(s)
	if err == nil {
		return nil, nil
	}
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, err
	}
	return translate(TranslatorFromCtx(ctx), ve), nil
}

// ValidBody will get the body from *fiber.Ctx using fiber#BodyParser(),
// and validate it using the validator singleton. If the validation passed it will write the unmarshalled body
// to dest and return a nil, otherwise it will return an error. Notice that dest shall
// always be a pointer.
func ValidBody(ctx *fiber.Ctx, dest any) error {
	if err := ctx.BodyParser(dest); err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: %s", err)
	}

	return ValidStruct(ctx, dest)
}

func ValidStruct(ctx *fiber.Ctx, dest any) error {
	violations, err := validateStruct(ctx, dest)
	if err != nil {
		return apperr.ErrInvalidReq.Msg("invalid request: %s", err)
	}
	if len(violations) > 0 {
		return apperr.NewInvalidViolations(violations)
	}

	return nil
}
