package rekuest

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/gofiber/fiber/v2"

	"github.com/DS-LIT/hrba-forms/internal/util/i18n"
)

const TranslatorLocalsKey = "T"

// TranslatorFromCtx returns the translator the i18n middleware picked, or the fallback.
func TranslatorFromCtx(ctx *fiber.Ctx) ut.Translator {
	if t, ok := ctx.Locals(TranslatorLocalsKey).(ut.Translator); ok {
		return t
	}
	return i18n.UT.GetFallback()
}
