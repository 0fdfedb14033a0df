package i18n

import (
	"github.com/go-playground/locales/en"
	"github.com/go-playground/locales/en_AU"
	ut "github.com/go-playground/universal-translator"
)

// UT holds the translators the API answers validation errors in. en is the fallback.
var UT = ut.New(en.New(), en.New(), en_AU.New())
