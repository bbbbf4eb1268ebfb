package bind

import (
	"reflect"
	"strings"
	"sync"

	perr "entitylens/internal/platform/errors"
	"entitylens/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
	"golang.org/x/text/language"
)

// FieldLevel aliases validator.FieldLevel for custom tags
type FieldLevel = validator.FieldLevel

// AutoLocale is accepted by the locale tag and resolved later from the input text
const AutoLocale = "auto"

// ValidatorSvc is the shared validator and its english translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// message overrides; {0} is the field, {1} the tag param when withParam
var messages = []struct {
	tag       string
	text      string
	withParam bool
}{
	{"min", "{0} must be at least {1}", true},
	{"max", "{0} must be at most {1}", true},
	{"locale", "{0} must be a BCP 47 language tag or auto", false},
	{"region", "{0} must be a two letter region code", false},
}

// Get returns the validator, building it on first use
func Get() *ValidatorSvc {
	vOnce.Do(func() {
		loc := en.New()
		trans, _ := ut.New(loc, loc).GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(jsonName)
		_ = en_translations.RegisterDefaultTranslations(v, trans)

		_ = v.RegisterValidation("locale", validLocale)
		_ = v.RegisterValidation("region", validRegion)
		for _, m := range messages {
			registerMessage(v, trans, m.tag, m.text, m.withParam)
		}
		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// RegisterValidation registers or replaces a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// Validate runs struct validation on v and maps failures to project errors
// used directly for inputs that do not come from a JSON body, e.g. query strings
func Validate(v any) error {
	err := Get().Validator.Struct(v)
	if err == nil {
		return nil
	}
	if inv, ok := err.(*validator.InvalidValidationError); ok {
		logger.Get().Error().Err(inv).Msg("validator internal error")
		return perr.JSONErrf("validation error")
	}
	field, msg := ValidationFieldAndMessage(err)
	return perr.WithField(perr.Newf(perr.ErrorCodeValidation, "%s", msg), field)
}

// ValidationFieldAndMessage returns the first failing field and its translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	switch e := err.(type) {
	case nil:
		return "", ""
	case validator.ValidationErrors:
		if len(e) > 0 {
			return e[0].Field(), e[0].Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

// jsonName reports fields by their json name; "-" and untagged fields keep the Go name
func jsonName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "" || name == "-" {
		return f.Name
	}
	return name
}

func registerMessage(v *validator.Validate, trans ut.Translator, tag, text string, withParam bool) {
	_ = v.RegisterTranslation(tag, trans,
		func(t ut.Translator) error { return t.Add(tag, text, true) },
		func(t ut.Translator, fe validator.FieldError) string {
			params := []string{fe.Field()}
			if withParam {
				params = append(params, fe.Param())
			}
			msg, _ := t.T(tag, params...)
			return msg
		},
	)
}

// validLocale accepts a BCP 47 tag (underscores allowed) or "auto"
func validLocale(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" || strings.EqualFold(s, AutoLocale) {
		return true
	}
	_, err := language.Parse(s)
	return err == nil
}

// validRegion accepts a two letter ISO 3166 region code
func validRegion(fl validator.FieldLevel) bool {
	s := strings.TrimSpace(fl.Field().String())
	if s == "" {
		return true
	}
	if len(s) != 2 {
		return false
	}
	_, err := language.ParseRegion(s)
	return err == nil
}
