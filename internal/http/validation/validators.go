// Package validation validates decoded form structs and turns failures into
// per-field messages keyed by the struct's `form` tag.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FormErrorKey holds errors that do not belong to a single field.
const FormErrorKey = "form"

const notBlankTag = "notblank"

//nolint:gochecknoglobals // shared, concurrency-safe validator instance
var (
	validate   *validator.Validate
	translator ut.Translator
)

func init() {
	validate = validator.New(validator.WithRequiredStructEnabled())

	english := en.New()
	uni := ut.New(english, english)
	translator, _ = uni.GetTranslator("en")
	_ = en_translations.RegisterDefaultTranslations(validate, translator)

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	_ = validate.RegisterValidation(notBlankTag, notBlank)

	// The default translations are registered already, so only the message func is swapped.
	noop := func(ut.Translator) error { return nil }
	for _, tag := range []string{
		"required", notBlankTag, "max", "min", "len", "email", "eqfield", "gtfield", "oneof", "numeric",
	} {
		_ = validate.RegisterTranslation(tag, translator, noop, message)
	}
}

// Struct validates s and returns the first failure message per field.
// A nil map means s is valid.
func Struct(s any) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{FormErrorKey: "Invalid form submission."}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		key := fe.Field()
		if _, seen := out[key]; seen {
			continue
		}
		out[key] = fe.Translate(translator)
	}
	return out
}

func notBlank(fl validator.FieldLevel) bool {
	if s, ok := fl.Field().Interface().(string); ok {
		return strings.TrimSpace(s) != ""
	}
	return false
}

func message(_ ut.Translator, fe validator.FieldError) string {
	label := Humanize(fe.StructField())
	switch fe.Tag() {
	case "required", notBlankTag:
		return label + " is required."
	case "max":
		if fe.Kind() == reflect.String {
			return label + " cannot exceed " + fe.Param() + " characters."
		}
		return label + " cannot be greater than " + fe.Param() + "."
	case "min":
		if fe.Kind() == reflect.String {
			return label + " must be at least " + fe.Param() + " characters."
		}
		return label + " must be at least " + fe.Param() + "."
	case "len":
		return label + " must be exactly " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "eqfield":
		return label + " must match " + strings.ToLower(Humanize(fe.Param())) + "."
	case "gtfield":
		return label + " must be after " + strings.ToLower(Humanize(fe.Param())) + "."
	case "oneof":
		return label + " must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ") + "."
	case "numeric":
		return label + " must contain digits only."
	}
	return fe.Error()
}

// Humanize turns a Go field name into a sentence-case label:
// "FirstClosureDate" becomes "First closure date", "EventID" becomes "Event ID".
func Humanize(name string) string {
	words := splitCamel(name)
	for i, w := range words {
		if i == 0 || isAcronym(w) {
			continue
		}
		words[i] = strings.ToLower(w)
	}
	return strings.Join(words, " ")
}

func splitCamel(s string) []string {
	rs := []rune(s)
	var words []string
	start := 0
	for i := 1; i < len(rs); i++ {
		prev, cur := rs[i-1], rs[i]
		nextLower := i+1 < len(rs) && unicode.IsLower(rs[i+1])
		if unicode.IsUpper(cur) && (unicode.IsLower(prev) || (unicode.IsUpper(prev) && nextLower)) {
			words = append(words, string(rs[start:i]))
			start = i
		}
	}
	if start < len(rs) {
		words = append(words, string(rs[start:]))
	}
	return words
}

func isAcronym(w string) bool {
	if len(w) < 2 {
		return false
	}
	for _, r := range w {
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}
