// Package forms defines the typed input of every portal form together with
// its constraints and defaults. Validation happens here, before any state
// component is touched.
package forms

import (
	"errors"
	"reflect"
	"regexp"
	"sort"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// FieldErrors maps a field's JSON name to the message shown next to it.
type FieldErrors map[string]string

func (fe FieldErrors) Add(field, msg string) {
	if _, exists := fe[field]; !exists {
		fe[field] = msg
	}
}

func (fe FieldErrors) Error() string {
	keys := make([]string, 0, len(fe))
	for k := range fe {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+fe[k])
	}
	return strings.Join(parts, "; ")
}

// messager is implemented by forms that word their own messages. The key
// is "<json field>.<validator tag>".
type messager interface {
	messages() map[string]string
}

var (
	validate = newValidator()
	hexColor = regexp.MustCompile(`^#([A-Fa-f0-9]{6}|[A-Fa-f0-9]{3})$`)
)

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return f.Name
		}
		return name
	})
	must(v.RegisterValidation("hexrgb", func(fl validator.FieldLevel) bool {
		return hexColor.MatchString(fl.Field().String())
	}))
	must(v.RegisterValidation("has_upper", runeCheck(unicode.IsUpper)))
	must(v.RegisterValidation("has_lower", runeCheck(unicode.IsLower)))
	must(v.RegisterValidation("has_digit", runeCheck(unicode.IsDigit)))
	return v
}

func runeCheck(pred func(rune) bool) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return strings.IndexFunc(fl.Field().String(), pred) >= 0
	}
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}

// Validate checks form and returns nil or the per-field messages.
func Validate(form any) FieldErrors {
	err := validate.Struct(form)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return FieldErrors{"_form": err.Error()}
	}
	var msgs map[string]string
	if m, ok := form.(messager); ok {
		msgs = m.messages()
	}
	out := FieldErrors{}
	for _, fe := range verrs {
		field := fe.Field()
		if msg, ok := msgs[field+"."+fe.Tag()]; ok {
			out.Add(field, msg)
			continue
		}
		out.Add(field, fallback(fe))
	}
	return out
}

func fallback(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return "Must be one of: " + fe.Param()
	case "email":
		return "Please enter a valid email address"
	case "url":
		return "Please enter a valid URL"
	case "hexrgb":
		return "Please enter a valid hex color"
	case "min":
		return "Must be at least " + fe.Param() + " characters"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	}
	return "Invalid value"
}
