// Package bind provides query string bind and validation helpers for handlers
package bind

import (
	"errors"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	perr "assetsearch/internal/platform/errors"
	"assetsearch/internal/platform/logger"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"
)

// FieldLevel aliases validator.FieldLevel
type FieldLevel = validator.FieldLevel

// FieldError aliases validator.FieldError
type FieldError = validator.FieldError

// ValidatorSvc holds a singleton validator and translator
type ValidatorSvc struct {
	Validator  *validator.Validate
	Translator ut.Translator
}

var (
	vOnce sync.Once
	vSvc  *ValidatorSvc
)

// Init initializes the singleton validator with english translations and query tag names
func Init() *ValidatorSvc {
	vOnce.Do(func() {
		enLoc := en.New()
		uni := ut.New(enLoc, enLoc)
		trans, _ := uni.GetTranslator("en")

		v := validator.New(validator.WithRequiredStructEnabled())

		// prefer the query parameter name in messages
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			if name := tagName(fld); name != "" {
				return name
			}
			return fld.Name
		})

		_ = en_translations.RegisterDefaultTranslations(v, trans)

		// short messages for min and max
		registerShort(v, trans, "min", "{0} must be at least {1}")
		registerShort(v, trans, "max", "{0} must be at most {1}")

		// custom tag for utf-8 safe text input
		_ = v.RegisterValidation("printable", printable)
		registerShort(v, trans, "printable", "{0} contains control characters")

		vSvc = &ValidatorSvc{Validator: v, Translator: trans}
	})
	return vSvc
}

// Get returns the validator singleton, initializing on first use
func Get() *ValidatorSvc { return Init() }

// RegisterValidation registers a custom tag
func RegisterValidation(tag string, fn validator.Func) error {
	return Get().Validator.RegisterValidation(tag, fn)
}

// ParseQuery decodes r.URL.Query() into T using `query` tags, validates it, and maps
// failures to project errors.
//
// Supported field kinds are string, bool and the int family. An int field tagged
// `query:"page,lenient"` falls back to its zero value on a malformed number instead
// of failing the request
func ParseQuery[T any](r *http.Request) (T, error) {
	var dst T
	rv := reflect.ValueOf(&dst).Elem()
	if rv.Kind() != reflect.Struct {
		return dst, perr.Internalf("bind: %T is not a struct", dst)
	}
	if err := decodeValues(r.URL.Query(), rv); err != nil {
		var zero T
		return zero, err
	}

	if err := Get().Validator.Struct(dst); err != nil {
		var inv *validator.InvalidValidationError
		if errors.As(err, &inv) {
			logger.C(r.Context()).Error().Err(inv).Msg("validator internal error")
			var zero T
			return zero, perr.Internalf("validation error")
		}
		field, msg := ValidationFieldAndMessage(err)
		var zero T
		return zero, perr.WithField(perr.Validationf("%s", msg), field)
	}
	return dst, nil
}

func decodeValues(vals url.Values, rv reflect.Value) error {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		name := tagName(sf)
		if name == "" {
			continue
		}
		raw, present := vals[name]
		if !present || len(raw) == 0 {
			continue
		}
		s := raw[0]
		fv := rv.Field(i)

		switch fv.Kind() {
		case reflect.String:
			fv.SetString(s)
		case reflect.Bool:
			// presence is truthy unless explicitly false, so ?ajax and ?ajax=1 both count
			b, err := strconv.ParseBool(s)
			fv.SetBool(s == "" || err != nil || b)
		case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
			n, err := strconv.ParseInt(strings.TrimSpace(s), 10, fv.Type().Bits())
			if err != nil {
				if lenient(sf) {
					continue
				}
				return perr.WithField(perr.Validationf("%s must be an integer", name), name)
			}
			fv.SetInt(n)
		default:
			return perr.Internalf("bind: unsupported kind %s for %s", fv.Kind(), sf.Name)
		}
	}
	return nil
}

func tagName(sf reflect.StructField) string {
	tag := sf.Tag.Get("query")
	if tag == "-" {
		return ""
	}
	if idx := strings.Index(tag, ","); idx >= 0 {
		tag = tag[:idx]
	}
	return tag
}

func lenient(sf reflect.StructField) bool {
	_, opts, _ := strings.Cut(sf.Tag.Get("query"), ",")
	for _, o := range strings.Split(opts, ",") {
		if o == "lenient" {
			return true
		}
	}
	return false
}

// ValidationFieldAndMessage returns the first field and translated message
func ValidationFieldAndMessage(err error) (field, message string) {
	if err == nil {
		return "", ""
	}
	var inv *validator.InvalidValidationError
	if errors.As(err, &inv) {
		return "", inv.Error()
	}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			return fe.Field(), fe.Translate(Get().Translator)
		}
	}
	return "", err.Error()
}

func printable(fl FieldLevel) bool {
	for _, r := range fl.Field().String() {
		if r < 0x20 && r != '\t' || r == 0x7f {
			return false
		}
	}
	return true
}

func registerShort(v *validator.Validate, trans ut.Translator, tag, text string) {
	_ = v.RegisterTranslation(tag, trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, text, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			msg, _ := ut.T(tag, fe.Field(), fe.Param())
			return msg
		},
	)
}
