package form

import (
	"errors"
	"fmt"
	"maps"
	"net/http"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/ardoise/internal/money"
)

// Option is one choice of a select widget.
type Option struct {
	Value string
	Label string
}

// BoundField is a declared field with the state needed to render it.
type BoundField struct {
	Field
	Value   string
	Error   string
	Options []Option
}

type Form struct {
	decl     Declaration
	values   map[string]string
	errors   map[string]string
	options  map[string][]Option
	NonField []string
}

func New(decl Declaration) *Form {
	return &Form{
		decl:    decl,
		values:  make(map[string]string),
		errors:  make(map[string]string),
		options: make(map[string][]Option),
	}
}

func (f *Form) Name() string {
	return f.decl.Name
}

// SetOptions restricts a select field. Bind rejects any value outside opts.
func (f *Form) SetOptions(name string, opts []Option) {
	f.options[name] = opts
}

func (f *Form) SetValue(name, value string) {
	f.values[name] = value
}

func (f *Form) Value(name string) string {
	return f.values[name]
}

func (f *Form) AddError(name, msg string) {
	if name == "" {
		f.NonField = append(f.NonField, msg)
		return
	}

	f.errors[name] = msg
}

func (f *Form) Error(name string) string {
	return f.errors[name]
}

func (f *Form) Valid() bool {
	return len(f.errors) == 0 && len(f.NonField) == 0
}

func (f *Form) Fields() []BoundField {
	out := make([]BoundField, len(f.decl.Fields))
	for i, field := range f.decl.Fields {
		out[i] = BoundField{
			Field:   field,
			Value:   f.values[field.Name],
			Error:   f.errors[field.Name],
			Options: f.options[field.Name],
		}
	}

	return out
}

// Bind copies the submitted values of r into the form and into dst, a pointer
// to an input struct with `form` tags, then validates dst. It reports whether
// the submission is valid.
func (f *Form) Bind(r *http.Request, dst any) (bool, error) {
	if err := r.ParseForm(); err != nil {
		return false, fmt.Errorf("parsing form: %w", err)
	}

	for _, field := range f.decl.Fields {
		f.values[field.Name] = strings.TrimSpace(r.PostForm.Get(field.Name))
	}

	if err := decode(f.values, dst); err != nil {
		return false, err
	}

	errs, err := Check(dst)
	if err != nil {
		return false, fmt.Errorf("validating %s form: %w", f.decl.Name, err)
	}

	maps.Copy(f.errors, errs)

	for name, opts := range f.options {
		v := f.values[name]
		if v == "" || f.errors[name] != "" {
			continue
		}

		if !slices.ContainsFunc(opts, func(o Option) bool { return o.Value == v }) {
			f.errors[name] = InvalidChoice
		}
	}

	return f.Valid(), nil
}

// Check validates an input struct already filled in and returns the French
// message of each invalid field, keyed by its form name.
func Check(dst any) (map[string]string, error) {
	err := validate.Struct(dst)
	if err == nil {
		return nil, nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil, err
	}

	errs := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		errs[fe.Field()] = message(fe)
	}

	return errs, nil
}

func decode(values map[string]string, dst any) error {
	v := reflect.ValueOf(dst)
	if v.Kind() != reflect.Pointer || v.Elem().Kind() != reflect.Struct {
		return fmt.Errorf("form destination must be a struct pointer, got %T", dst)
	}

	v = v.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		name := t.Field(i).Tag.Get("form")
		if name == "" || t.Field(i).Type.Kind() != reflect.String {
			continue
		}

		v.Field(i).SetString(values[name])
	}

	return nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(sf reflect.StructField) string {
		return sf.Tag.Get("form")
	})

	_ = v.RegisterValidation("amount", func(fl validator.FieldLevel) bool {
		_, err := money.Parse(fl.Field().String())
		return err == nil
	})

	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})

	return v
}

const msgRequired = "Ce champ est obligatoire."

// InvalidChoice is reported for a select value outside the offered options.
const InvalidChoice = "Sélectionnez un choix valide. Ce choix ne fait pas partie de ceux disponibles."

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return msgRequired
	case "email":
		return "Saisissez une adresse e-mail valide."
	case "max":
		return fmt.Sprintf("Assurez-vous que cette valeur comporte au plus %s caractères.", fe.Param())
	case "number":
		return InvalidChoice
	case "date":
		return "Saisissez une date valide."
	case "amount":
		return amountMessage(fmt.Sprint(fe.Value()))
	}

	return "Valeur invalide."
}

func amountMessage(raw string) string {
	_, err := money.Parse(raw)

	switch {
	case errors.Is(err, money.ErrNegativeAmount):
		return "Assurez-vous que cette valeur est supérieure ou égale à 0."
	case errors.Is(err, money.ErrTooManyDecimals):
		return fmt.Sprintf("Assurez-vous qu'il n'y a pas plus de %d chiffres après la virgule.", money.Places)
	case errors.Is(err, money.ErrTooManyDigits):
		return fmt.Sprintf("Assurez-vous qu'il n'y a pas plus de %d chiffres avant la virgule.", money.MaxIntegerDigits)
	}

	return "Saisissez un nombre."
}
