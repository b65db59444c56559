package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	apperror "gorecipes/internal/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Usa o nome do campo JSON nas mensagens e nos erros por campo.
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return fld.Name
			}
			return name
		})
	})
	return validate
}

// messages traduz (campo, tag) para o texto exibido nos formulários.
var messages = map[string]string{
	"title.min":           "Title must be at least 3 characters",
	"description.min":     "Description must be at least 10 characters",
	"category.required":   "Please select a category",
	"cooking_time.min":    "Cooking time must be at least 1 minute",
	"servings.min":        "Servings must be at least 1",
	"difficulty.required": "Please select a difficulty level",
	"instructions.min":    "Instructions must be at least 20 characters",
	"image_url.url":       "Please enter a valid URL",
	"email.required":      "Please enter a valid email address",
	"email.email":         "Please enter a valid email address",
	"password.min":        "Password must be at least 6 characters",
	"name.min":            "Name must be at least 2 characters",
	"avatar_url.url":      "Please enter a valid URL",
	"bio.max":             "Bio must not exceed 500 characters",
	"website.url":         "Please enter a valid URL",
}

// Struct valida s e devolve um *errors.ValidationError para o primeiro campo inválido.
func Struct(s interface{}) error {
	errs := Fields(s)
	if len(errs) == 0 {
		return nil
	}
	return errs[0]
}

// Fields valida s e devolve um erro por campo inválido, na ordem de declaração.
func Fields(s interface{}) []*apperror.ValidationError {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*apperror.ValidationError{{Msg: err.Error()}}
	}

	out := make([]*apperror.ValidationError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, &apperror.ValidationError{Field: fe.Field(), Msg: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	if msg, ok := messages[fe.Field()+"."+fe.Tag()]; ok {
		return msg
	}
	return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
}
