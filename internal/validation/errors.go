// Package validation rassemble les erreurs de saisie par champ, renvoyées
// telles quelles en 400 : {"champ": ["message", ...]}.
package validation

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/go-playground/validator/v10"
)

type Errors map[string][]string

func (e Errors) Add(field, message string) {
	e[field] = append(e[field], message)
}

func (e Errors) Empty() bool {
	return len(e) == 0
}

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for f := range e {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		parts = append(parts, fmt.Sprintf("%s: %s", f, strings.Join(e[f], "; ")))
	}
	return strings.Join(parts, ", ")
}

// OneOf construit le message listant les valeurs autorisées
func OneOf(label string, allowed []string) string {
	return fmt.Sprintf("%s must be one of: %s", label, strings.Join(allowed, ", "))
}

// FromBinding convertit les erreurs du validateur de gin en Errors.
// Le nom de champ est celui du tag json (voir RegisterBindings).
func FromBinding(err error) Errors {
	out := Errors{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		out.Add("non_field_errors", "Invalid request body.")
		return out
	}
	for _, fe := range verrs {
		out.Add(fe.Field(), messageFor(fe))
	}
	return out
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "email":
		return "Enter a valid email address."
	case "max":
		return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
	case "username":
		return "Enter a valid username. This value may contain only letters, numbers, and @/./+/-/_ characters."
	default:
		return fmt.Sprintf("Invalid value (%s).", fe.Tag())
	}
}
