package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

const maxBodyBytes = 1 << 20

// NewValidator returns a validator reporting fields by their JSON names.
func NewValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// badRequest carries a message meant for the client.
type badRequest struct{ msg string }

func (e badRequest) Error() string { return e.msg }

// decode reads a JSON body into dst and validates it.
func decode(w http.ResponseWriter, r *http.Request, v *validator.Validate, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		var maxErr *http.MaxBytesError
		switch {
		case errors.Is(err, io.EOF):
			return badRequest{"Request body is empty"}
		case errors.As(err, &maxErr):
			return badRequest{"Request body is too large"}
		default:
			return badRequest{"Invalid JSON: " + err.Error()}
		}
	}

	if err := v.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			return badRequest{validationMessage(verrs)}
		}
		return err
	}
	return nil
}

func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fieldProblem(fe))
	}
	return "Validation error: " + strings.Join(parts, "; ")
}

func fieldProblem(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "min":
		return fmt.Sprintf("%s must not be empty", fe.Field())
	case "url":
		return "Please enter a valid URL"
	default:
		return fmt.Sprintf("%s is invalid (%s)", fe.Field(), fe.Tag())
	}
}

// writeDecodeError maps decode failures to 400, anything else to 500.
func writeDecodeError(w http.ResponseWriter, err error, fallback string) {
	var br badRequest
	if errors.As(err, &br) {
		writeMessage(w, http.StatusBadRequest, br.msg)
		return
	}
	writeMessage(w, http.StatusInternalServerError, fallback)
}
