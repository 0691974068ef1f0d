package handlers

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/arnold/activities-api/internal/logger"
	"github.com/arnold/activities-api/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their wire name, never the Go field name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(fld.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return fld.Name
	})

	// Validate the value inside an optional; an unset or null one counts as empty.
	v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if o, ok := field.Interface().(models.OptionalString); ok {
			return o.Value
		}
		return nil
	}, models.OptionalString{})

	return v
}

// validationDetail turns validator errors into "field: reason" messages.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return "Invalid request"
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field(), describeRule(fe)))
	}
	return strings.Join(msgs, "; ")
}

func describeRule(fe validator.FieldError) string {
	isString := fe.Kind() == reflect.String
	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "value is not a valid email address"
	case "min":
		if isString {
			return fmt.Sprintf("must have at least %s characters", fe.Param())
		}
		return fmt.Sprintf("must be greater than or equal to %s", fe.Param())
	case "max":
		if isString {
			return fmt.Sprintf("must have at most %s characters", fe.Param())
		}
		return fmt.Sprintf("must be less than or equal to %s", fe.Param())
	default:
		return fmt.Sprintf("failed the %q rule", fe.Tag())
	}
}

func validateStruct(v interface{}) error {
	if err := validate.Struct(v); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, validationDetail(err))
	}
	if checker, ok := v.(interface{ Validate() error }); ok {
		if err := checker.Validate(); err != nil {
			return fiber.NewError(fiber.StatusUnprocessableEntity, err.Error())
		}
	}
	return nil
}

// parseBody decodes the request body into out and runs its validate tags.
func parseBody(c *fiber.Ctx, out interface{}) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid request body")
	}
	return validateStruct(out)
}

func parseID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, fiber.NewError(fiber.StatusUnprocessableEntity, "Invalid ID")
	}
	return id, nil
}

// ErrorHandler renders every error as {"detail": msg}. Errors that are not
// *fiber.Error are logged and hidden behind a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Internal server error"

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
		msg = e.Message
	} else {
		logger.FromCtx(c).WithError(err).Error("request failed")
	}

	return c.Status(code).JSON(fiber.Map{
		"detail": msg,
	})
}
