package categoryValidator

import (
	"errors"
	"reflect"
	"strings"

	"foyer/middleware"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateCategoryRequest is the validated body for POST /categories.
// Colors are full hex triplets (#RRGGBB).
type CreateCategoryRequest struct {
	Name  string `json:"name" validate:"required,max=50"`
	Icon  string `json:"icon" validate:"required"`
	Color string `json:"color" validate:"required,hexcolor,len=7"`
	Type  string `json:"type" validate:"required,oneof=income expense both"`
}

// UpdateCategoryRequest relaxes every field to optional but keeps the
// per-field format constraints.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" validate:"omitempty,max=50"`
	Icon  *string `json:"icon" validate:"omitempty,min=1"`
	Color *string `json:"color" validate:"omitempty,hexcolor,len=7"`
	Type  *string `json:"type" validate:"omitempty,oneof=income expense both"`
}

// CreateCategory validator middleware
func CreateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := collectErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCategory", reqData)
		return c.Next()
	}
}

// UpdateCategory validator middleware
func UpdateCategory() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateCategoryRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := collectErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedCategoryUpdate", reqData)
		return c.Next()
	}
}

func collectErrors(err error) map[string]string {
	if err == nil {
		return nil
	}
	errs := make(map[string]string)
	var violations validator.ValidationErrors
	if !errors.As(err, &violations) {
		errs["body"] = "Invalid request body!"
		return errs
	}
	for _, violation := range violations {
		errs[violation.Field()] = messageFor(violation)
	}
	return errs
}

func messageFor(violation validator.FieldError) string {
	switch violation.Tag() {
	case "required":
		return "This field is required!"
	case "max":
		return "Must be at most " + violation.Param() + " characters long!"
	case "hexcolor", "len":
		return "Invalid color format (#RRGGBB)!"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(violation.Param(), " ", ", ") + "!"
	default:
		return "Invalid value!"
	}
}
