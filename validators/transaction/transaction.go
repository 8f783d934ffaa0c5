package transactionValidator

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
	// Report violations under the json field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// CreateTransactionRequest is the validated body for POST /transactions.
type CreateTransactionRequest struct {
	Amount      float64 `json:"amount" validate:"required,gt=0"`
	Type        string  `json:"type" validate:"required,oneof=income expense"`
	CategoryID  uint    `json:"category_id" validate:"required,gt=0"`
	Description *string `json:"description" validate:"omitempty,max=255"`
	Date        string  `json:"date" validate:"required,datetime=2006-01-02"`
}

// UpdateTransactionRequest relaxes every field to optional but keeps the
// per-field format constraints. All-nil is a valid no-op update.
type UpdateTransactionRequest struct {
	Amount      *float64 `json:"amount" validate:"omitempty,gt=0"`
	Type        *string  `json:"type" validate:"omitempty,oneof=income expense"`
	CategoryID  *uint    `json:"category_id" validate:"omitempty,gt=0"`
	Description *string  `json:"description" validate:"omitempty,max=255"`
	Date        *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
}

// CreateTransaction validator middleware
func CreateTransaction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(CreateTransactionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := collectErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedTransaction", reqData)
		return c.Next()
	}
}

// UpdateTransaction validator middleware
func UpdateTransaction() fiber.Handler {
	return func(c *fiber.Ctx) error {
		reqData := new(UpdateTransactionRequest)
		if err := c.BodyParser(reqData); err != nil {
			return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
		}

		if errs := collectErrors(validate.Struct(reqData)); len(errs) > 0 {
			return middleware.ValidationErrorResponse(c, errs)
		}

		c.Locals("validatedTransactionUpdate", reqData)
		return c.Next()
	}
}

// collectErrors flattens validator violations into a field -> message map so
// every broken field is reported in one response.
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
	case "gt":
		return "Must be greater than 0!"
	case "oneof":
		return "Must be one of: " + strings.ReplaceAll(violation.Param(), " ", ", ") + "!"
	case "datetime":
		return "Invalid date format (YYYY-MM-DD)!"
	case "max":
		return "Must be at most " + violation.Param() + " characters long!"
	default:
		return "Invalid value!"
	}
}
