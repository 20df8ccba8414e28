package utils

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/kataras/iris/v12"
)

// HandleValidationErrors converts ReadJSON/validator failures into a 400 with
// per-field messages.
func HandleValidationErrors(err error, ctx iris.Context) {
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := iris.Map{}
		for _, fieldErr := range validationErrs {
			fields[strings.ToLower(fieldErr.Field()[:1])+fieldErr.Field()[1:]] = fieldErr.Tag()
		}
		ctx.StatusCode(iris.StatusBadRequest)
		ctx.JSON(iris.Map{
			"error":   "invalid_request",
			"message": "validation failed",
			"fields":  fields,
		})
		return
	}

	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{"error": "invalid_request", "message": err.Error()})
}
