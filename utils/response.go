package utils

import (
	"net/http"

	"github.com/nathanael250/travooz-hms-sub003/services"

	"github.com/kataras/iris/v12"
)

type PageMeta struct {
	Page    int   `json:"page"`
	PerPage int   `json:"per_page"`
	Total   int64 `json:"total"`
}

func JSONPage(ctx iris.Context, data interface{}, page, perPage int, total int64) {
	ctx.JSON(iris.Map{
		"data":  data,
		"meta":  PageMeta{Page: page, PerPage: perPage, Total: total},
		"links": iris.Map{},
	})
}

func JSONError(ctx iris.Context, status int, code, message string) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": code, "message": message})
}

// statusForKind maps the service error taxonomy onto HTTP. The mapping is an
// adapter concern; handlers never pick statuses for core failures themselves.
var statusForKind = map[string]int{
	services.KindInvalidRequest:   http.StatusBadRequest,
	services.KindNotFound:         http.StatusNotFound,
	services.KindConflict:         http.StatusConflict,
	services.KindPermissionDenied: http.StatusForbidden,
	services.KindUnavailable:      http.StatusServiceUnavailable,
	services.KindInternal:         http.StatusInternalServerError,
}

// ServiceError writes a service failure with its machine-readable kind.
func ServiceError(ctx iris.Context, err error) {
	kind := services.KindOf(err)
	status, ok := statusForKind[kind]
	if !ok {
		status = http.StatusInternalServerError
	}
	JSONError(ctx, status, kind, err.Error())
}

func CreateError(status int, title string, detail string, ctx iris.Context) {
	ctx.StatusCode(status)
	ctx.JSON(iris.Map{"error": title, "message": detail})
}

func CreateNotFound(ctx iris.Context) {
	JSONError(ctx, http.StatusNotFound, "not_found", "resource not found")
}

func CreateInternalServerError(ctx iris.Context) {
	JSONError(ctx, http.StatusInternalServerError, "internal", "internal server error")
}
