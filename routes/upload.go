package routes

import (
	"fmt"
	"time"

	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
)

type UploadInput struct {
	Image string `json:"image" validate:"required"`
	Kind  string `json:"kind" validate:"omitempty,oneof=logo id-scan"`
}

// POST /api/upload — base64 image upload (branding logos, guest ID scans).
func UploadImage(ctx iris.Context) {
	var input UploadInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	kind := input.Kind
	if kind == "" {
		kind = "logo"
	}

	publicID := fmt.Sprintf("%s-%d-%d-%s", kind, utils.PropertyScope(ctx), time.Now().Unix(), utils.GenerateShortToken(4))
	url := storage.UploadBase64Image(input.Image, publicID)
	if url == "" {
		utils.JSONError(ctx, iris.StatusServiceUnavailable, "unavailable", "image upload failed")
		return
	}

	ctx.JSON(iris.Map{"url": url})
}
