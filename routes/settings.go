package routes

import (
	"errors"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
	"gorm.io/gorm"
)

type SettingsInput struct {
	LegalName     string `json:"legalName"`
	LogoURL       string `json:"logoURL"`
	TaxID         string `json:"taxID"`
	FooterNote    string `json:"footerNote"`
	InvoicePrefix string `json:"invoicePrefix" validate:"omitempty,max=16"`
}

// GET /api/settings — missing settings yield empty branding, not an error.
func GetSettings(ctx iris.Context) {
	var settings models.PropertySettings
	err := storage.DB.Where("property_id = ?", utils.PropertyScope(ctx)).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		ctx.JSON(iris.Map{"data": models.PropertySettings{PropertyID: utils.PropertyScope(ctx), InvoicePrefix: "INV"}})
		return
	}
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": settings})
}

// PUT /api/settings
func UpdateSettings(ctx iris.Context) {
	var input SettingsInput
	if err := ctx.ReadJSON(&input); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	propertyID := utils.PropertyScope(ctx)

	var settings models.PropertySettings
	err := storage.DB.Where("property_id = ?", propertyID).First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.PropertySettings{PropertyID: propertyID}
	} else if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	before := settings
	settings.LegalName = input.LegalName
	settings.LogoURL = input.LogoURL
	settings.TaxID = input.TaxID
	settings.FooterNote = input.FooterNote
	if input.InvoicePrefix != "" {
		settings.InvoicePrefix = input.InvoicePrefix
	}

	if err := storage.DB.Save(&settings).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	utils.Audit(ctx, "settings.update", "property_settings", settings.ID, before, settings)
	ctx.JSON(iris.Map{"data": settings})
}
