package routes

import (
	"strings"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"
	"github.com/nathanael250/travooz-hms-sub003/utils"

	"github.com/kataras/iris/v12"
	"golang.org/x/crypto/bcrypt"
)

type RegisterUserInput struct {
	PropertyID  uint   `json:"propertyID" validate:"required"`
	FirstName   string `json:"firstName" validate:"required,max=256"`
	LastName    string `json:"lastName" validate:"required,max=256"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phoneNumber"`
	Password    string `json:"password" validate:"required,min=8,max=256"`
	Role        string `json:"role" validate:"omitempty,oneof=staff manager admin"`
}

type LoginUserInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Register creates a staff account. Manager/admin callers only; plain staff
// cannot mint accounts.
func Register(ctx iris.Context) {
	var userInput RegisterUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	email := strings.ToLower(strings.TrimSpace(userInput.Email))

	var existing models.User
	if err := storage.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		utils.JSONError(ctx, iris.StatusConflict, "conflict", "an account with this email already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(userInput.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	role := userInput.Role
	if role == "" {
		role = "staff"
	}

	user := models.User{
		PropertyID:  userInput.PropertyID,
		FirstName:   userInput.FirstName,
		LastName:    userInput.LastName,
		Email:       email,
		PhoneNumber: utils.NormalizePhoneNumber(userInput.PhoneNumber),
		Password:    string(hashed),
		Role:        role,
	}
	if err := storage.DB.Create(&user).Error; err != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	returnUser(user, ctx)
}

func Login(ctx iris.Context) {
	var userInput LoginUserInput
	if err := ctx.ReadJSON(&userInput); err != nil {
		utils.HandleValidationErrors(err, ctx)
		return
	}

	errorMsg := "Invalid email or password."

	var existingUser models.User
	if err := storage.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(userInput.Email))).First(&existingUser).Error; err != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	if existingUser.IsActive != nil && !*existingUser.IsActive {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", "account is disabled", ctx)
		return
	}

	passwordErr := bcrypt.CompareHashAndPassword([]byte(existingUser.Password), []byte(userInput.Password))
	if passwordErr != nil {
		utils.CreateError(iris.StatusUnauthorized, "Credentials Error", errorMsg, ctx)
		return
	}

	returnUser(existingUser, ctx)
}

// GetCurrentUser returns the authenticated staffer's profile.
func GetCurrentUser(ctx iris.Context) {
	staffID := utils.StaffID(ctx)

	var user models.User
	if err := storage.DB.First(&user, staffID).Error; err != nil {
		utils.CreateNotFound(ctx)
		return
	}
	ctx.JSON(iris.Map{"data": user})
}

func returnUser(user models.User, ctx iris.Context) {
	tokenPair, tokenErr := utils.CreateTokenPair(user.ID)
	if tokenErr != nil {
		utils.CreateInternalServerError(ctx)
		return
	}

	ctx.JSON(iris.Map{
		"ID":           user.ID,
		"firstName":    user.FirstName,
		"lastName":     user.LastName,
		"email":        user.Email,
		"role":         user.Role,
		"propertyID":   user.PropertyID,
		"accessToken":  string(tokenPair.AccessToken),
		"refreshToken": string(tokenPair.RefreshToken),
	})
}
