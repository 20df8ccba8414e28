package utils

import (
	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// StaffContextMiddleware extracts staff identity and property scope from the
// access token and stores them for downstream handlers.
func StaffContextMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	ctx.Values().Set("staffID", claims.ID)
	ctx.Values().Set("propertyID", claims.PropertyID)
	ctx.Values().Set("role", claims.Role)
	ctx.Next()
}

// ManagerOnlyMiddleware restricts a route to managers and admins.
func ManagerOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "manager" && claims.Role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "permission_denied", "message": "manager access required"})
		return
	}
	ctx.Values().Set("staffID", claims.ID)
	ctx.Values().Set("propertyID", claims.PropertyID)
	ctx.Next()
}

// AdminOnlyMiddleware restricts a route to admins.
func AdminOnlyMiddleware(ctx iris.Context) {
	claims := jwt.Get(ctx).(*AccessToken)
	if claims.Role != "admin" {
		ctx.StatusCode(iris.StatusForbidden)
		ctx.JSON(iris.Map{"error": "permission_denied", "message": "admin access required"})
		return
	}
	ctx.Values().Set("staffID", claims.ID)
	ctx.Values().Set("propertyID", claims.PropertyID)
	ctx.Next()
}

// StaffID reads the authenticated staff id stored by the middleware chain.
func StaffID(ctx iris.Context) uint {
	if v, ok := ctx.Values().Get("staffID").(uint); ok {
		return v
	}
	return 0
}

// PropertyScope reads the hotel scope stored by the middleware chain.
func PropertyScope(ctx iris.Context) uint {
	if v, ok := ctx.Values().Get("propertyID").(uint); ok {
		return v
	}
	return 0
}
