package utils

import (
	"encoding/json"
	"log"
	"net"

	"github.com/nathanael250/travooz-hms-sub003/models"
	"github.com/nathanael250/travooz-hms-sub003/storage"

	"github.com/kataras/iris/v12"
	"github.com/kataras/iris/v12/middleware/jwt"
)

// Audit appends a staff-action record. Audit writes are best-effort: a
// failure is logged and never aborts the primary operation.
func Audit(ctx iris.Context, action, resourceType string, resourceID uint, before interface{}, after interface{}) {
	var beforeStr, afterStr string
	if before != nil {
		if b, err := json.Marshal(before); err == nil {
			beforeStr = string(b)
		}
	}
	if after != nil {
		if a, err := json.Marshal(after); err == nil {
			afterStr = string(a)
		}
	}
	var staffID uint
	if tok := jwt.Get(ctx); tok != nil {
		if at, ok := tok.(*AccessToken); ok {
			staffID = at.ID
		}
	}
	ip := clientIP(ctx)
	entry := models.AuditLog{StaffID: staffID, Action: action, ResourceType: resourceType, ResourceID: resourceID, BeforeJSON: beforeStr, AfterJSON: afterStr, IPAddress: ip}
	if err := storage.DB.Create(&entry).Error; err != nil {
		log.Printf("audit: failed to record %s on %s/%d: %v", action, resourceType, resourceID, err)
	}
}

func clientIP(ctx iris.Context) string {
	if ip := ctx.GetHeader("X-Forwarded-For"); ip != "" {
		return ip
	}
	ip, _, _ := net.SplitHostPort(ctx.RemoteAddr())
	return ip
}
