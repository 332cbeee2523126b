package middleware

import (
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware 记录已登录用户的每次 API 访问（路径、方法、状态码、耗时）。
// 写入失败不影响请求本身。
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		// 只记录登录用户的操作
		var userID uint
		if v, ok := c.Get("currentUser"); ok {
			if user, ok := v.(*models.User); ok && user != nil {
				userID = user.ID
			}
		}
		if userID == 0 {
			return
		}

		entry := models.AuditLog{
			UserID:     &userID,
			Path:       c.Request.URL.Path,
			Method:     c.Request.Method,
			Status:     c.Writer.Status(),
			DurationMS: time.Since(start).Milliseconds(),
			IP:         c.ClientIP(),
			UserAgent:  c.Request.UserAgent(),
		}

		_ = db.Create(&entry).Error
	}
}
