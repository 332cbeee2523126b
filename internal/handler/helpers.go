package handler

import (
	"net/http"
	"strconv"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/util"

	"github.com/gin-gonic/gin"
)

// currentUser 从上下文取出鉴权中间件放入的用户；取不到时已写好 401 响应。
func currentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get("currentUser")
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "未登录")
		return nil, false
	}
	return user, true
}

// rawFilterParams 收集全部查询参数交给 BuildFilter，未知字段由它忽略。
func rawFilterParams(c *gin.Context) map[string]string {
	raw := make(map[string]string)
	for key, vals := range c.Request.URL.Query() {
		if len(vals) > 0 {
			raw[key] = vals[0]
		}
	}
	return raw
}

// formatCentAmount 把分转成带符号的金额字符串，两位小数。
func formatCentAmount(cent int64) string {
	return strconv.FormatFloat(float64(cent)/100.0, 'f', 2, 64)
}
