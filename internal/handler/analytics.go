package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/analytics"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/util"

	"github.com/gin-gonic/gin"
)

// AnalyticsHandler 负责搜索统计接口。
type AnalyticsHandler struct {
	Agg *analytics.Aggregator
}

func NewAnalyticsHandler(agg *analytics.Aggregator) *AnalyticsHandler {
	return &AnalyticsHandler{Agg: agg}
}

// Report 搜索统计：?start=2024-01-01&end=2024-01-31（都可省略）
func (h *AnalyticsHandler) Report(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var (
		start *time.Time
		end   *time.Time
	)
	if s := c.Query("start"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "开始日期格式错误，应为 YYYY-MM-DD")
			return
		}
		start = &t
	}
	if s := c.Query("end"); s != "" {
		t, err := time.Parse("2006-01-02", s)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "结束日期格式错误，应为 YYYY-MM-DD")
			return
		}
		// 结束日期按“当天结束”处理：< end+1 天
		t = t.Add(24 * time.Hour)
		end = &t
	}

	report, err := h.Agg.Report(c.Request.Context(), user.ID, start, end)
	if err != nil {
		util.FromError(c, err)
		return
	}

	util.Success(c, util.Response{
		"query_volume": report.Volume,
		"top_queries":  report.TopQueries,
	})
}

// Popular 热门查询：?limit=10
func (h *AnalyticsHandler) Popular(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := analytics.DefaultTopQueries
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit 不是数字")
			return
		}
		limit = n
	}

	queries, err := h.Agg.PopularQueries(c.Request.Context(), user.ID, limit)
	if err != nil {
		util.FromError(c, err)
		return
	}

	util.Success(c, util.Response{
		"queries": queries,
	})
}
