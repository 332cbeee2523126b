package handler

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/store"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/util"

	"github.com/gin-gonic/gin"
)

// SearchHandler 负责搜索和补全接口。
type SearchHandler struct {
	Executor  *search.Executor
	Suggester *search.Suggester
	Logs      *store.SearchLogStore

	DefaultPageSize int
	Timeout         time.Duration
}

func NewSearchHandler(executor *search.Executor, suggester *search.Suggester, logs *store.SearchLogStore, defaultPageSize int, timeout time.Duration) *SearchHandler {
	if defaultPageSize <= 0 || defaultPageSize > search.MaxPageSize {
		defaultPageSize = search.DefaultPageSize
	}
	return &SearchHandler{
		Executor:        executor,
		Suggester:       suggester,
		Logs:            logs,
		DefaultPageSize: defaultPageSize,
		Timeout:         timeout,
	}
}

type searchItemResp struct {
	ID          uint      `json:"id"`
	Description string    `json:"description"`
	Merchant    string    `json:"merchant,omitempty"`
	AmountCent  int64     `json:"amount_cent"`
	Amount      string    `json:"amount"`
	Currency    string    `json:"currency"`
	Category    string    `json:"category"`
	Tags        []string  `json:"tags"`
	OccurredAt  time.Time `json:"occurred_at"`
	Score       float64   `json:"score"`
}

func toSearchItemResp(m *search.Match) searchItemResp {
	tx := &m.Transaction
	return searchItemResp{
		ID:          tx.ID,
		Description: tx.Description,
		Merchant:    tx.Merchant,
		AmountCent:  tx.AmountCent,
		Amount:      formatCentAmount(tx.AmountCent),
		Currency:    tx.Currency,
		Category:    tx.Category,
		Tags:        tx.TagList(),
		OccurredAt:  tx.OccurredAt,
		Score:       m.Score,
	}
}

// Search 执行一次搜索：?q=coffee&start=...&end=...&min_amount=...&max_amount=
// &categories=...&tags=...&page=1&page_size=20
func (h *SearchHandler) Search(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	spec, err := search.BuildFilter(rawFilterParams(c))
	if err != nil {
		util.FromError(c, err)
		return
	}

	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "page 不是数字")
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(h.DefaultPageSize)))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "page_size 不是数字")
		return
	}

	req, err := search.NewRequest(c.Query("q"), spec, page, size)
	if err != nil {
		util.FromError(c, err)
		return
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	res, err := h.Executor.Execute(ctx, user.ID, req)
	if err != nil {
		util.FromError(c, err)
		return
	}

	// 搜索记录写入失败不影响响应
	_ = h.Logs.Record(c.Request.Context(), &models.SearchLog{
		UserID:      user.ID,
		Query:       req.Query,
		ResultCount: res.Total,
		DurationMS:  res.Duration.Milliseconds(),
	})

	items := make([]searchItemResp, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, toSearchItemResp(&res.Items[i]))
	}

	util.Success(c, util.Response{
		"items":       items,
		"total":       res.Total,
		"max_score":   res.MaxScore,
		"duration_ms": res.Duration.Milliseconds(),
		"page":        req.Page,
		"size":        req.Limit,
	})
}

// Suggest 补全候选：?q=cof&limit=10
func (h *SearchHandler) Suggest(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	limit := 0
	if limitStr := c.Query("limit"); limitStr != "" {
		n, err := strconv.Atoi(limitStr)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "limit 不是数字")
			return
		}
		limit = n
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	candidates, err := h.Suggester.Suggest(ctx, user.ID, c.Query("q"), limit)
	if err != nil {
		util.FromError(c, err)
		return
	}

	type candidateResp struct {
		Text     string `json:"text"`
		Weight   int    `json:"weight"`
		Category string `json:"category,omitempty"`
	}
	out := make([]candidateResp, 0, len(candidates))
	for _, cand := range candidates {
		out = append(out, candidateResp{Text: cand.Text, Weight: cand.Weight, Category: cand.Category})
	}

	util.Success(c, util.Response{
		"suggestions": out,
	})
}
