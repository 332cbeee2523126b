package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/store"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/util"

	"github.com/gin-gonic/gin"
)

// SavedQueryHandler 负责保存的查询接口。
type SavedQueryHandler struct {
	Store *store.SavedQueryStore
}

func NewSavedQueryHandler(s *store.SavedQueryStore) *SavedQueryHandler {
	return &SavedQueryHandler{Store: s}
}

type saveQueryReq struct {
	Name   string            `json:"name" binding:"required"`
	Query  string            `json:"query"`
	Filter map[string]string `json:"filter"`
}

type savedQueryResp struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Query     string          `json:"query"`
	Filter    json.RawMessage `json:"filter"`
	CreatedAt time.Time       `json:"created_at"`
}

func toSavedQueryResp(sq *models.SavedQuery) savedQueryResp {
	filter := json.RawMessage(sq.FilterRaw)
	if sq.FilterRaw == "" {
		filter = json.RawMessage("{}")
	}
	return savedQueryResp{
		ID:        sq.ID,
		Name:      sq.Name,
		Query:     sq.Query,
		Filter:    filter,
		CreatedAt: sq.CreatedAt,
	}
}

// Create 保存一条命名查询。名称同一用户下唯一，重名返回 409。
func (h *SavedQueryHandler) Create(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req saveQueryReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "参数错误")
		return
	}

	spec, err := search.BuildFilter(req.Filter)
	if err != nil {
		util.FromError(c, err)
		return
	}

	sq, err := h.Store.Save(c.Request.Context(), user.ID, req.Name, req.Query, spec)
	if err != nil {
		util.FromError(c, err)
		return
	}

	util.Success(c, util.Response{
		"query": toSavedQueryResp(sq),
	})
}

// List 按创建顺序列出当前用户的命名查询。
func (h *SavedQueryHandler) List(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	queries, err := h.Store.List(c.Request.Context(), user.ID)
	if err != nil {
		util.FromError(c, err)
		return
	}

	items := make([]savedQueryResp, 0, len(queries))
	for i := range queries {
		items = append(items, toSavedQueryResp(&queries[i]))
	}

	util.Success(c, util.Response{
		"items": items,
		"total": len(items),
	})
}

// Delete 删除一条命名查询。不存在（包括属于别的用户）统一返回 404。
func (h *SavedQueryHandler) Delete(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	queryID := c.Param("id")
	deleted, err := h.Store.Delete(c.Request.Context(), user.ID, queryID)
	if err != nil {
		util.FromError(c, err)
		return
	}
	if !deleted {
		util.FromError(c, &search.NotFoundError{Resource: "saved query"})
		return
	}

	util.Success(c, util.Response{
		"deleted": true,
	})
}
