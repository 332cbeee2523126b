package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

// exportCorpus 内存语料，记录调用次数；block 时等待上下文结束再返回。
type exportCorpus struct {
	txs   []models.Transaction
	calls int
	block bool
}

func (f *exportCorpus) FindByUser(ctx context.Context, userID uint, spec search.FilterSpec) ([]models.Transaction, error) {
	f.calls++
	if f.block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	var out []models.Transaction
	for i := range f.txs {
		if f.txs[i].UserID == userID && spec.Matches(&f.txs[i]) {
			out = append(out, f.txs[i])
		}
	}
	return out, nil
}

func exportContext(t *testing.T, rawQuery string) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/search/export/csv?"+rawQuery, nil)
	c.Set("currentUser", &models.User{ID: 1, Username: "alice"})
	return c, w
}

// 导出接口和列表接口共用一套查询串约束
func TestExportCSV_QueryTooLong(t *testing.T) {
	corpus := &exportCorpus{}
	h := NewExportHandler(search.NewExecutor(corpus), 0)

	long := strings.Repeat("x", search.MaxQueryLen+1)
	c, w := exportContext(t, "q="+url.QueryEscape(long))

	h.ExportCSV(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, 0, corpus.calls, "超长查询不应触达存储")
}

func TestExportCSV_TimeoutApplied(t *testing.T) {
	corpus := &exportCorpus{block: true}
	h := NewExportHandler(search.NewExecutor(corpus), 5*time.Millisecond)

	c, w := exportContext(t, "q=coffee")

	h.ExportCSV(c)

	assert.Equal(t, http.StatusGatewayTimeout, w.Code)
}

func TestExportCSV_WritesMatches(t *testing.T) {
	corpus := &exportCorpus{txs: []models.Transaction{
		{ID: 1, UserID: 1, Description: "Coffee Shop", AmountCent: -450,
			Currency: "CNY", Category: models.CategoryDining,
			OccurredAt: time.Date(2024, 1, 16, 0, 0, 0, 0, time.UTC)},
	}}
	h := NewExportHandler(search.NewExecutor(corpus), 0)

	c, w := exportContext(t, "q=coffee")

	h.ExportCSV(c)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Coffee Shop")
	assert.Contains(t, w.Body.String(), "-4.50")
}
