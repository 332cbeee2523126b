package handler

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

// ExportHandler 把一次搜索的全部命中导出成文件。
type ExportHandler struct {
	Executor *search.Executor
	Timeout  time.Duration
}

func NewExportHandler(executor *search.Executor, timeout time.Duration) *ExportHandler {
	return &ExportHandler{Executor: executor, Timeout: timeout}
}

// matchesForExport 解析和列表接口一致的参数，返回全部命中（不分页）。
// 查询串和超时的约束与列表接口保持一致。
func (h *ExportHandler) matchesForExport(c *gin.Context, userID uint) ([]search.Match, bool) {
	spec, err := search.BuildFilter(rawFilterParams(c))
	if err != nil {
		util.FromError(c, err)
		return nil, false
	}

	query, err := search.ValidateQuery(c.Query("q"))
	if err != nil {
		util.FromError(c, err)
		return nil, false
	}

	ctx := c.Request.Context()
	if h.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.Timeout)
		defer cancel()
	}

	matches, err := h.Executor.Matches(ctx, userID, query, spec)
	if err != nil {
		util.FromError(c, err)
		return nil, false
	}
	return matches, true
}

// ExportCSV 导出搜索结果为 CSV
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	matches, ok := h.matchesForExport(c, user.ID)
	if !ok {
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"search_%s.csv\"",
		time.Now().Format("20060102")))

	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// UTF-8 BOM（让 Excel 正确识别）
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	writer.Write([]string{"日期", "描述", "商户", "类别", "标签", "金额", "币种"})

	for i := range matches {
		tx := &matches[i].Transaction
		writer.Write([]string{
			tx.OccurredAt.Format("2006-01-02"),
			tx.Description,
			tx.Merchant,
			tx.Category,
			strings.Join(tx.TagList(), " "),
			formatCentAmount(tx.AmountCent),
			tx.Currency,
		})
	}
}

// ExportXLSX 导出搜索结果为 XLSX
func (h *ExportHandler) ExportXLSX(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	matches, ok := h.matchesForExport(c, user.ID)
	if !ok {
		return
	}

	f := excelize.NewFile()
	sheetName := "搜索结果"
	index, err := f.NewSheet(sheetName)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "创建工作表失败")
		return
	}
	f.SetActiveSheet(index)

	// 设置表头
	headers := []string{"日期", "描述", "商户", "类别", "标签", "金额", "币种"}
	for i, h := range headers {
		cell := fmt.Sprintf("%c1", 'A'+i)
		f.SetCellValue(sheetName, cell, h)
	}

	// 写入数据
	for idx := range matches {
		tx := &matches[idx].Transaction
		row := idx + 2

		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), tx.OccurredAt.Format("2006-01-02"))
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), tx.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), tx.Merchant)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), tx.Category)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), strings.Join(tx.TagList(), " "))
		f.SetCellValue(sheetName, fmt.Sprintf("F%d", row), formatCentAmount(tx.AmountCent))
		f.SetCellValue(sheetName, fmt.Sprintf("G%d", row), tx.Currency)
	}

	// 设置列宽
	f.SetColWidth(sheetName, "A", "A", 12)
	f.SetColWidth(sheetName, "B", "B", 30)
	f.SetColWidth(sheetName, "C", "C", 20)
	f.SetColWidth(sheetName, "D", "D", 15)
	f.SetColWidth(sheetName, "E", "E", 20)
	f.SetColWidth(sheetName, "F", "F", 12)
	f.SetColWidth(sheetName, "G", "G", 8)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"search_%s.xlsx\"",
		time.Now().Format("20060102")))

	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "导出失败")
	}
}
