package store

import (
	"context"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"

	"gorm.io/gorm"
)

// TransactionCorpus 只读访问交易表，实现 search.Corpus。
// 交易的写入方是外部记账模块，这里只查。
type TransactionCorpus struct {
	db *gorm.DB
}

func NewTransactionCorpus(db *gorm.DB) *TransactionCorpus {
	return &TransactionCorpus{db: db}
}

// FindByUser 取出一个用户名下满足筛选条件的交易，时间倒序。
// 日期/金额/类别下推到 SQL；标签存成逗号串，最后在内存里精确匹配。
func (s *TransactionCorpus) FindByUser(ctx context.Context, userID uint, f search.FilterSpec) ([]models.Transaction, error) {
	q := s.db.WithContext(ctx).Model(&models.Transaction{}).Where("user_id = ?", userID)

	if f.StartDate != nil {
		q = q.Where("occurred_at >= ?", *f.StartDate)
	}
	if f.EndDate != nil {
		// 结束日期按“当天结束”处理：< end+1 天
		q = q.Where("occurred_at < ?", f.EndDate.Add(24*time.Hour))
	}
	if f.MinCent != nil {
		q = q.Where("amount_cent >= ?", *f.MinCent)
	}
	if f.MaxCent != nil {
		q = q.Where("amount_cent <= ?", *f.MaxCent)
	}
	if len(f.Categories) > 0 {
		q = q.Where("category IN ?", f.Categories)
	}

	var txs []models.Transaction
	if err := q.Order("occurred_at DESC, id DESC").Find(&txs).Error; err != nil {
		return nil, err
	}

	if len(f.Tags) == 0 {
		return txs, nil
	}
	filtered := make([]models.Transaction, 0, len(txs))
	for i := range txs {
		if f.Matches(&txs[i]) {
			filtered = append(filtered, txs[i])
		}
	}
	return filtered, nil
}
