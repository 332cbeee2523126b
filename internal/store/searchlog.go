package store

import (
	"context"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"

	"gorm.io/gorm"
)

// SearchLogStore 追加和读取搜索记录，统计聚合从这里取数。
type SearchLogStore struct {
	db *gorm.DB
}

func NewSearchLogStore(db *gorm.DB) *SearchLogStore {
	return &SearchLogStore{db: db}
}

// Record appends one search invocation to the log.
func (s *SearchLogStore) Record(ctx context.Context, entry *models.SearchLog) error {
	return s.db.WithContext(ctx).Create(entry).Error
}

// FindByUser 按可选时间范围取出一个用户的搜索记录，时间升序。
// end 为开区间上界，调用方自行决定按天还是按时刻。
func (s *SearchLogStore) FindByUser(ctx context.Context, userID uint, start, end *time.Time) ([]models.SearchLog, error) {
	q := s.db.WithContext(ctx).Model(&models.SearchLog{}).Where("user_id = ?", userID)
	if start != nil {
		q = q.Where("created_at >= ?", *start)
	}
	if end != nil {
		q = q.Where("created_at < ?", *end)
	}

	var logs []models.SearchLog
	if err := q.Order("created_at ASC, id ASC").Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}
