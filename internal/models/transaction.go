package models

import (
	"strings"
	"time"
)

// Transaction 表示一笔交易流水，由外部记账模块写入，搜索服务只读。
// 金额用分存储，符号表示方向：负数 = 支出，正数 = 收入。
type Transaction struct {
	ID          uint      `gorm:"primaryKey"`
	UserID      uint      `gorm:"index;not null"`
	Description string    `gorm:"size:255;not null"`
	Merchant    string    `gorm:"size:128"`
	AmountCent  int64     `gorm:"not null"`
	Currency    string    `gorm:"size:8;default:USD"`
	Category    string    `gorm:"size:32;index;not null"`
	Tags        string    `gorm:"size:512"` // 逗号分隔，如 "food,weekly"
	OccurredAt  time.Time `gorm:"index;not null"`
	CreatedAt   time.Time
}

// TagList splits the comma-joined Tags column into individual tags.
func (t *Transaction) TagList() []string {
	if t.Tags == "" {
		return nil
	}
	parts := strings.Split(t.Tags, ",")
	tags := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			tags = append(tags, p)
		}
	}
	return tags
}
