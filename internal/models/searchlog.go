package models

import "time"

// SearchLog 记录一次搜索调用，供统计聚合使用。
type SearchLog struct {
	ID          uint   `gorm:"primaryKey"`
	UserID      uint   `gorm:"index;not null"`
	Query       string `gorm:"size:200;index"`
	ResultCount int64
	DurationMS  int64
	CreatedAt   time.Time `gorm:"index"`
}
