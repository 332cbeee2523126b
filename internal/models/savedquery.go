package models

import "time"

// SavedQuery 保存用户命名的 (query, filter) 组合，便于复用。
// (user_id, name) 唯一，由数据库索引保证，并发 save 只会成功一个。
type SavedQuery struct {
	ID        string `gorm:"primaryKey;size:64"` // UUID
	UserID    uint   `gorm:"uniqueIndex:idx_saved_queries_user_name;not null"`
	Name      string `gorm:"size:100;uniqueIndex:idx_saved_queries_user_name;not null"`
	Query     string `gorm:"size:200"`
	FilterRaw string `gorm:"type:text"` // canonical filter, JSON object of string fields
	CreatedAt time.Time

	User User `gorm:"constraint:OnDelete:CASCADE"`
}
