package models

import "time"

// AuditLog records API access for auditing.
type AuditLog struct {
	ID         uint   `gorm:"primaryKey"`
	UserID     *uint  `gorm:"index"`
	Path       string `gorm:"size:255"`
	Method     string `gorm:"size:16"`
	Status     int
	DurationMS int64
	IP         string `gorm:"size:64"`
	UserAgent  string `gorm:"size:255"`
	CreatedAt  time.Time
}
