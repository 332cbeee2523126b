package models

import "time"

// User represents application user. Registration and login live in the
// external auth service; this service only resolves the JWT subject.
type User struct {
	ID          uint   `gorm:"primaryKey"`
	Username    string `gorm:"size:64;uniqueIndex;not null"`
	DisplayName string `gorm:"size:64"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
