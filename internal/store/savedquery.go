package store

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SavedQueryStore 负责保存的查询的增删查。
// 名称按 (user_id, name) 唯一，由数据库索引保证；并发同名 save 只会成功一个，
// 另一个拿到 ConflictError。
type SavedQueryStore struct {
	db *gorm.DB
}

func NewSavedQueryStore(db *gorm.DB) *SavedQueryStore {
	return &SavedQueryStore{db: db}
}

// Save 新建一条命名查询。名称重复返回 ConflictError，名称非法返回
// ValidationError，其余失败是 StorageError。
func (s *SavedQueryStore) Save(ctx context.Context, userID uint, name, query string, f search.FilterSpec) (*models.SavedQuery, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, &search.ValidationError{Field: "name", Reason: "name is required"}
	}
	if utf8.RuneCountInString(name) > 100 {
		return nil, &search.ValidationError{Field: "name", Reason: "at most 100 characters"}
	}
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > search.MaxQueryLen {
		return nil, &search.ValidationError{Field: "query", Reason: "at most 200 characters"}
	}

	rawJSON, err := json.Marshal(f.Raw())
	if err != nil {
		return nil, &search.StorageError{Op: "encode filter", Err: err}
	}

	sq := &models.SavedQuery{
		ID:        uuid.NewString(),
		UserID:    userID,
		Name:      name,
		Query:     query,
		FilterRaw: string(rawJSON),
	}
	if err := s.db.WithContext(ctx).Create(sq).Error; err != nil {
		if isDuplicateErr(err) {
			return nil, &search.ConflictError{Resource: "saved query", Key: name}
		}
		return nil, search.WrapStorage(ctx, "save query", err)
	}
	return sq, nil
}

// List 按创建顺序返回一个用户的全部命名查询。
func (s *SavedQueryStore) List(ctx context.Context, userID uint) ([]models.SavedQuery, error) {
	var out []models.SavedQuery
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	if err != nil {
		return nil, search.WrapStorage(ctx, "list queries", err)
	}
	return out, nil
}

// Delete 删除一条命名查询。不存在（包括属于别的用户）返回 false 而不是错误，
// 重复删除是无害的。
func (s *SavedQueryStore) Delete(ctx context.Context, userID uint, queryID string) (bool, error) {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", queryID, userID).
		Delete(&models.SavedQuery{})
	if res.Error != nil {
		return false, search.WrapStorage(ctx, "delete query", res.Error)
	}
	return res.RowsAffected > 0, nil
}

// DecodeFilter 还原保存时的筛选条件。
func DecodeFilter(sq *models.SavedQuery) (search.FilterSpec, error) {
	if sq.FilterRaw == "" {
		return search.FilterSpec{}, nil
	}
	var raw map[string]string
	if err := json.Unmarshal([]byte(sq.FilterRaw), &raw); err != nil {
		return search.FilterSpec{}, &search.StorageError{Op: "decode filter", Err: err}
	}
	return search.BuildFilter(raw)
}

// sqlite 没有统一的重复键错误类型，translate 不开时退回到错误文本判断。
func isDuplicateErr(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}
