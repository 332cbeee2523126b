package store

import (
	"context"
	"testing"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func seedTransactions(t *testing.T, db *gorm.DB) {
	t.Helper()
	txs := []models.Transaction{
		{ID: 1, UserID: 1, Description: "Coffee Shop", AmountCent: -450, Category: models.CategoryDining, Tags: "morning,coffee", OccurredAt: day("2024-01-16")},
		{ID: 2, UserID: 1, Description: "Coffee Beans Bulk", AmountCent: -2200, Category: models.CategoryGroceries, Tags: "coffee", OccurredAt: day("2024-01-10")},
		{ID: 3, UserID: 1, Description: "Salary", AmountCent: 500000, Category: models.CategoryIncome, OccurredAt: day("2024-01-31")},
		{ID: 4, UserID: 2, Description: "Coffee Palace", AmountCent: -600, Category: models.CategoryDining, OccurredAt: day("2024-01-16")},
	}
	for i := range txs {
		require.NoError(t, db.Create(&txs[i]).Error)
	}
}

func mustFilter(t *testing.T, raw map[string]string) search.FilterSpec {
	t.Helper()
	f, err := search.BuildFilter(raw)
	require.NoError(t, err)
	return f
}

func ids(txs []models.Transaction) []uint {
	out := make([]uint, 0, len(txs))
	for i := range txs {
		out = append(out, txs[i].ID)
	}
	return out
}

func TestCorpusFindByUser_Scoping(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	seedTransactions(t, db)
	c := NewTransactionCorpus(db)

	got, err := c.FindByUser(context.Background(), 1, search.FilterSpec{})
	require.NoError(t, err)

	require.Len(t, got, 3)
	for i := range got {
		assert.Equal(t, uint(1), got[i].UserID)
	}
	// 时间倒序
	assert.Equal(t, []uint{3, 1, 2}, ids(got))
}

func TestCorpusFindByUser_DateRangeInclusiveEnd(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	seedTransactions(t, db)
	c := NewTransactionCorpus(db)

	got, err := c.FindByUser(context.Background(), 1, mustFilter(t, map[string]string{
		"start": "2024-01-10",
		"end":   "2024-01-16", // 当天应该包含
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint{1, 2}, ids(got))
}

func TestCorpusFindByUser_AmountRange(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	seedTransactions(t, db)
	c := NewTransactionCorpus(db)

	got, err := c.FindByUser(context.Background(), 1, mustFilter(t, map[string]string{
		"min_amount": "-10.00",
		"max_amount": "0",
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids(got))
}

func TestCorpusFindByUser_Categories(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	seedTransactions(t, db)
	c := NewTransactionCorpus(db)

	got, err := c.FindByUser(context.Background(), 1, mustFilter(t, map[string]string{
		"categories": "groceries,income",
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint{3, 2}, ids(got))
}

func TestCorpusFindByUser_TagsAllRequired(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	seedTransactions(t, db)
	c := NewTransactionCorpus(db)

	got, err := c.FindByUser(context.Background(), 1, mustFilter(t, map[string]string{
		"tags": "coffee,morning",
	}))
	require.NoError(t, err)
	assert.Equal(t, []uint{1}, ids(got))
}

func TestSearchLog_RecordAndRange(t *testing.T) {
	db := newTestDB(t)
	seedUsers(t, db)
	s := NewSearchLogStore(db)
	ctx := context.Background()

	entries := []models.SearchLog{
		{UserID: 1, Query: "coffee", ResultCount: 2, CreatedAt: day("2024-01-10")},
		{UserID: 1, Query: "rent", ResultCount: 1, CreatedAt: day("2024-01-20")},
		{UserID: 2, Query: "coffee", ResultCount: 5, CreatedAt: day("2024-01-15")},
	}
	for i := range entries {
		require.NoError(t, s.Record(ctx, &entries[i]))
	}

	got, err := s.FindByUser(ctx, 1, nil, nil)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "coffee", got[0].Query)
	assert.Equal(t, "rent", got[1].Query)

	start := day("2024-01-15")
	got, err = s.FindByUser(ctx, 1, &start, nil)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "rent", got[0].Query)
}
