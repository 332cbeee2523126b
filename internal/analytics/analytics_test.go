package analytics

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLog 内存日志，模拟存储层的用户隔离和时间范围
type fakeLog struct {
	entries []models.SearchLog
	err     error
}

func (f *fakeLog) FindByUser(ctx context.Context, userID uint, start, end *time.Time) ([]models.SearchLog, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []models.SearchLog
	for i := range f.entries {
		e := f.entries[i]
		if e.UserID != userID {
			continue
		}
		if start != nil && e.CreatedAt.Before(*start) {
			continue
		}
		if end != nil && !e.CreatedAt.Before(*end) {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestReport_EmptyLog(t *testing.T) {
	a := NewAggregator(&fakeLog{})

	report, err := a.Report(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	assert.Empty(t, report.Volume)
	assert.Empty(t, report.TopQueries)
}

func TestReport_VolumeByDay(t *testing.T) {
	a := NewAggregator(&fakeLog{entries: []models.SearchLog{
		{UserID: 1, Query: "coffee", CreatedAt: at("2024-01-10 09:00")},
		{UserID: 1, Query: "rent", CreatedAt: at("2024-01-10 18:00")},
		{UserID: 1, Query: "coffee", CreatedAt: at("2024-01-12 08:00")},
		{UserID: 2, Query: "coffee", CreatedAt: at("2024-01-10 09:00")}, // 别的用户
	}})

	report, err := a.Report(context.Background(), 1, nil, nil)
	require.NoError(t, err)

	require.Len(t, report.Volume, 2)
	assert.Equal(t, VolumePoint{Date: "2024-01-10", Count: 2}, report.Volume[0])
	assert.Equal(t, VolumePoint{Date: "2024-01-12", Count: 1}, report.Volume[1])
}

func TestReport_RangeOrder(t *testing.T) {
	a := NewAggregator(&fakeLog{})

	start := at("2024-02-01 00:00")
	end := at("2024-01-01 00:00")
	_, err := a.Report(context.Background(), 1, &start, &end)
	require.Error(t, err)

	var ve *search.ValidationError
	assert.True(t, errors.As(err, &ve), "error = %v, want ValidationError", err)
}

func TestPopularQueries_CountThenRecency(t *testing.T) {
	a := NewAggregator(&fakeLog{entries: []models.SearchLog{
		{UserID: 1, Query: "coffee", CreatedAt: at("2024-01-01 09:00")},
		{UserID: 1, Query: "coffee", CreatedAt: at("2024-01-02 09:00")},
		{UserID: 1, Query: "rent", CreatedAt: at("2024-01-20 09:00")},
		{UserID: 1, Query: "gym", CreatedAt: at("2024-01-10 09:00")},
		{UserID: 1, Query: "", CreatedAt: at("2024-01-25 09:00")}, // 纯筛选搜索不计入
	}})

	got, err := a.PopularQueries(context.Background(), 1, 10)
	require.NoError(t, err)

	require.Len(t, got, 3)
	assert.Equal(t, QueryCount{Query: "coffee", Count: 2}, got[0])
	// rent 和 gym 都是 1 次，rent 最近用过，排前面
	assert.Equal(t, QueryCount{Query: "rent", Count: 1}, got[1])
	assert.Equal(t, QueryCount{Query: "gym", Count: 1}, got[2])
}

func TestPopularQueries_LimitBounds(t *testing.T) {
	a := NewAggregator(&fakeLog{})

	for _, limit := range []int{0, -1, MaxTopQueries + 1} {
		_, err := a.PopularQueries(context.Background(), 1, limit)
		require.Error(t, err, "limit %d", limit)

		var ve *search.ValidationError
		assert.True(t, errors.As(err, &ve), "limit %d: error = %v, want ValidationError", limit, err)
	}
}

func TestPopularQueries_LimitApplied(t *testing.T) {
	log := &fakeLog{}
	for i := 0; i < 5; i++ {
		log.entries = append(log.entries, models.SearchLog{
			UserID:    1,
			Query:     "query-" + string(rune('a'+i)),
			CreatedAt: at("2024-01-10 09:00").Add(time.Duration(i) * time.Hour),
		})
	}
	a := NewAggregator(log)

	got, err := a.PopularQueries(context.Background(), 1, 2)
	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestPopularQueries_StorageError(t *testing.T) {
	a := NewAggregator(&fakeLog{err: errors.New("boom")})

	_, err := a.PopularQueries(context.Background(), 1, 10)
	require.Error(t, err)

	var se *search.StorageError
	assert.True(t, errors.As(err, &se), "error = %v, want StorageError", err)
}
