package analytics

import (
	"context"
	"sort"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/search"
)

const (
	// DefaultTopQueries 报表里热门查询的条数；PopularQueries 的 limit 上限。
	DefaultTopQueries = 10
	MaxTopQueries     = 50
)

// ActivityLog 由存储层提供的搜索记录读取入口。
type ActivityLog interface {
	FindByUser(ctx context.Context, userID uint, start, end *time.Time) ([]models.SearchLog, error)
}

// VolumePoint 某一天的搜索量。
type VolumePoint struct {
	Date  string `json:"date"` // YYYY-MM-DD
	Count int64  `json:"count"`
}

// QueryCount 一个查询串和它的使用次数。
type QueryCount struct {
	Query string `json:"query"`
	Count int64  `json:"count"`
}

// Report 一个用户的搜索统计。
type Report struct {
	Volume     []VolumePoint `json:"query_volume"`
	TopQueries []QueryCount  `json:"top_queries"`
}

// Aggregator 在取出的日志切片上做聚合，本身不落任何状态。
type Aggregator struct {
	log ActivityLog
}

func NewAggregator(log ActivityLog) *Aggregator {
	return &Aggregator{log: log}
}

// Report 聚合一个用户（可选时间范围内）的搜索记录：按天的搜索量加热门查询。
// 日志为空时返回空聚合而不是错误。
func (a *Aggregator) Report(ctx context.Context, userID uint, start, end *time.Time) (*Report, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, &search.ValidationError{Field: "start/end", Reason: "start must not be after end"}
	}

	logs, err := a.log.FindByUser(ctx, userID, start, end)
	if err != nil {
		return nil, search.WrapStorage(ctx, "analytics", err)
	}

	volumeMap := make(map[string]int64)
	for i := range logs {
		day := logs[i].CreatedAt.Format("2006-01-02")
		volumeMap[day]++
	}
	volume := make([]VolumePoint, 0, len(volumeMap))
	for day, count := range volumeMap {
		volume = append(volume, VolumePoint{Date: day, Count: count})
	}
	sort.Slice(volume, func(i, j int) bool { return volume[i].Date < volume[j].Date })

	top := rankQueries(logs, DefaultTopQueries)

	return &Report{Volume: volume, TopQueries: top}, nil
}

// PopularQueries 返回使用次数最多的查询串，limit 必须在 1 到 50 之间。
// 次数相同的按最近一次使用时间降序。
func (a *Aggregator) PopularQueries(ctx context.Context, userID uint, limit int) ([]QueryCount, error) {
	if limit < 1 || limit > MaxTopQueries {
		return nil, &search.ValidationError{Field: "limit", Reason: "limit must be between 1 and 50"}
	}

	logs, err := a.log.FindByUser(ctx, userID, nil, nil)
	if err != nil {
		return nil, search.WrapStorage(ctx, "popular queries", err)
	}

	return rankQueries(logs, limit), nil
}

// rankQueries 按查询串分组计数，次数降序，平局按最近使用时间降序。
// 空查询（纯筛选的搜索）不计入。
func rankQueries(logs []models.SearchLog, limit int) []QueryCount {
	type stat struct {
		query    string
		count    int64
		lastUsed time.Time
	}

	stats := make(map[string]*stat)
	for i := range logs {
		l := &logs[i]
		if l.Query == "" {
			continue
		}
		s, ok := stats[l.Query]
		if !ok {
			s = &stat{query: l.Query}
			stats[l.Query] = s
		}
		s.count++
		if l.CreatedAt.After(s.lastUsed) {
			s.lastUsed = l.CreatedAt
		}
	}

	ranked := make([]*stat, 0, len(stats))
	for _, s := range stats {
		ranked = append(ranked, s)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if !ranked[i].lastUsed.Equal(ranked[j].lastUsed) {
			return ranked[i].lastUsed.After(ranked[j].lastUsed)
		}
		return ranked[i].query < ranked[j].query
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	out := make([]QueryCount, 0, len(ranked))
	for _, s := range ranked {
		out = append(out, QueryCount{Query: s.query, Count: s.count})
	}
	return out
}
