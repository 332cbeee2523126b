package search

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
)

const (
	// MaxQueryLen caps the free-text query length in characters.
	MaxQueryLen = 200

	// MaxPageSize caps the page size; DefaultPageSize is applied when the
	// caller does not ask for one.
	MaxPageSize     = 100
	DefaultPageSize = 20

	// 扫描大语料时每隔这么多条检查一次取消。
	cancelCheckEvery = 256
)

// Corpus 提供按用户读取交易的入口，由存储层实现。
// 实现方只需要应用 FilterSpec 和用户隔离，排序和打分在执行器里完成。
type Corpus interface {
	FindByUser(ctx context.Context, userID uint, f FilterSpec) ([]models.Transaction, error)
}

// Request 一次搜索调用的入参，按调用构造，不落库。
type Request struct {
	Query  string
	Filter FilterSpec
	Page   int
	Limit  int
}

// ValidateQuery trims the free-text query and enforces the length cap. Every
// entry point that takes a query goes through here.
func ValidateQuery(query string) (string, error) {
	query = strings.TrimSpace(query)
	if utf8.RuneCountInString(query) > MaxQueryLen {
		return "", &ValidationError{Field: "query", Reason: "at most 200 characters"}
	}
	return query, nil
}

// NewRequest validates and normalizes the raw request values.
func NewRequest(query string, f FilterSpec, page, limit int) (Request, error) {
	query, err := ValidateQuery(query)
	if err != nil {
		return Request{}, err
	}
	if page < 1 {
		return Request{}, &ValidationError{Field: "page", Reason: "page must be >= 1"}
	}
	if limit < 1 || limit > MaxPageSize {
		return Request{}, &ValidationError{Field: "limit", Reason: "limit must be between 1 and 100"}
	}
	return Request{Query: query, Filter: f, Page: page, Limit: limit}, nil
}

// Match 单条命中结果。
type Match struct {
	Transaction models.Transaction
	Score       float64
}

// Result 一次搜索的完整返回。Items 是请求页，Total 是全部命中数。
type Result struct {
	Items    []Match
	Total    int64
	MaxScore float64
	Duration time.Duration
}

// Executor runs free-text queries against a user's transaction corpus.
type Executor struct {
	corpus Corpus
}

func NewExecutor(corpus Corpus) *Executor {
	return &Executor{corpus: corpus}
}

// Execute 执行一次搜索：取语料、打分、排序、分页。
// 所有结果都限定在 userID 名下；超出命中范围的页返回空列表和正确的 Total。
func (e *Executor) Execute(ctx context.Context, userID uint, req Request) (*Result, error) {
	start := time.Now()

	matches, err := e.Matches(ctx, userID, req.Query, req.Filter)
	if err != nil {
		return nil, err
	}

	total := int64(len(matches))
	var maxScore float64
	if len(matches) > 0 {
		maxScore = matches[0].Score
	}

	offset := (req.Page - 1) * req.Limit
	page := []Match{}
	if offset < len(matches) {
		end := offset + req.Limit
		if end > len(matches) {
			end = len(matches)
		}
		page = matches[offset:end]
	}

	return &Result{
		Items:    page,
		Total:    total,
		MaxScore: maxScore,
		Duration: time.Since(start),
	}, nil
}

// Matches 返回全部命中并按相关度排序，不分页。导出给结果导出等需要完整
// 命中集的调用方使用。
func (e *Executor) Matches(ctx context.Context, userID uint, query string, f FilterSpec) ([]Match, error) {
	txs, err := e.corpus.FindByUser(ctx, userID, f)
	if err != nil {
		return nil, WrapStorage(ctx, "search", err)
	}

	tokens := tokenize(query)
	now := time.Now()

	matches := make([]Match, 0, len(txs))
	for i := range txs {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &TimeoutError{Op: "search", Err: err}
			}
		}
		score, ok := scoreTransaction(&txs[i], tokens, now)
		if !ok {
			continue
		}
		matches = append(matches, Match{Transaction: txs[i], Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		ti, tj := matches[i].Transaction.OccurredAt, matches[j].Transaction.OccurredAt
		if !ti.Equal(tj) {
			return ti.After(tj)
		}
		return matches[i].Transaction.ID > matches[j].Transaction.ID
	})

	return matches, nil
}

// tokenize lower-cases the query and splits it on whitespace.
func tokenize(query string) []string {
	return strings.Fields(strings.ToLower(query))
}

// scoreTransaction 计算相关度，ok=false 表示一个 token 都没命中。
// 命中 token 数为主（每个 10 分），词首前缀命中加 3 分，最近的交易再加一个
// 小于 1 的新鲜度加成 —— 只在 token 得分相同时影响排序。
// 空查询视为全部命中，得分 0，排序退化为按时间倒序。
func scoreTransaction(tx *models.Transaction, tokens []string, now time.Time) (float64, bool) {
	if len(tokens) == 0 {
		return 0, true
	}

	haystack := strings.ToLower(tx.Description)
	if tx.Merchant != "" {
		haystack += " " + strings.ToLower(tx.Merchant)
	}
	words := strings.Fields(haystack)

	matched, prefixHits := 0, 0
	for _, tok := range tokens {
		if !strings.Contains(haystack, tok) {
			continue
		}
		matched++
		for _, w := range words {
			if strings.HasPrefix(w, tok) {
				prefixHits++
				break
			}
		}
	}
	if matched == 0 {
		return 0, false
	}

	score := float64(matched)*10 + float64(prefixHits)*3
	score += recencyBoost(tx.OccurredAt, now)
	return score, true
}

// recencyBoost maps transaction age to (0,1]: newer is closer to 1.
func recencyBoost(occurredAt, now time.Time) float64 {
	ageDays := now.Sub(occurredAt).Hours() / 24
	if ageDays < 0 {
		ageDays = 0
	}
	return 1 / (1 + ageDays/30)
}
