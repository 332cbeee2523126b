package search

import (
	"context"
	"sort"
	"strings"
	"time"
	"unicode/utf8"
)

const (
	// MinSuggestPrefix 太短的前缀直接拒绝，避免 1 个字符就全量扫语料。
	MinSuggestPrefix = 2
	MaxSuggestPrefix = 100

	DefaultSuggestLimit = 10
	MaxSuggestLimit     = 100
)

// Candidate 一个补全候选，按请求现算，从不落库。
type Candidate struct {
	Text     string
	Weight   int    // 在语料里出现的次数
	Category string // 候选来源交易的类别
}

// Suggester computes query completions from a user's own transaction
// descriptions and merchants.
type Suggester struct {
	corpus    Corpus
	minPrefix int
}

func NewSuggester(corpus Corpus) *Suggester {
	return &Suggester{corpus: corpus, minPrefix: MinSuggestPrefix}
}

// Suggest 返回 prefix 的补全候选，整组一次算完：
// 前缀命中排在子串命中前面，其次按出现频次降序，再按最近出现时间。
// 没有候选时返回空列表而不是错误。
func (s *Suggester) Suggest(ctx context.Context, userID uint, prefix string, limit int) ([]Candidate, error) {
	prefix = strings.TrimSpace(prefix)
	n := utf8.RuneCountInString(prefix)
	if n < s.minPrefix {
		return nil, &ValidationError{Field: "prefix", Reason: "at least 2 characters"}
	}
	if n > MaxSuggestPrefix {
		return nil, &ValidationError{Field: "prefix", Reason: "at most 100 characters"}
	}
	if limit <= 0 {
		limit = DefaultSuggestLimit
	}
	if limit > MaxSuggestLimit {
		limit = MaxSuggestLimit
	}

	txs, err := s.corpus.FindByUser(ctx, userID, FilterSpec{})
	if err != nil {
		return nil, WrapStorage(ctx, "suggest", err)
	}

	type bucket struct {
		text     string
		category string
		count    int
		lastSeen time.Time
		isPrefix bool
	}

	needle := strings.ToLower(prefix)
	buckets := make(map[string]*bucket)

	add := func(text, category string, seen time.Time) {
		lower := strings.ToLower(text)
		if !strings.Contains(lower, needle) {
			return
		}
		b, ok := buckets[lower]
		if !ok {
			b = &bucket{
				text:     text,
				category: category,
				isPrefix: strings.HasPrefix(lower, needle),
			}
			buckets[lower] = b
		}
		b.count++
		if seen.After(b.lastSeen) {
			b.lastSeen = seen
		}
	}

	for i := range txs {
		if i%cancelCheckEvery == 0 {
			if err := ctx.Err(); err != nil {
				return nil, &TimeoutError{Op: "suggest", Err: err}
			}
		}
		tx := &txs[i]
		add(tx.Description, tx.Category, tx.OccurredAt)
		if tx.Merchant != "" {
			add(tx.Merchant, tx.Category, tx.OccurredAt)
		}
	}

	ranked := make([]*bucket, 0, len(buckets))
	for _, b := range buckets {
		ranked = append(ranked, b)
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].isPrefix != ranked[j].isPrefix {
			return ranked[i].isPrefix
		}
		if ranked[i].count != ranked[j].count {
			return ranked[i].count > ranked[j].count
		}
		if !ranked[i].lastSeen.Equal(ranked[j].lastSeen) {
			return ranked[i].lastSeen.After(ranked[j].lastSeen)
		}
		return ranked[i].text < ranked[j].text
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	out := make([]Candidate, 0, len(ranked))
	for _, b := range ranked {
		out = append(out, Candidate{Text: b.text, Weight: b.count, Category: b.category})
	}
	return out, nil
}
