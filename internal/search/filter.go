package search

import (
	"errors"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/Renu-code123/ExpenseFlow-expensetracker-sub003/internal/models"
)

const (
	dateLayout = "2006-01-02"

	// MaxTags caps the number of tags a single filter may carry.
	MaxTags = 50

	// maxAbsAmount 金额绝对值上限（元），保证换算成分后不会溢出 int64。
	maxAbsAmount = 1e15
)

var errAmountOutOfRange = errors.New("amount out of range")

// FilterSpec 是筛选条件的规范形式：所有字段都校验过，nil / 空切片表示未设置。
// 一经构造不再修改。
type FilterSpec struct {
	StartDate  *time.Time
	EndDate    *time.Time // 按整天处理，包含当天
	MinCent    *int64
	MaxCent    *int64
	Categories []string // 排序去重后的小写类别
	Tags       []string // 排序去重
}

// BuildFilter turns raw request parameters into a canonical FilterSpec.
// Known keys: start, end (YYYY-MM-DD), min_amount, max_amount (signed
// decimals), categories, tags (comma-separated). Unknown keys are silently
// dropped for forward compatibility; any malformed known value fails the
// whole build, nothing is partially applied.
func BuildFilter(raw map[string]string) (FilterSpec, error) {
	var f FilterSpec

	for key, value := range raw {
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		switch key {
		case "start":
			t, err := time.Parse(dateLayout, value)
			if err != nil {
				return FilterSpec{}, &ValidationError{Field: "start", Reason: "date must be YYYY-MM-DD"}
			}
			f.StartDate = &t
		case "end":
			t, err := time.Parse(dateLayout, value)
			if err != nil {
				return FilterSpec{}, &ValidationError{Field: "end", Reason: "date must be YYYY-MM-DD"}
			}
			f.EndDate = &t
		case "min_amount":
			cent, err := parseAmountCent(value)
			if err != nil {
				return FilterSpec{}, &ValidationError{Field: "min_amount", Reason: "not a valid amount"}
			}
			f.MinCent = &cent
		case "max_amount":
			cent, err := parseAmountCent(value)
			if err != nil {
				return FilterSpec{}, &ValidationError{Field: "max_amount", Reason: "not a valid amount"}
			}
			f.MaxCent = &cent
		case "categories":
			cats := splitUnique(strings.ToLower(value))
			for _, cat := range cats {
				if !models.IsKnownCategory(cat) {
					return FilterSpec{}, &ValidationError{Field: "categories", Reason: "unknown category: " + cat}
				}
			}
			f.Categories = cats
		case "tags":
			tags := splitUnique(value)
			if len(tags) > MaxTags {
				return FilterSpec{}, &ValidationError{Field: "tags", Reason: "at most " + strconv.Itoa(MaxTags) + " tags"}
			}
			f.Tags = tags
		default:
			// 未知字段直接忽略，保持向前兼容
		}
	}

	if f.StartDate != nil && f.EndDate != nil && f.EndDate.Before(*f.StartDate) {
		return FilterSpec{}, &ValidationError{Field: "start/end", Reason: "start must not be after end"}
	}
	if f.MinCent != nil && f.MaxCent != nil && *f.MinCent > *f.MaxCent {
		return FilterSpec{}, &ValidationError{Field: "min_amount/max_amount", Reason: "min must not exceed max"}
	}

	return f, nil
}

// Raw re-encodes the spec in the same key/value form BuildFilter accepts, so
// BuildFilter(f.Raw()) reproduces f exactly.
func (f FilterSpec) Raw() map[string]string {
	raw := make(map[string]string)
	if f.StartDate != nil {
		raw["start"] = f.StartDate.Format(dateLayout)
	}
	if f.EndDate != nil {
		raw["end"] = f.EndDate.Format(dateLayout)
	}
	if f.MinCent != nil {
		raw["min_amount"] = formatCentAmount(*f.MinCent)
	}
	if f.MaxCent != nil {
		raw["max_amount"] = formatCentAmount(*f.MaxCent)
	}
	if len(f.Categories) > 0 {
		raw["categories"] = strings.Join(f.Categories, ",")
	}
	if len(f.Tags) > 0 {
		raw["tags"] = strings.Join(f.Tags, ",")
	}
	return raw
}

// IsZero reports whether no filter dimension is set.
func (f FilterSpec) IsZero() bool {
	return f.StartDate == nil && f.EndDate == nil &&
		f.MinCent == nil && f.MaxCent == nil &&
		len(f.Categories) == 0 && len(f.Tags) == 0
}

// Matches 判断一条交易是否满足全部已设置的筛选维度（各维度之间为 AND）。
func (f FilterSpec) Matches(tx *models.Transaction) bool {
	if f.StartDate != nil && tx.OccurredAt.Before(*f.StartDate) {
		return false
	}
	if f.EndDate != nil && !tx.OccurredAt.Before(f.EndDate.Add(24*time.Hour)) {
		return false
	}
	if f.MinCent != nil && tx.AmountCent < *f.MinCent {
		return false
	}
	if f.MaxCent != nil && tx.AmountCent > *f.MaxCent {
		return false
	}
	if len(f.Categories) > 0 && !containsString(f.Categories, strings.ToLower(tx.Category)) {
		return false
	}
	if len(f.Tags) > 0 && !hasAllTags(tx.TagList(), f.Tags) {
		return false
	}
	return true
}

// parseAmountCent 把十进制金额字符串转成分，四舍五入到两位小数，保留符号。
func parseAmountCent(s string) (int64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v > maxAbsAmount || v < -maxAbsAmount {
		return 0, errAmountOutOfRange
	}
	if v >= 0 {
		return int64(v*100 + 0.5), nil
	}
	return int64(v*100 - 0.5), nil
}

func formatCentAmount(cent int64) string {
	return strconv.FormatFloat(float64(cent)/100.0, 'f', 2, 64)
}

// splitUnique splits a comma-separated list, trims, de-duplicates and sorts.
func splitUnique(s string) []string {
	seen := make(map[string]bool)
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" || seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

func containsString(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// hasAllTags 要求筛选里的每个标签都出现在交易标签里。
func hasAllTags(txTags, want []string) bool {
	for _, w := range want {
		if !containsString(txTags, w) {
			return false
		}
	}
	return true
}
