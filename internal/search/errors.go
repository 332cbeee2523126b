package search

import (
	"context"
	"errors"
	"fmt"
)

// 错误分类：
//   ValidationError / ConflictError / NotFoundError —— 调用方改参数后重试
//   StorageError —— 可按原样退避重试
//   TimeoutError —— 可以放宽 deadline 或收窄查询后重试
// 核心层不会抛出这五类之外的错误。

// ValidationError reports malformed or out-of-range input. Raised before any
// storage access.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// ConflictError reports a uniqueness violation, e.g. a duplicate saved-query
// name for the same user.
type ConflictError struct {
	Resource string
	Key      string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s already exists: %s", e.Resource, e.Key)
}

// NotFoundError reports a missing record. A record owned by another user is
// reported the same way, so existence never leaks across users.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string {
	return e.Resource + " not found"
}

// StorageError wraps a failure from the underlying corpus or persistence.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage error during %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// TimeoutError reports that the caller-supplied deadline expired before the
// operation finished.
type TimeoutError struct {
	Op  string
	Err error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timed out: %v", e.Op, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// WrapStorage 把存储层返回的原始错误归类：上下文取消/超时归为 TimeoutError，
// 其它一律 StorageError。
func WrapStorage(ctx context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) || ctx.Err() != nil {
		return &TimeoutError{Op: op, Err: err}
	}
	return &StorageError{Op: op, Err: err}
}
