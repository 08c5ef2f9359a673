package cookbook

import (
	"errors"
)

// 食譜庫錯誤
var (
	// ErrRejected 所有輸入驗證失敗的共同父錯誤
	ErrRejected = errors.New("rejected input")

	ErrInvalidName           = &RejectionError{Reason: "invalid recipe name"}
	ErrInvalidType           = &RejectionError{Reason: "invalid type"}
	ErrDuplicateName         = &RejectionError{Reason: "duplicate name"}
	ErrInvalidCookTime       = &RejectionError{Reason: "invalid cookTime"}
	ErrInvalidRequiredItem   = &RejectionError{Reason: "invalid requiredItem"}
	ErrDuplicateRequiredItem = &RejectionError{Reason: "duplicate requiredItem"}

	// ErrNotFound 名稱不存在或不是食譜
	ErrNotFound = errors.New("recipe not found")

	// ErrDanglingReference 引用的名稱不存在（僅在嚴格模式回報）
	ErrDanglingReference = errors.New("dangling reference")

	// ErrCyclicReference 展開時偵測到循環或超過深度上限
	ErrCyclicReference = errors.New("cyclic reference")

	// ErrOverflow 烹飪時間或食材數量超出 int 範圍
	ErrOverflow = errors.New("summary overflow")
)

// RejectionError 輸入被拒絕的原因
type RejectionError struct {
	Reason string
}

// Error 實現 error 介面
func (e *RejectionError) Error() string {
	return e.Reason
}

// Is 讓所有拒絕錯誤都能匹配 ErrRejected
func (e *RejectionError) Is(target error) bool {
	return target == ErrRejected
}

// IsRejected 檢查是否為輸入驗證錯誤
func IsRejected(err error) bool {
	return errors.Is(err, ErrRejected)
}
