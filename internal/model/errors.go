// Package model はドメインモデルを定義する。
package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeUnauthorized  = "UNAUTHORIZED"
	ErrCodeInvalidNonce  = "INVALID_NONCE"
	ErrCodeItemNotFound  = "ITEM_NOT_FOUND"
	ErrCodeInvalidStatus = "INVALID_STATUS"
	ErrCodeInvalidType   = "INVALID_TYPE"
	ErrCodeUnknownAction = "UNKNOWN_ACTION"
)

// NewUnauthorizedError は未認証エラーを生成する。
func NewUnauthorizedError() *APIError {
	return &APIError{
		Code:     ErrCodeUnauthorized,
		Message:  "認証が必要です。",
		Category: "auth",
		Action:   "ログインしてください。",
	}
}

// NewInvalidNonceError はノンス検証失敗エラーを生成する。
// フラグは一切変更されない（fail closed）。
func NewInvalidNonceError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidNonce,
		Message:  "リクエストトークンの検証に失敗しました。",
		Category: "auth",
		Action:   "プレビューページを再読み込みしてから、もう一度お試しください。",
	}
}

// NewItemNotFoundError はアイテム未検出エラーを生成する。
func NewItemNotFoundError(itemID int64) *APIError {
	return &APIError{
		Code:     ErrCodeItemNotFound,
		Message:  fmt.Sprintf("指定されたアイテムが見つかりません: %d", itemID),
		Category: "validation",
		Action:   "アイテムIDを確認してください。",
	}
}

// NewInvalidStatusError は無効なステータスエラーを生成する。
func NewInvalidStatusError(status string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidStatus,
		Message:  fmt.Sprintf("無効なステータスです: %s", status),
		Category: "validation",
		Action:   "ステータスには draft、pending、publish のいずれかを指定してください。",
	}
}

// NewInvalidTypeError は無効なアイテムタイプエラーを生成する。
func NewInvalidTypeError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidType,
		Message:  "アイテムタイプが指定されていません。",
		Category: "validation",
		Action:   "typeフィールドを指定してください。",
	}
}

// NewUnknownActionError は未知のajaxアクションエラーを生成する。
func NewUnknownActionError(action string) *APIError {
	return &APIError{
		Code:     ErrCodeUnknownAction,
		Message:  fmt.Sprintf("未対応のアクションです: %s", action),
		Category: "validation",
		Action:   "actionパラメータを確認してください。",
	}
}
