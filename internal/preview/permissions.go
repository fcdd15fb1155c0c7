package preview

import (
	"context"

	"github.com/micahwave/forced-preview/internal/repository"
)

// UserPermissionChecker はusersテーブルのeditorカラムを見る
// PermissionCheckerの参照実装。本来の権限制御はホストの責務なので、
// アイテムIDは判定に使わない（全アイテム共通の編集権限）。
type UserPermissionChecker struct {
	users repository.UserRepository
}

// NewUserPermissionChecker はUserPermissionCheckerを生成する。
func NewUserPermissionChecker(users repository.UserRepository) *UserPermissionChecker {
	return &UserPermissionChecker{users: users}
}

// CanEdit は指定ユーザーがアイテムを編集できるかどうかを返す。
// ユーザーが見つからない場合は権限なしとして扱う（エラーにしない）。
func (c *UserPermissionChecker) CanEdit(ctx context.Context, userID string, itemID int64) (bool, error) {
	user, err := c.users.FindByID(ctx, userID)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	return user.Editor, nil
}

// compile-time interface check
var _ PermissionChecker = (*UserPermissionChecker)(nil)
