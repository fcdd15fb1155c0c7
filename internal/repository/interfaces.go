// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/micahwave/forced-preview/internal/model"
)

// ItemRepository はアイテムデータの永続化インターフェース。
type ItemRepository interface {
	// FindByID は指定IDのアイテムを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id int64) (*model.Item, error)

	// Create は新規アイテムを作成し、採番されたIDを格納して返す。
	Create(ctx context.Context, item *model.Item) error

	// UpdateStatus はアイテムのステータスを直接書き換える。
	// ゲートを経由しない生の永続化プリミティブであり、ゲート自身が
	// 差し戻し書き込みに使う（再帰防止はこの分離で成立する）。
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
}

// PreviewFlagRepository はプレビュー確認済みフラグの永続化インターフェース。
// フラグはアイテムIDごとに1つのブール値で、セットは冪等、
// 一度trueになったら本システムからは決して戻さない。
type PreviewFlagRepository interface {
	// IsPreviewed は現在のフラグ値を返す。未設定はfalseとして扱い、エラーにしない。
	IsPreviewed(ctx context.Context, itemID int64) (bool, error)

	// MarkPreviewed はフラグをtrueにする。既にtrueの場合は観測可能な変化なし。
	// 呼び出しが返った時点で永続化されていることを保証する
	// （公開ゲートが別リクエストで直後に読む可能性があるため）。
	MarkPreviewed(ctx context.Context, itemID int64) error
}

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// SessionRepository はセッションデータの永続化インターフェース。
// セッションの発行はホスト側の責務で、本サービスは参照と掃除のみ行う。
type SessionRepository interface {
	// FindByID は指定IDのセッションを取得する。期限切れの場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Session, error)

	// DeleteExpired は期限切れセッションを削除し、削除件数を返す。
	DeleteExpired(ctx context.Context) (int64, error)
}
