// Package model はドメインモデルを定義する。
package model

import "time"

// User はホスト側で認証されたユーザーを表す。
// Editor はアイテム編集権限の有無（current_user_can相当の単純化）。
type User struct {
	ID        string
	Name      string
	Editor    bool
	CreatedAt time.Time
}

// Session は認証済みセッションを表す。
// このシステムはセッションを発行せず、ホストが作成したものを参照するだけ。
type Session struct {
	ID        string
	UserID    string
	ExpiresAt time.Time
	CreatedAt time.Time
}
