// Package model はドメインモデルを定義する。
package model

import "time"

// Status はアイテムの公開状態を表す。
// WordPress由来の語彙（draft / pending / publish）をそのまま使う。
type Status string

const (
	// StatusDraft は下書き状態を表す。ゲートが公開を差し戻す先でもある。
	StatusDraft Status = "draft"
	// StatusPending はレビュー待ち状態を表す。
	StatusPending Status = "pending"
	// StatusPublish は公開状態を表す。ゲートの監視対象となる遷移先。
	StatusPublish Status = "publish"
)

// ValidStatus はステータス文字列がこのシステムで扱える値かどうかを判定する。
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusPending, StatusPublish:
		return true
	default:
		return false
	}
}

// Item はホストCMSが管理するコンテンツアイテムを表す。
// Previewed はプレビュー確認済みフラグ。一度trueになると二度と戻らない
// （アイテム単位・リビジョン非依存のモノトニックな属性）。
type Item struct {
	ID        int64
	Title     string
	Type      string
	Status    Status
	Previewed bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaveRequest はアイテムの状態遷移1回分の保存要求を表す。
// ゲートは公開試行だけでなく保存のたびに呼ばれるため、
// 自動保存かどうかを要求側に申告してもらい、ゲート側で自己フィルタする。
type SaveRequest struct {
	Item         *Item
	TargetStatus Status
	Autosave     bool
}

// Decision はゲート評価の結果を表す。
// Status は実際に永続化されるべきステータス。Forced がtrueの場合、
// 公開要求はすでに下書きへ差し戻されて永続化済みで、Message に
// ユーザー向けの説明文が入る。
type Decision struct {
	Status  Status
	Forced  bool
	Message string
}
