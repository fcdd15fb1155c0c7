package preview

import (
	"context"
	"fmt"
	"strings"

	"github.com/micahwave/forced-preview/internal/repository"
)

// notPublishedTemplate はゲートが公開を差し戻したときのユーザー向け定型文。
// 元プラグインの文面をそのまま使う。%s にはプレビューURLが入る。
const notPublishedTemplate = `<strong>The post was not published</strong>. Please <a href="%s">preview</a> the post before publishing.`

// Messenger は差し戻し時のユーザー向け説明文とプレビューリンクを組み立てる。
// フラグの読み取り以外に副作用はない。
type Messenger struct {
	baseURL string
	flags   repository.PreviewFlagRepository
}

// NewMessenger はMessengerを生成する。baseURLはホストのコンテンツ表示URL。
func NewMessenger(baseURL string, flags repository.PreviewFlagRepository) *Messenger {
	return &Messenger{
		baseURL: strings.TrimRight(baseURL, "/"),
		flags:   flags,
	}
}

// PreviewURL は指定アイテムのプレビュー表示URLを返す。
func (m *Messenger) PreviewURL(itemID int64) string {
	return fmt.Sprintf("%s/?p=%d&preview=true", m.baseURL, itemID)
}

// MessageFor は指定アイテムの差し戻し説明文を返す。
// フラグがtrueの場合は空文字列（特別なメッセージは不要）。
func (m *Messenger) MessageFor(ctx context.Context, itemID int64) (string, error) {
	previewed, err := m.flags.IsPreviewed(ctx, itemID)
	if err != nil {
		return "", err
	}
	if previewed {
		return "", nil
	}
	return m.render(itemID), nil
}

// render は定型文を組み立てる。フラグの状態は見ない。
func (m *Messenger) render(itemID int64) string {
	return fmt.Sprintf(notPublishedTemplate, m.PreviewURL(itemID))
}
