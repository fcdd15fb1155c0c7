package preview

import (
	"context"

	"github.com/micahwave/forced-preview/internal/repository"
)

// AckService はプレビュー確認の受理サービス。
// ノンス検証はハンドラー層で済んでいる前提で、フラグのセットだけを行う。
type AckService struct {
	flags repository.PreviewFlagRepository
}

// NewAckService はAckServiceを生成する。
func NewAckService(flags repository.PreviewFlagRepository) *AckService {
	return &AckService{flags: flags}
}

// Acknowledge は指定アイテムのプレビュー確認済みフラグをtrueにする。
// 冪等で、何度呼んでも結果は1回呼んだときと同じ。
// itemIDが0以下の場合は何もせず成功扱いにする（intval相当の寛容な挙動）。
func (s *AckService) Acknowledge(ctx context.Context, itemID int64) error {
	if itemID <= 0 {
		return nil
	}
	return s.flags.MarkPreviewed(ctx, itemID)
}
