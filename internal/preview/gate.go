// Package preview は強制プレビューの中核（公開ゲート・確認サービス・
// メッセージング）を提供する。
//
// ゲートの本体は「このアイテムはプレビュー確認済みか」という単一の状態判定で、
// プレビュー閲覧リクエストと保存リクエストはホスト側で順序付けられないため、
// 状態はメモリ上の制御フローではなく永続フラグとして持つ。
package preview

import (
	"context"

	"github.com/micahwave/forced-preview/internal/model"
	"github.com/micahwave/forced-preview/internal/policy"
	"github.com/micahwave/forced-preview/internal/repository"
)

// PermissionChecker はアイテム編集権限の確認インターフェース。
// 権限制御そのものはホストの責務で、ゲートは「権限がなければ口を出さない」
// 判断にだけ使う。
type PermissionChecker interface {
	CanEdit(ctx context.Context, userID string, itemID int64) (bool, error)
}

// StatusWriter はゲートを経由しない生のステータス永続化プリミティブ。
// 差し戻し書き込みがゲート自身を再トリガーしないことは、
// フック付け外しではなくこの分離によって保証される。
type StatusWriter interface {
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
}

// Gate は公開ゲート。アイテムの状態遷移のたびに同期的に評価され、
// プレビュー未確認のまま公開されようとするアイテムを下書きへ差し戻す。
type Gate struct {
	policy    *policy.Policy
	flags     repository.PreviewFlagRepository
	items     StatusWriter
	perms     PermissionChecker
	messenger *Messenger
}

// NewGate はGateを生成する。
func NewGate(
	p *policy.Policy,
	flags repository.PreviewFlagRepository,
	items StatusWriter,
	perms PermissionChecker,
	messenger *Messenger,
) *Gate {
	return &Gate{
		policy:    p,
		flags:     flags,
		items:     items,
		perms:     perms,
		messenger: messenger,
	}
}

// EvaluateTransition は保存要求1回分のゲート評価を行う。
//
//  1. 呼び出しユーザーに編集権限がない場合は素通し（権限制御はホスト側で行われる）。
//  2. 自動保存は素通し。
//  3. アイテムタイプが適用対象外なら素通し。
//  4. フラグが既にtrueなら素通し。
//  5. 公開要求かつフラグがfalseなら、下書きを直接永続化して差し戻す。
//
// 差し戻しの書き込みに失敗した場合はエラーを返し、ホスト標準の
// 保存失敗経路に乗せる（リトライはしない）。
func (g *Gate) EvaluateTransition(ctx context.Context, userID string, req model.SaveRequest) (*model.Decision, error) {
	passThrough := &model.Decision{Status: req.TargetStatus}

	canEdit, err := g.perms.CanEdit(ctx, userID, req.Item.ID)
	if err != nil {
		return nil, err
	}
	if !canEdit {
		return passThrough, nil
	}

	if req.Autosave {
		return passThrough, nil
	}

	if !g.policy.IsGated(req.Item.Type) {
		return passThrough, nil
	}

	previewed, err := g.flags.IsPreviewed(ctx, req.Item.ID)
	if err != nil {
		return nil, err
	}
	if previewed {
		return passThrough, nil
	}

	if req.TargetStatus != model.StatusPublish {
		return passThrough, nil
	}

	// プレビュー未確認のまま公開しようとしている。下書きへ差し戻す。
	if err := g.items.UpdateStatus(ctx, req.Item.ID, model.StatusDraft); err != nil {
		return nil, err
	}

	return &model.Decision{
		Status:  model.StatusDraft,
		Forced:  true,
		Message: g.messenger.render(req.Item.ID),
	}, nil
}
