package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/micahwave/forced-preview/internal/model"
)

// PostgresItemRepo はPostgreSQLを使用したアイテムリポジトリ。
// プレビューフラグはitemsテーブルのpreviewedカラム（アイテムの属性）として
// 保持するため、PreviewFlagRepositoryも同時に実装する。
type PostgresItemRepo struct {
	db *sql.DB
}

// NewPostgresItemRepo はPostgresItemRepoを生成する。
func NewPostgresItemRepo(db *sql.DB) *PostgresItemRepo {
	return &PostgresItemRepo{db: db}
}

// FindByID は指定IDのアイテムを取得する。見つからない場合はnilを返す。
func (r *PostgresItemRepo) FindByID(ctx context.Context, id int64) (*model.Item, error) {
	item := &model.Item{}

	err := r.db.QueryRowContext(ctx,
		`SELECT id, title, item_type, status, previewed, created_at, updated_at
		 FROM items WHERE id = $1`,
		id,
	).Scan(
		&item.ID, &item.Title, &item.Type, &item.Status,
		&item.Previewed, &item.CreatedAt, &item.UpdatedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("アイテムの取得に失敗しました: %w", err)
	}

	return item, nil
}

// Create は新規アイテムを作成し、採番されたIDをitemに格納する。
func (r *PostgresItemRepo) Create(ctx context.Context, item *model.Item) error {
	now := time.Now().UTC()
	item.CreatedAt = now
	item.UpdatedAt = now

	err := r.db.QueryRowContext(ctx,
		`INSERT INTO items (title, item_type, status, previewed, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		item.Title, item.Type, item.Status, item.Previewed,
		item.CreatedAt, item.UpdatedAt,
	).Scan(&item.ID)
	if err != nil {
		return fmt.Errorf("アイテムの作成に失敗しました: %w", err)
	}

	return nil
}

// UpdateStatus はアイテムのステータスを直接書き換える。
// ゲートを経由しない生の永続化プリミティブ。
func (r *PostgresItemRepo) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET status = $2, updated_at = $3 WHERE id = $1`,
		id, status, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("アイテムステータスの更新に失敗しました: %w", err)
	}
	return nil
}

// IsPreviewed はプレビュー確認済みフラグを返す。
// アイテムが存在しない場合は未設定とみなしてfalseを返す（エラーにしない）。
func (r *PostgresItemRepo) IsPreviewed(ctx context.Context, itemID int64) (bool, error) {
	var previewed bool

	err := r.db.QueryRowContext(ctx,
		`SELECT previewed FROM items WHERE id = $1`,
		itemID,
	).Scan(&previewed)

	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("プレビューフラグの取得に失敗しました: %w", err)
	}

	return previewed, nil
}

// MarkPreviewed はプレビュー確認済みフラグをtrueにする。
// 単一カラムのUPDATEなので冪等で、コミット時点で永続化される。
// 存在しないアイテムIDは何も更新せず成功扱いにする。
func (r *PostgresItemRepo) MarkPreviewed(ctx context.Context, itemID int64) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE items SET previewed = TRUE, updated_at = $2 WHERE id = $1`,
		itemID, time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("プレビューフラグの設定に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var (
	_ ItemRepository        = (*PostgresItemRepo)(nil)
	_ PreviewFlagRepository = (*PostgresItemRepo)(nil)
)
