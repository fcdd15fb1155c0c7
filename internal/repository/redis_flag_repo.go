package repository

import (
	"context"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// RedisFlagRepo はRedisを使用したプレビューフラグリポジトリ。
// ホストのアイテムストレージに手を入れられない組み込み構成向けで、
// アイテムIDごとに1キーを持つ。TTLは設定しない
// （フラグは失効しないモノトニックな値のため）。
type RedisFlagRepo struct {
	client *redis.Client
}

// NewRedisFlagRepo はRedisFlagRepoを生成する。
func NewRedisFlagRepo(client *redis.Client) *RedisFlagRepo {
	return &RedisFlagRepo{client: client}
}

// flagKey はアイテムIDからRedisキーを組み立てる。
func flagKey(itemID int64) string {
	return fmt.Sprintf("forced_preview:item:%d", itemID)
}

// IsPreviewed はフラグ値を返す。キーが存在しない場合はfalseを返す。
func (r *RedisFlagRepo) IsPreviewed(ctx context.Context, itemID int64) (bool, error) {
	_, err := r.client.Get(ctx, flagKey(itemID)).Result()
	if err == redis.Nil {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("プレビューフラグの取得に失敗しました: %w", err)
	}
	return true, nil
}

// MarkPreviewed はフラグをtrueにする。SETは最終書き込み勝ちで冪等。
func (r *RedisFlagRepo) MarkPreviewed(ctx context.Context, itemID int64) error {
	if err := r.client.Set(ctx, flagKey(itemID), "1", 0).Err(); err != nil {
		return fmt.Errorf("プレビューフラグの設定に失敗しました: %w", err)
	}
	return nil
}

// compile-time interface check
var _ PreviewFlagRepository = (*RedisFlagRepo)(nil)
