// Package cleanup は期限切れデータの定期削除ジョブを提供する。
package cleanup

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/micahwave/forced-preview/internal/repository"
)

// Job は期限切れセッションの掃除ジョブ。
// セッション自体はホストが発行するが、期限切れ行の削除まで
// ホストに任せると参照専用テーブルが際限なく太るため、こちらで掃く。
type Job struct {
	sessions repository.SessionRepository
	logger   *slog.Logger
}

// NewJob はJobを生成する。
func NewJob(sessions repository.SessionRepository, logger *slog.Logger) *Job {
	return &Job{
		sessions: sessions,
		logger:   logger,
	}
}

// Run は期限切れセッションを1回分削除する。
func (j *Job) Run(ctx context.Context) error {
	deleted, err := j.sessions.DeleteExpired(ctx)
	if err != nil {
		return fmt.Errorf("session cleanup failed: %w", err)
	}

	j.logger.Info("session cleanup completed",
		slog.Int64("deleted", deleted),
	)
	return nil
}
