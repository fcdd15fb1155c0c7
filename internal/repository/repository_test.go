package repository

import "testing"

// PostgresItemRepoはItemRepositoryインターフェースを満たすことを検証
func TestPostgresItemRepo_ImplementsInterface(t *testing.T) {
	var _ ItemRepository = (*PostgresItemRepo)(nil)
}

// PostgresItemRepoはPreviewFlagRepositoryインターフェースも満たすことを検証
// （previewedカラムをフラグストアとして使うデフォルト構成）
func TestPostgresItemRepo_ImplementsFlagInterface(t *testing.T) {
	var _ PreviewFlagRepository = (*PostgresItemRepo)(nil)
}

// RedisFlagRepoはPreviewFlagRepositoryインターフェースを満たすことを検証
func TestRedisFlagRepo_ImplementsInterface(t *testing.T) {
	var _ PreviewFlagRepository = (*RedisFlagRepo)(nil)
}

// PostgresUserRepoはUserRepositoryインターフェースを満たすことを検証
func TestPostgresUserRepo_ImplementsInterface(t *testing.T) {
	var _ UserRepository = (*PostgresUserRepo)(nil)
}

// PostgresSessionRepoはSessionRepositoryインターフェースを満たすことを検証
func TestPostgresSessionRepo_ImplementsInterface(t *testing.T) {
	var _ SessionRepository = (*PostgresSessionRepo)(nil)
}

// NewPostgresItemRepoが正しく初期化されることを検証
func TestNewPostgresItemRepo_Initializes(t *testing.T) {
	repo := NewPostgresItemRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewRedisFlagRepoが正しく初期化されることを検証
func TestNewRedisFlagRepo_Initializes(t *testing.T) {
	repo := NewRedisFlagRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresUserRepoが正しく初期化されることを検証
func TestNewPostgresUserRepo_Initializes(t *testing.T) {
	repo := NewPostgresUserRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}

// NewPostgresSessionRepoが正しく初期化されることを検証
func TestNewPostgresSessionRepo_Initializes(t *testing.T) {
	repo := NewPostgresSessionRepo(nil)
	if repo == nil {
		t.Fatal("expected non-nil repo")
	}
}
