package preview

import (
	"context"
	"errors"
	"testing"

	"github.com/micahwave/forced-preview/internal/model"
)

// mockUserRepo はrepository.UserRepositoryのモック実装。
type mockUserRepo struct {
	findFn func(ctx context.Context, id string) (*model.User, error)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id string) (*model.User, error) {
	if m.findFn != nil {
		return m.findFn(ctx, id)
	}
	return nil, nil
}

func TestCanEdit_EditorUser(t *testing.T) {
	users := &mockUserRepo{
		findFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Editor: true}, nil
		},
	}
	c := NewUserPermissionChecker(users)

	canEdit, err := c.CanEdit(context.Background(), "user-1", 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if !canEdit {
		t.Error("CanEdit = false, want true for editor user")
	}
}

func TestCanEdit_NonEditorUser(t *testing.T) {
	users := &mockUserRepo{
		findFn: func(ctx context.Context, id string) (*model.User, error) {
			return &model.User{ID: id, Editor: false}, nil
		},
	}
	c := NewUserPermissionChecker(users)

	canEdit, err := c.CanEdit(context.Background(), "user-1", 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if canEdit {
		t.Error("CanEdit = true, want false for non-editor user")
	}
}

// TestCanEdit_UnknownUser は未知のユーザーが権限なし扱いになる
// （エラーにしない）ことを検証する。
func TestCanEdit_UnknownUser(t *testing.T) {
	c := NewUserPermissionChecker(&mockUserRepo{})

	canEdit, err := c.CanEdit(context.Background(), "nobody", 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if canEdit {
		t.Error("CanEdit = true, want false for unknown user")
	}
}

func TestCanEdit_LookupErrorPropagates(t *testing.T) {
	wantErr := errors.New("db down")
	users := &mockUserRepo{
		findFn: func(ctx context.Context, id string) (*model.User, error) {
			return nil, wantErr
		},
	}
	c := NewUserPermissionChecker(users)

	if _, err := c.CanEdit(context.Background(), "user-1", 42); !errors.Is(err, wantErr) {
		t.Errorf("err = %v, want %v", err, wantErr)
	}
}
