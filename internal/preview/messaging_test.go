package preview

import (
	"context"
	"strings"
	"testing"
)

func TestPreviewURL_Format(t *testing.T) {
	m := NewMessenger("http://example.com", newMockFlagRepo())

	got := m.PreviewURL(42)
	want := "http://example.com/?p=42&preview=true"
	if got != want {
		t.Errorf("PreviewURL(42) = %q, want %q", got, want)
	}
}

func TestPreviewURL_TrimsTrailingSlash(t *testing.T) {
	m := NewMessenger("http://example.com/", newMockFlagRepo())

	got := m.PreviewURL(7)
	want := "http://example.com/?p=7&preview=true"
	if got != want {
		t.Errorf("PreviewURL(7) = %q, want %q", got, want)
	}
}

// TestMessageFor_UnpreviewedReturnsMessage はフラグ未確認のアイテムに
// 説明文が返ることを検証する。
func TestMessageFor_UnpreviewedReturnsMessage(t *testing.T) {
	flags := newMockFlagRepo()
	m := NewMessenger("http://example.com", flags)

	msg, err := m.MessageFor(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg == "" {
		t.Fatal("MessageFor = empty, want explanation message")
	}
	if !strings.Contains(msg, "http://example.com/?p=42&preview=true") {
		t.Errorf("message = %q, want it to contain preview link", msg)
	}
	if !strings.Contains(msg, "was not published") {
		t.Errorf("message = %q, want it to explain the block", msg)
	}
}

// TestMessageFor_PreviewedReturnsEmpty はフラグ確認済みのアイテムに
// 特別なメッセージが付かないことを検証する。
func TestMessageFor_PreviewedReturnsEmpty(t *testing.T) {
	flags := newMockFlagRepo()
	flags.flags[42] = true
	m := NewMessenger("http://example.com", flags)

	msg, err := m.MessageFor(context.Background(), 42)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if msg != "" {
		t.Errorf("MessageFor = %q, want empty for previewed item", msg)
	}
}

// TestMessageFor_ConsistentWithFlag はメッセージの有無がフラグと
// 常に一致することを検証する。
func TestMessageFor_ConsistentWithFlag(t *testing.T) {
	flags := newMockFlagRepo()
	m := NewMessenger("http://example.com", flags)

	for _, previewed := range []bool{false, true} {
		flags.flags[1] = previewed

		msg, err := m.MessageFor(context.Background(), 1)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}

		if previewed && msg != "" {
			t.Errorf("previewed=true: message = %q, want empty", msg)
		}
		if !previewed && msg == "" {
			t.Error("previewed=false: message is empty, want explanation")
		}
	}
}
