package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"golang.org/x/time/rate"
)

// newTestRateLimiter はバーストの小さいレートリミッターを生成する。
func newTestRateLimiter(t *testing.T, generalBurst, ackBurst int) *RateLimiter {
	t.Helper()
	rl := NewRateLimiter(RateLimiterConfig{
		GeneralRate:     rate.Limit(0.001),
		GeneralBurst:    generalBurst,
		AckRate:         rate.Limit(0.001),
		AckBurst:        ackBurst,
		CleanupInterval: time.Hour,
	})
	t.Cleanup(rl.Stop)
	return rl
}

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
}

func TestGeneralMiddleware_AllowsWithinBurst(t *testing.T) {
	rl := newTestRateLimiter(t, 3, 3)
	handler := rl.GeneralMiddleware()(okHandler())

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(ContextWithSession(req.Context(), "user-1", "sess-1"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("request %d: status = %d, want %d", i+1, w.Code, http.StatusOK)
		}
	}
}

func TestGeneralMiddleware_RejectsOverBurst(t *testing.T) {
	rl := newTestRateLimiter(t, 2, 2)
	handler := rl.GeneralMiddleware()(okHandler())

	var lastCode int
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(ContextWithSession(req.Context(), "user-1", "sess-1"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)
		lastCode = w.Code

		if i == 2 && w.Header().Get("Retry-After") == "" {
			t.Error("Retry-After header missing on rejected request")
		}
	}

	if lastCode != http.StatusTooManyRequests {
		t.Errorf("third request status = %d, want %d", lastCode, http.StatusTooManyRequests)
	}
}

// TestGeneralMiddleware_PerUserIsolation はユーザーごとに独立した
// リミッターが使われることを検証する。
func TestGeneralMiddleware_PerUserIsolation(t *testing.T) {
	rl := newTestRateLimiter(t, 1, 1)
	handler := rl.GeneralMiddleware()(okHandler())

	for _, userID := range []string{"user-1", "user-2"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req = req.WithContext(ContextWithSession(req.Context(), userID, "sess"))
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("user %s: status = %d, want %d", userID, w.Code, http.StatusOK)
		}
	}

	if got := rl.GeneralLimiterCount(); got != 2 {
		t.Errorf("limiter entries = %d, want 2", got)
	}
}

func TestGeneralMiddleware_Unauthenticated(t *testing.T) {
	rl := newTestRateLimiter(t, 1, 1)
	handler := rl.GeneralMiddleware()(okHandler())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnauthorized)
	}
}

// TestAckMiddleware_KeyedByRemoteIP はプレビュー確認エンドポイントの制限が
// リモートIPをキーにすることを検証する。
func TestAckMiddleware_KeyedByRemoteIP(t *testing.T) {
	rl := newTestRateLimiter(t, 1, 1)
	handler := rl.AckMiddleware()(okHandler())

	for _, addr := range []string{"10.0.0.1:1234", "10.0.0.2:1234"} {
		req := httptest.NewRequest(http.MethodPost, "/ajax", nil)
		req.RemoteAddr = addr
		w := httptest.NewRecorder()

		handler.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("addr %s: status = %d, want %d", addr, w.Code, http.StatusOK)
		}
	}

	if got := rl.AckLimiterCount(); got != 2 {
		t.Errorf("limiter entries = %d, want 2", got)
	}

	// 同一IPからの2回目（別ポート）はバースト超過
	req := httptest.NewRequest(http.MethodPost, "/ajax", nil)
	req.RemoteAddr = "10.0.0.1:9999"
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	if w.Code != http.StatusTooManyRequests {
		t.Errorf("repeat from same IP: status = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestRemoteIP(t *testing.T) {
	tests := []struct {
		remoteAddr string
		want       string
	}{
		{"10.0.0.1:1234", "10.0.0.1"},
		{"[::1]:8080", "::1"},
		{"no-port", "no-port"},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tt.remoteAddr
		if got := remoteIP(req); got != tt.want {
			t.Errorf("remoteIP(%q) = %q, want %q", tt.remoteAddr, got, tt.want)
		}
	}
}
