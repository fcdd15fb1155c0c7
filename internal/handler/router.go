package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/micahwave/forced-preview/internal/metrics"
	"github.com/micahwave/forced-preview/internal/middleware"
	"github.com/micahwave/forced-preview/internal/policy"
)

// HealthChecker はヘルスチェックに必要なインターフェース。*sql.DBが満たす。
type HealthChecker interface {
	PingContext(ctx context.Context) error
}

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	HealthChecker HealthChecker
	SessionFinder middleware.SessionFinder
	RateLimiter   *middleware.RateLimiter
	Logger        *slog.Logger
	Gatherer      prometheus.Gatherer

	// コア
	AckService AckServiceInterface
	Nonces     NonceService
	Gate       GateInterface
	Messenger  MessengerInterface
	Policy     *policy.Policy

	// 永続化
	Items ItemStore
	Flags FlagReader

	// 計測
	Metrics metrics.Recorder

	// プレビュー設定で配るエンドポイントURL
	AjaxURL string
}

// NewRouter は全エンドポイントのルーティングとミドルウェアチェーンを構成した
// chi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → Logging → （/apiのみ Session → RateLimit(General)）
//
// プレビュー確認エンドポイント（/ajax）は未認証でも呼べるため
// 認証チェーンの外に置き、リモートIPキーのレート制限だけを掛ける。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger))

	ajaxHandler := NewAjaxHandler(deps.AckService, deps.Nonces, deps.Metrics)
	itemHandler := NewItemHandler(
		deps.Items, deps.Flags, deps.Gate, deps.Messenger,
		deps.Policy, deps.Nonces, deps.Metrics, deps.AjaxURL,
	)

	// --- 認証不要のルート ---

	r.Get("/health", newHealthHandler(deps.HealthChecker))
	r.Handle("/metrics", metrics.Handler(deps.Gatherer))

	// プレビュー確認エンドポイント（nopriv相当、ノンスで防御）
	r.With(deps.RateLimiter.AckMiddleware()).Post("/ajax", ajaxHandler.Dispatch)

	// --- 認証が必要なルート ---

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewSessionMiddleware(deps.SessionFinder))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		r.Route("/api/items", func(r chi.Router) {
			r.Post("/", itemHandler.CreateItem)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", itemHandler.GetItem)
				r.Put("/status", itemHandler.UpdateStatus)
				r.Get("/preview-config", itemHandler.PreviewConfig)
			})
		})
	})

	return r
}

// newHealthHandler はDB疎通を確認するヘルスチェックハンドラーを返す。
func newHealthHandler(checker HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := checker.PingContext(r.Context()); err != nil {
			slog.Error("health check failed", slog.String("error", err.Error()))
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "unhealthy"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
