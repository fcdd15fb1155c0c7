package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/micahwave/forced-preview/internal/metrics"
	"github.com/micahwave/forced-preview/internal/middleware"
	"github.com/micahwave/forced-preview/internal/model"
	"github.com/micahwave/forced-preview/internal/nonce"
)

// ajaxAction はプレビュー確認エンドポイントのルーティング識別子。
// admin-ajax.phpのactionパラメータに相当する。
const ajaxAction = "forced_preview"

// nonceField はアンチフォージェリトークンを運ぶフォームフィールド名。
const nonceField = "_wpnonce"

// AckServiceInterface はプレビュー確認受理サービスのインターフェース。
type AckServiceInterface interface {
	// Acknowledge は指定アイテムのプレビュー確認済みフラグを冪等にセットする。
	Acknowledge(ctx context.Context, itemID int64) error
}

// NonceService はトークンの発行・検証インターフェース。
type NonceService interface {
	Create(action, sessionID string) string
	Verify(token, action, sessionID string) bool
}

// AjaxHandler はプレビューページから呼ばれる確認エンドポイントのハンドラー。
// エンドポイントは未認証クライアントにも開いている（wp_ajax_nopriv相当）。
type AjaxHandler struct {
	ack     AckServiceInterface
	nonces  NonceService
	metrics metrics.Recorder
}

// NewAjaxHandler はAjaxHandlerを生成する。
func NewAjaxHandler(ack AckServiceInterface, nonces NonceService, recorder metrics.Recorder) *AjaxHandler {
	return &AjaxHandler{
		ack:     ack,
		nonces:  nonces,
		metrics: recorder,
	}
}

// ackResponse はプレビュー確認エンドポイントの成功レスポンス。
type ackResponse struct {
	Success bool `json:"success"`
}

// Dispatch はプレビュー確認リクエストを処理する。
// POST /ajax  フォームフィールド: action=forced_preview, _wpnonce, id
//
// ノンスが無効な場合は403を返し、状態は一切変更しない（fail closed）。
// idが無い・数値でない場合は何もせず成功を返す（寛容な挙動、エラーにしない）。
func (h *AjaxHandler) Dispatch(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストの解析に失敗しました。",
			Category: "validation",
			Action:   "フォームエンコードされたリクエストを送信してください。",
		})
		return
	}

	if action := r.FormValue("action"); action != ajaxAction {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewUnknownActionError(action))
		return
	}

	// ノンスのスコープはセッションCookie。未認証クライアントは空スコープで検証する。
	sessionID := ""
	if cookie, err := r.Cookie(middleware.SessionCookieName); err == nil {
		sessionID = cookie.Value
	}

	token := r.FormValue(nonceField)
	if !h.nonces.Verify(token, nonce.ActionForcedPreview, sessionID) {
		h.metrics.RecordNonceRejected()
		writeAPIErrorResponse(w, http.StatusForbidden, model.NewInvalidNonceError())
		return
	}

	// id欠落は成功扱いの何もしない操作。数値でない場合もintval同様0とみなす。
	itemID := int64(0)
	if raw := r.FormValue("id"); raw != "" {
		if parsed, err := strconv.ParseInt(raw, 10, 64); err == nil {
			itemID = parsed
		}
	}

	if err := h.ack.Acknowledge(r.Context(), itemID); err != nil {
		handleServiceError(w, err)
		return
	}

	if itemID > 0 {
		h.metrics.RecordAck()
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(ackResponse{Success: true})
}
