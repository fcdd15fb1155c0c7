package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/micahwave/forced-preview/internal/metrics"
	"github.com/micahwave/forced-preview/internal/middleware"
	"github.com/micahwave/forced-preview/internal/model"
	"github.com/micahwave/forced-preview/internal/nonce"
	"github.com/micahwave/forced-preview/internal/policy"
)

// ItemStore はアイテムハンドラーが必要とする永続化インターフェース。
// repository.ItemRepositoryの部分集合。
type ItemStore interface {
	FindByID(ctx context.Context, id int64) (*model.Item, error)
	Create(ctx context.Context, item *model.Item) error
	UpdateStatus(ctx context.Context, id int64, status model.Status) error
}

// FlagReader はプレビューフラグの読み取りインターフェース。
type FlagReader interface {
	IsPreviewed(ctx context.Context, itemID int64) (bool, error)
}

// GateInterface は公開ゲートのインターフェース。
type GateInterface interface {
	// EvaluateTransition は保存要求1回分のゲート評価を行う。
	// 差し戻しの場合、下書きステータスは評価の中で永続化済み。
	EvaluateTransition(ctx context.Context, userID string, req model.SaveRequest) (*model.Decision, error)
}

// MessengerInterface は差し戻しメッセージの組み立てインターフェース。
type MessengerInterface interface {
	// MessageFor はフラグが未確認の場合のみ説明文を返す。確認済みなら空文字列。
	MessageFor(ctx context.Context, itemID int64) (string, error)
}

// ItemHandler はアイテム管理のHTTPハンドラー。
// ホストCMSの保存チェックポイントに相当する役割を持つ。
type ItemHandler struct {
	items     ItemStore
	flags     FlagReader
	gate      GateInterface
	messenger MessengerInterface
	policy    *policy.Policy
	nonces    NonceService
	metrics   metrics.Recorder
	ajaxURL   string
}

// NewItemHandler はItemHandlerを生成する。
func NewItemHandler(
	items ItemStore,
	flags FlagReader,
	gate GateInterface,
	messenger MessengerInterface,
	p *policy.Policy,
	nonces NonceService,
	recorder metrics.Recorder,
	ajaxURL string,
) *ItemHandler {
	return &ItemHandler{
		items:     items,
		flags:     flags,
		gate:      gate,
		messenger: messenger,
		policy:    p,
		nonces:    nonces,
		metrics:   recorder,
		ajaxURL:   ajaxURL,
	}
}

// --- リクエスト・レスポンス型 ---

// createItemRequest はアイテム作成リクエストのボディ。
type createItemRequest struct {
	Title string `json:"title"`
	Type  string `json:"type"`
}

// itemResponse はアイテムのレスポンス。
// Message は差し戻し説明文で、プレビュー未確認の場合のみ含まれる。
type itemResponse struct {
	ID        int64        `json:"id"`
	Title     string       `json:"title"`
	Type      string       `json:"type"`
	Status    model.Status `json:"status"`
	Previewed bool         `json:"previewed"`
	Message   string       `json:"message,omitempty"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
}

// saveStatusRequest はステータス遷移リクエストのボディ。
type saveStatusRequest struct {
	Status   string `json:"status"`
	Autosave bool   `json:"autosave,omitempty"`
}

// saveStatusResponse はステータス遷移のレスポンス。
// Forced がtrueの場合、要求された公開は下書きへ差し戻されている。
type saveStatusResponse struct {
	ID      int64        `json:"id"`
	Status  model.Status `json:"status"`
	Forced  bool         `json:"forced"`
	Message string       `json:"message,omitempty"`
}

// previewConfigResponse はプレビューページに渡すスクリプト設定。
// 元プラグインのwp_localize_scriptペイロードに相当する。
type previewConfigResponse struct {
	AjaxURL string `json:"ajax_url"`
	Nonce   string `json:"nonce"`
	ItemID  int64  `json:"item_id"`
}

// --- ハンドラー ---

// CreateItem はアイテムを下書きとして作成する。
// POST /api/items
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	if req.Type == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidTypeError())
		return
	}

	item := &model.Item{
		Title:  req.Title,
		Type:   req.Type,
		Status: model.StatusDraft,
	}
	if err := h.items.Create(r.Context(), item); err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(h.toResponse(item, false, ""))
}

// GetItem はアイテムと現在のゲートメッセージを取得する。
// GET /api/items/:id
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDFromURL(w, r)
	if !ok {
		return
	}

	item, err := h.items.FindByID(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if item == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewItemNotFoundError(itemID))
		return
	}

	previewed, err := h.flags.IsPreviewed(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	// メッセージは未確認のアイテムにだけ付く
	message := ""
	if h.policy.IsGated(item.Type) {
		message, err = h.messenger.MessageFor(r.Context(), itemID)
		if err != nil {
			handleServiceError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(h.toResponse(item, previewed, message))
}

// UpdateStatus はアイテムのステータス遷移を保存する。ホストの保存チェック
// ポイントに相当し、毎回ゲートを同期的に評価してから永続化する。
// PUT /api/items/:id/status
func (h *ItemHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	itemID, ok := itemIDFromURL(w, r)
	if !ok {
		return
	}

	var req saveStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "リクエストボディの解析に失敗しました。",
			Category: "validation",
			Action:   "正しいJSON形式でリクエストしてください。",
		})
		return
	}

	target := model.Status(req.Status)
	if !model.ValidStatus(target) {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidStatusError(req.Status))
		return
	}

	item, err := h.items.FindByID(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if item == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewItemNotFoundError(itemID))
		return
	}

	h.metrics.RecordGateEvaluation()
	decision, err := h.gate.EvaluateTransition(r.Context(), userID, model.SaveRequest{
		Item:         item,
		TargetStatus: target,
		Autosave:     req.Autosave,
	})
	if err != nil {
		// 差し戻し書き込みの失敗もここに乗る（ホスト標準の保存失敗経路）
		handleServiceError(w, err)
		return
	}

	if decision.Forced {
		h.metrics.RecordGateForced(item.Type)
	} else {
		// 素通しの場合は要求どおりのステータスをホスト側が永続化する
		if err := h.items.UpdateStatus(r.Context(), itemID, decision.Status); err != nil {
			handleServiceError(w, err)
			return
		}
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(saveStatusResponse{
		ID:      itemID,
		Status:  decision.Status,
		Forced:  decision.Forced,
		Message: decision.Message,
	})
}

// PreviewConfig はプレビューページへのスクリプト注入設定を返す。
// 対象アイテムが適用対象かつ未確認の場合のみ設定を返し、
// それ以外は204 No Content（注入不要）を返す。
// GET /api/items/:id/preview-config
func (h *ItemHandler) PreviewConfig(w http.ResponseWriter, r *http.Request) {
	itemID, ok := itemIDFromURL(w, r)
	if !ok {
		return
	}

	item, err := h.items.FindByID(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if item == nil {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewItemNotFoundError(itemID))
		return
	}

	if !h.policy.IsGated(item.Type) {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	previewed, err := h.flags.IsPreviewed(r.Context(), itemID)
	if err != nil {
		handleServiceError(w, err)
		return
	}
	if previewed {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	sessionID := middleware.SessionIDFromContext(r.Context())

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(previewConfigResponse{
		AjaxURL: h.ajaxURL,
		Nonce:   h.nonces.Create(nonce.ActionForcedPreview, sessionID),
		ItemID:  itemID,
	})
}

// toResponse はアイテムをレスポンス型に変換する。
func (h *ItemHandler) toResponse(item *model.Item, previewed bool, message string) itemResponse {
	return itemResponse{
		ID:        item.ID,
		Title:     item.Title,
		Type:      item.Type,
		Status:    item.Status,
		Previewed: previewed,
		Message:   message,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

// itemIDFromURL はURLパラメータからアイテムIDを取り出す。
// 数値でない場合は404を書き込んでfalseを返す。
func itemIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		writeAPIErrorResponse(w, http.StatusNotFound, model.NewItemNotFoundError(0))
		return 0, false
	}
	return id, true
}
