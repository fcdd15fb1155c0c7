// Package metrics はPrometheusメトリクスの収集と公開を提供する。
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder はメトリクス収集のインターフェース。ハンドラー層から利用する。
type Recorder interface {
	RecordGateEvaluation()
	RecordGateForced(itemType string)
	RecordAck()
	RecordNonceRejected()
}

// Collector はPrometheusメトリクスを収集する実装。
type Collector struct {
	gateEvaluations prometheus.Counter
	gateForced      *prometheus.CounterVec
	acks            prometheus.Counter
	nonceRejected   prometheus.Counter
}

// NewCollector は新しいCollectorを生成し、指定されたレジストリにメトリクスを登録する。
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		gateEvaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forced_preview_gate_evaluations_total",
			Help: "公開ゲート評価の合計数",
		}),
		gateForced: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "forced_preview_gate_forced_total",
			Help: "下書きへ差し戻した公開試行のアイテムタイプ別合計数",
		}, []string{"item_type"}),
		acks: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forced_preview_acks_total",
			Help: "受理したプレビュー確認の合計数",
		}),
		nonceRejected: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "forced_preview_nonce_rejected_total",
			Help: "ノンス検証で拒否したリクエストの合計数",
		}),
	}

	reg.MustRegister(
		c.gateEvaluations,
		c.gateForced,
		c.acks,
		c.nonceRejected,
	)

	return c
}

// RecordGateEvaluation はゲート評価1回を記録する。
func (c *Collector) RecordGateEvaluation() {
	c.gateEvaluations.Inc()
}

// RecordGateForced は下書きへの差し戻しを記録する。
func (c *Collector) RecordGateForced(itemType string) {
	c.gateForced.WithLabelValues(itemType).Inc()
}

// RecordAck はプレビュー確認の受理を記録する。
func (c *Collector) RecordAck() {
	c.acks.Inc()
}

// RecordNonceRejected はノンス検証による拒否を記録する。
func (c *Collector) RecordNonceRejected() {
	c.nonceRejected.Inc()
}

// NopRecorder は何も記録しないRecorder。テスト用。
type NopRecorder struct{}

// RecordGateEvaluation は何もしない。
func (NopRecorder) RecordGateEvaluation() {}

// RecordGateForced は何もしない。
func (NopRecorder) RecordGateForced(itemType string) {}

// RecordAck は何もしない。
func (NopRecorder) RecordAck() {}

// RecordNonceRejected は何もしない。
func (NopRecorder) RecordNonceRejected() {}

// Handler はPrometheusスクレイプ用のHTTPハンドラーを返す。
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// compile-time interface check
var (
	_ Recorder = (*Collector)(nil)
	_ Recorder = NopRecorder{}
)
