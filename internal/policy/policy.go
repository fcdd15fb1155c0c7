// Package policy は強制プレビューの適用対象を決める適格性ポリシーを提供する。
package policy

// Filter は組み込み側が適用対象タイプ一覧を差し替えるためのフック。
// 元の一覧を受け取り、置き換え後の一覧を返す（forced_preview_post_types
// フィルタ相当）。初回利用前、New時に一度だけ適用される。
type Filter func(types []string) []string

// Option はPolicy構築時の設定オプション。
type Option func(*options)

type options struct {
	filters []Filter
}

// WithFilter は適用対象タイプ一覧を差し替えるフィルタを追加する。
// 複数指定した場合は指定順に適用される。
func WithFilter(f Filter) Option {
	return func(o *options) {
		o.filters = append(o.filters, f)
	}
}

// Policy はアイテムタイプごとの適格性判定を行う。
// 副作用なし・失敗なしの純粋な判定で、構築後は変更されない。
type Policy struct {
	gated map[string]struct{}
}

// DefaultTypes はデフォルトの適用対象タイプ一覧を返す。
func DefaultTypes() []string {
	return []string{"post"}
}

// New はPolicyを生成する。typesが空の場合はDefaultTypesを使う。
// フィルタオプションはこの時点で一度だけ適用される。
func New(types []string, opts ...Option) *Policy {
	if len(types) == 0 {
		types = DefaultTypes()
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}
	for _, f := range o.filters {
		types = f(types)
	}

	gated := make(map[string]struct{}, len(types))
	for _, t := range types {
		gated[t] = struct{}{}
	}

	return &Policy{gated: gated}
}

// IsGated は指定タイプのアイテムが強制プレビューの対象かどうかを返す。
func (p *Policy) IsGated(itemType string) bool {
	_, ok := p.gated[itemType]
	return ok
}

// Types は現在の適用対象タイプ一覧を返す。テストおよびログ用。
func (p *Policy) Types() []string {
	types := make([]string, 0, len(p.gated))
	for t := range p.gated {
		types = append(types, t)
	}
	return types
}
