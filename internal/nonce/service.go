// Package nonce はアクションスコープ付きのアンチフォージェリトークンを提供する。
//
// トークンはWordPressのnonceと同じ形をしている: 有効期間を2つの「tick」に
// 分割し、HMAC-SHA256(secret, tick|action|sessionID)の先頭を切り出した
// 16進文字列をトークンとする。検証時は現在のtickとひとつ前のtickを受理する
// ため、発行直後のtick境界跨ぎでも失効しない。
package nonce

import (
	"crypto/hmac"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"fmt"
	"time"
)

// ActionForcedPreview はプレビュー確認エンドポイントのトークンスコープ。
const ActionForcedPreview = "forced-preview"

// tokenLen はトークンの16進文字数。
const tokenLen = 16

// Service はトークンの発行と検証を行う。
type Service struct {
	secret   []byte
	lifetime time.Duration

	// now はテストで時刻を差し替えるためのフック。
	now func() time.Time
}

// New はServiceを生成する。lifetimeはトークンの最長有効期間で、
// 0以下の場合は24時間になる。
func New(secret string, lifetime time.Duration) *Service {
	if lifetime <= 0 {
		lifetime = 24 * time.Hour
	}
	return &Service{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
}

// Create はaction・セッションに紐づくトークンを発行する。
// 未認証クライアント（nopriv相当）にはsessionID=""で発行する。
func (s *Service) Create(action, sessionID string) string {
	return s.tokenAt(s.tick(), action, sessionID)
}

// Verify はトークンを検証する。現在のtickとひとつ前のtickで発行された
// トークンのみ有効。比較は一定時間で行う。
func (s *Service) Verify(token, action, sessionID string) bool {
	if len(token) != tokenLen {
		return false
	}

	tick := s.tick()
	for _, t := range []int64{tick, tick - 1} {
		expected := s.tokenAt(t, action, sessionID)
		if subtle.ConstantTimeCompare([]byte(token), []byte(expected)) == 1 {
			return true
		}
	}
	return false
}

// tick は現在時刻が属する有効期間スロットを返す。
// lifetimeを半分に割るので、トークンは最短lifetime/2、最長lifetimeの間有効。
func (s *Service) tick() int64 {
	half := int64(s.lifetime/time.Second) / 2
	if half < 1 {
		half = 1
	}
	return s.now().Unix() / half
}

// tokenAt は指定tickのトークンを計算する。
func (s *Service) tokenAt(tick int64, action, sessionID string) string {
	mac := hmac.New(sha256.New, s.secret)
	fmt.Fprintf(mac, "%d|%s|%s", tick, action, sessionID)
	return hex.EncodeToString(mac.Sum(nil))[:tokenLen]
}
