// Package token は署名付きアイデンティティトークンの発行と検証を提供する。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// DefaultTTL はトークンの既定の有効期間。
const DefaultTTL = time.Hour

// トークン検証の失敗種別。
// HTTP境界ではいずれも401に集約されるが、内部では区別可能にしておく。
var (
	// ErrMissingSecret は署名シークレットが未設定の場合のエラー。
	ErrMissingSecret = errors.New("signing secret is not configured")
	// ErrInvalidToken は署名不一致やパース失敗のエラー。
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken は有効期限切れのエラー。
	ErrExpiredToken = errors.New("token expired")
)

// Claims はトークンに埋め込むアイデンティティクレーム。
// Emailが所有者スコープの認可判定に使われる主体識別子となる。
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Service はHMAC署名付きJWTの発行・検証を行うトークンサービス。
type Service struct {
	secret []byte
	ttl    time.Duration
}

// NewService はServiceを生成する。
// ttlが0以下の場合はDefaultTTLを使用する。
// シークレットの存在確認は行わず、最初のIssue/Verify呼び出しで失敗させる。
func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

// TTL は設定されたトークン有効期間を返す。
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue は指定された主体（email）に対する署名付きトークンを発行する。
// 有効期限は発行時刻から固定のTTL後に設定する。
// Cookie設定などの副作用は持たない。
func (s *Service) Issue(email string) (string, time.Time, error) {
	if len(s.secret) == 0 {
		return "", time.Time{}, ErrMissingSecret
	}

	now := time.Now()
	expiresAt := now.Add(s.ttl)

	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, expiresAt, nil
}

// Verify はトークン文字列を検証し、埋め込まれたクレームを返す。
// 署名方式はHS256のみ許可する。
// 期限切れはErrExpiredToken、それ以外の失敗はErrInvalidTokenに分類する。
func (s *Service) Verify(tokenString string) (*Claims, error) {
	if len(s.secret) == 0 {
		return nil, ErrMissingSecret
	}

	claims := &Claims{}
	t, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, fmt.Errorf("%w: %s", ErrExpiredToken, err)
		}
		return nil, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}
	if !t.Valid {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
