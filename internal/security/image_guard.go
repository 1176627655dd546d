// Package security はアプリケーションのセキュリティ機能を提供する。
package security

import (
	"fmt"
	"net"
	"net/url"
)

// ImageURLValidator はブログ画像URLの検証機能のインターフェースを定義する。
// 画像はフロントエンドが直接参照するため、保存前にURLの安全性を検証する。
type ImageURLValidator interface {
	// ValidateImageURL は画像URLの安全性を検証する。
	// httpsスキームの絶対URLのみを許可し、プライベートIPや
	// ループバックを直接指すホストを拒否する。
	ValidateImageURL(rawURL string) error
}

// blockedNetworks は画像参照先として拒否するネットワーク範囲。
// パッケージ初期化時に1回だけパースし、ValidateImageURLでの検証に使用する。
var blockedNetworks []net.IPNet

func init() {
	cidrs := []string{
		// プライベートIPアドレス (RFC 1918)
		"10.0.0.0/8",
		"172.16.0.0/12",
		"192.168.0.0/16",
		// ループバック (RFC 1122)
		"127.0.0.0/8",
		// リンクローカル (RFC 3927) - クラウドメタデータIP (169.254.169.254) を含む
		"169.254.0.0/16",
		// カレントネットワーク
		"0.0.0.0/8",
		// IPv6ループバック
		"::1/128",
		// IPv6リンクローカル
		"fe80::/10",
		// IPv6ユニークローカル
		"fc00::/7",
	}
	for _, cidr := range cidrs {
		_, network, err := net.ParseCIDR(cidr)
		if err != nil {
			panic(fmt.Sprintf("invalid CIDR in blockedNetworks: %s: %v", cidr, err))
		}
		blockedNetworks = append(blockedNetworks, *network)
	}
}

// imageGuard はImageURLValidatorの実装。
type imageGuard struct{}

// NewImageGuard はImageURLValidatorの新しいインスタンスを生成する。
func NewImageGuard() *imageGuard {
	return &imageGuard{}
}

// ValidateImageURL は画像URLの安全性を検証する。
// 空文字列は「画像なし」として許可する。
func (g *imageGuard) ValidateImageURL(rawURL string) error {
	if rawURL == "" {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if u.Scheme != "https" {
		return fmt.Errorf("scheme %q is not allowed (https only)", u.Scheme)
	}

	host := u.Hostname()
	if host == "" {
		return fmt.Errorf("URL has no host")
	}
	if host == "localhost" {
		return fmt.Errorf("host %q is not allowed", host)
	}

	// ホストが生のIPアドレスの場合のみネットワーク範囲を検証する。
	// DNS解決は行わない（このシステムは画像をフェッチしないため）。
	if ip := net.ParseIP(host); ip != nil {
		for _, network := range blockedNetworks {
			if network.Contains(ip) {
				return fmt.Errorf("IP address %s is in a blocked range", ip)
			}
		}
	}

	return nil
}

// compile-time interface check
var _ ImageURLValidator = (*imageGuard)(nil)
