package security

import "testing"

func TestValidateImageURL(t *testing.T) {
	g := NewImageGuard()

	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"空文字列は画像なしとして許可", "", false},
		{"httpsの絶対URLは許可", "https://cdn.example.com/images/a.png", false},
		{"httpスキームは拒否", "http://cdn.example.com/a.png", true},
		{"javascriptスキームは拒否", "javascript:alert(1)", true},
		{"dataスキームは拒否", "data:image/png;base64,AAAA", true},
		{"ホストなしは拒否", "https:///a.png", true},
		{"localhostは拒否", "https://localhost/a.png", true},
		{"ループバックIPは拒否", "https://127.0.0.1/a.png", true},
		{"プライベートIP 10系は拒否", "https://10.0.0.5/a.png", true},
		{"プライベートIP 172系は拒否", "https://172.16.0.1/a.png", true},
		{"プライベートIP 192系は拒否", "https://192.168.1.1/a.png", true},
		{"クラウドメタデータIPは拒否", "https://169.254.169.254/latest/meta-data", true},
		{"IPv6ループバックは拒否", "https://[::1]/a.png", true},
		{"パブリックIPは許可", "https://93.184.216.34/a.png", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := g.ValidateImageURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateImageURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
